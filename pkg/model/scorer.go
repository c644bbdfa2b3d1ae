/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: scorer.go
Description: Smoothed log-probability scoring for the Akaylee Cracker. Computes
log P(template) + sum of log P(token value | token type) under additive (Laplace)
smoothing, so unseen templates and values receive a floor probability instead of
zero. Pure and deterministic for a fixed model.
*/

package model

import (
	"fmt"
	"math"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

// Score returns the smoothed log-probability of a candidate password under
// the trained model (more negative = less likely). The candidate is run
// through the same normalizer and tokenizer the model was trained with.
// Fails with ModelNotTrainedError on an empty model and InvalidInputError
// on unusable candidates.
func (m *Model) Score(candidate string) (float64, error) {
	if !m.Trained() {
		return 0, &interfaces.ModelNotTrainedError{Op: "score"}
	}

	normalized, err := m.normalizer.Normalize(candidate)
	if err != nil {
		return 0, fmt.Errorf("cannot score candidate: %w", err)
	}
	template, tokens, err := m.tokenizer.Tokenize(normalized)
	if err != nil {
		return 0, fmt.Errorf("cannot score candidate: %w", err)
	}

	logp := m.TemplateLogProb(template.Label())
	for _, tok := range tokens {
		logp += m.ValueLogProb(tok.Type, tok.Value)
	}
	return logp, nil
}

// TemplateLogProb returns the smoothed log-probability of a template label.
// With V observed templates, P = (count + alpha) / (total + alpha*(V+1)):
// the +1 reserves probability mass for unseen templates, so the result is
// finite even for labels never observed in training.
func (m *Model) TemplateLogProb(label string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v := float64(len(m.templateCounts))
	count := float64(m.templateCounts[label])
	return math.Log((count + m.alpha) / (float64(m.totalExamples) + m.alpha*(v+1)))
}

// ValueLogProb returns the smoothed log-probability of a token value given
// its type, using the same additive scheme as TemplateLogProb over the
// per-type value table.
func (m *Model) ValueLogProb(tt interfaces.TokenType, value string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := m.valueCounts[tt]
	v := float64(len(values))
	count := float64(values[value])
	return math.Log((count + m.alpha) / (float64(m.valueTotals[tt]) + m.alpha*(v+1)))
}
