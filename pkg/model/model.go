/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: model.go
Description: PCFG frequency model for the Akaylee Cracker. Accumulates template and
per-type token value counts from a streaming training corpus in a single forward
pass, so memory scales with vocabulary size rather than corpus size. The trained
model is immutable and read-only for all downstream consumers.
*/

package model

import (
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

// Model holds the smoothed frequency statistics of a password corpus:
// template occurrence counts plus, per token type, token value occurrence
// counts. Counts are monotonically non-decreasing during training and frozen
// afterwards.
type Model struct {
	mu sync.RWMutex

	alpha float64

	templateCounts map[string]int64
	valueCounts    map[interfaces.TokenType]map[string]int64
	valueTotals    map[interfaces.TokenType]int64

	totalExamples int64
	skippedLines  int64

	normalizer interfaces.Normalizer
	tokenizer  interfaces.Tokenizer
}

// FitOptions controls a training pass.
type FitOptions struct {
	// MinLength excludes lines shorter than this (in runes) before
	// tokenization, allowing separate models per length regime from the
	// same corpus. Zero disables the filter.
	MinLength int

	// MaxSamples stops the pass after this many processed lines.
	// Zero means the whole corpus.
	MaxSamples int64

	// TrimTopN periodically trims each value table to its top N entries to
	// bound memory on very large corpora. Zero disables trimming.
	TrimTopN int

	// Progress, if set, is invoked every ProgressEvery processed lines.
	Progress      interfaces.ProgressFunc
	ProgressEvery int64
}

// FitReport summarizes a completed training pass.
type FitReport struct {
	Processed       int64         `json:"processed"`
	Skipped         int64         `json:"skipped"`
	Filtered        int64         `json:"filtered"`
	UniqueTemplates int           `json:"unique_templates"`
	Duration        time.Duration `json:"duration"`
}

// TemplateFrequency pairs a template label with its training count.
type TemplateFrequency struct {
	Label string
	Count int64
}

// ValueFrequency pairs a token value with its training count.
type ValueFrequency struct {
	Value string
	Count int64
}

// New creates an untrained model. alpha is the additive smoothing strength
// (non-positive values fall back to 1.0, since a zero alpha would reintroduce
// the zero-probability holes smoothing exists to close); the normalizer and
// tokenizer define the analysis pipeline the model was (and must keep being)
// trained and scored with.
func New(alpha float64, n interfaces.Normalizer, t interfaces.Tokenizer) *Model {
	if alpha <= 0 {
		alpha = 1.0
	}
	return &Model{
		alpha:          alpha,
		templateCounts: make(map[string]int64),
		valueCounts:    make(map[interfaces.TokenType]map[string]int64),
		valueTotals:    make(map[interfaces.TokenType]int64),
		normalizer:     n,
		tokenizer:      t,
	}
}

// Fit trains the model from a corpus source in a single forward streaming
// pass. Malformed or empty lines are skipped and counted, never aborting the
// pass; only a read failure of the source itself is fatal. The source is not
// closed by Fit — the caller owns its lifecycle.
func (m *Model) Fit(src interfaces.CorpusSource, opts FitOptions) (*FitReport, error) {
	start := time.Now()
	report := &FitReport{}

	every := opts.ProgressEvery
	if every <= 0 {
		every = 100000
	}

	for src.Scan() {
		if opts.MaxSamples > 0 && report.Processed >= opts.MaxSamples {
			break
		}

		line := src.Text()
		if opts.MinLength > 0 && utf8.RuneCountInString(line) < opts.MinLength {
			report.Filtered++
			continue
		}

		if err := m.observe(line); err != nil {
			report.Skipped++
		} else {
			report.Processed++
		}

		if opts.Progress != nil && report.Processed > 0 && report.Processed%every == 0 {
			opts.Progress(report.Processed, report.Skipped)
		}
		if opts.TrimTopN > 0 && report.Processed > 0 && report.Processed%500000 == 0 {
			m.Trim(opts.TrimTopN)
		}
	}
	if err := src.Err(); err != nil {
		return report, fmt.Errorf("corpus read failed: %w", err)
	}

	m.mu.Lock()
	m.skippedLines += report.Skipped
	report.UniqueTemplates = len(m.templateCounts)
	m.mu.Unlock()

	report.Duration = time.Since(start)
	if opts.Progress != nil {
		opts.Progress(report.Processed, report.Skipped)
	}
	return report, nil
}

// observe normalizes and tokenizes one line and increments the frequency
// tables. Returns the underlying error for skip accounting.
func (m *Model) observe(line string) error {
	normalized, err := m.normalizer.Normalize(line)
	if err != nil {
		return err
	}
	template, tokens, err := m.tokenizer.Tokenize(normalized)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.templateCounts[template.Label()]++
	m.totalExamples++
	for _, tok := range tokens {
		values, ok := m.valueCounts[tok.Type]
		if !ok {
			values = make(map[string]int64)
			m.valueCounts[tok.Type] = values
		}
		values[tok.Value]++
		m.valueTotals[tok.Type]++
	}
	return nil
}

// Trim keeps only the top N values per token type (by count, ties broken
// lexicographically). Template counts are never trimmed. Value totals are
// recomputed from the kept counts, so a trimmed model and its snapshot
// round-trip score identically.
func (m *Model) Trim(topN int) {
	if topN <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for tt, values := range m.valueCounts {
		if len(values) <= topN {
			continue
		}
		ranked := rankValues(values, 0)
		kept := make(map[string]int64, topN)
		var total int64
		for _, vf := range ranked[:topN] {
			kept[vf.Value] = vf.Count
			total += vf.Count
		}
		m.valueCounts[tt] = kept
		m.valueTotals[tt] = total
	}
}

// Trained reports whether the model has observed at least one example.
func (m *Model) Trained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalExamples > 0
}

// Alpha returns the smoothing strength.
func (m *Model) Alpha() float64 { return m.alpha }

// TotalExamples returns the number of training examples observed.
func (m *Model) TotalExamples() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalExamples
}

// SkippedLines returns the cumulative count of lines skipped during training.
func (m *Model) SkippedLines() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.skippedLines
}

// UniqueTemplates returns the number of distinct templates observed.
func (m *Model) UniqueTemplates() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.templateCounts)
}

// TemplateCount returns the training count of a template label (0 if unseen).
func (m *Model) TemplateCount(label string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.templateCounts[label]
}

// ValueCount returns the training count of a token value (0 if unseen).
func (m *Model) ValueCount(tt interfaces.TokenType, value string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.valueCounts[tt][value]
}

// TopTemplates returns the n most frequent templates, ordered by count
// descending with ties broken lexicographically on the label. n <= 0
// returns all templates.
func (m *Model) TopTemplates(n int) []TemplateFrequency {
	m.mu.RLock()
	ranked := make([]TemplateFrequency, 0, len(m.templateCounts))
	for label, count := range m.templateCounts {
		ranked = append(ranked, TemplateFrequency{Label: label, Count: count})
	}
	m.mu.RUnlock()

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Label < ranked[j].Label
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopValues returns the n most frequent values of a token type, ordered by
// count descending with ties broken lexicographically on the value.
// length > 0 restricts the result to values of that rune length; n <= 0
// returns all matching values.
func (m *Model) TopValues(tt interfaces.TokenType, length int, n int) []ValueFrequency {
	m.mu.RLock()
	ranked := rankValues(m.valueCounts[tt], length)
	m.mu.RUnlock()

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// rankValues sorts a value table by count descending, ties lexicographic.
// Callers must hold at least a read lock when values is a live table.
func rankValues(values map[string]int64, length int) []ValueFrequency {
	ranked := make([]ValueFrequency, 0, len(values))
	for value, count := range values {
		if length > 0 && utf8.RuneCountInString(value) != length {
			continue
		}
		ranked = append(ranked, ValueFrequency{Value: value, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})
	return ranked
}
