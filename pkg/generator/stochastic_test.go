/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stochastic_test.go
Description: Tests for the stochastic sampling generator. Covers seed-bound
reproducibility, seed sensitivity, sample counting, emitted-value validity,
and the untrained-model guard.
*/

package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/model"
	"github.com/kleascm/akaylee-cracker/pkg/normalizer"
	"github.com/kleascm/akaylee-cracker/pkg/tokenizer"
	"github.com/kleascm/akaylee-cracker/pkg/vocab"
)

func TestStochasticSameSeedSameSequence(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n", "dragon99", "sunshine1"})

	config := interfaces.DefaultGeneratorConfig()
	config.NumSamples = 200
	config.Seed = 7

	g1, err := NewStochasticGenerator(m, config)
	require.NoError(t, err)
	first, err := g1.Generate()
	require.NoError(t, err)

	g2, err := NewStochasticGenerator(m, config)
	require.NoError(t, err)
	second, err := g2.Generate()
	require.NoError(t, err)

	assert.Equal(t, first, second, "a fixed seed must reproduce the exact draw sequence")
}

func TestStochasticDifferentSeedsDiverge(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n", "dragon99", "sunshine1"})

	run := func(seed int64) []interfaces.Candidate {
		config := interfaces.DefaultGeneratorConfig()
		config.NumSamples = 200
		config.Seed = seed
		g, err := NewStochasticGenerator(m, config)
		require.NoError(t, err)
		out, err := g.Generate()
		require.NoError(t, err)
		return out
	}

	assert.NotEqual(t, run(1), run(2), "different seeds should produce different sequences")
}

func TestStochasticEmitsEveryDraw(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n"})

	config := interfaces.DefaultGeneratorConfig()
	config.NumSamples = 50

	g, err := NewStochasticGenerator(m, config)
	require.NoError(t, err)
	candidates, err := g.Generate()
	require.NoError(t, err)

	// No filtering or dedup at this stage: exactly NumSamples draws.
	assert.Len(t, candidates, 50)
	for _, cand := range candidates {
		assert.Equal(t, interfaces.SourceStochastic, cand.Source)
	}
}

func TestStochasticDrawsObservedValues(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n"})

	config := interfaces.DefaultGeneratorConfig()
	config.NumSamples = 100

	g, err := NewStochasticGenerator(m, config)
	require.NoError(t, err)
	candidates, err := g.Generate()
	require.NoError(t, err)

	// Every draw assembles observed slot values, so the candidate universe
	// is finite and known: password/letme/n crossed with 1/2.
	valid := map[string]struct{}{
		"password1": {}, "password2": {},
		"letme1n": {}, "letme2n": {},
	}
	for _, cand := range candidates {
		_, ok := valid[cand.Text]
		assert.True(t, ok, "unexpected candidate %q", cand.Text)
	}
}

func TestStochasticUntrainedModel(t *testing.T) {
	m := model.New(1.0, normalizer.New(), tokenizer.New(vocab.New()))

	g, err := NewStochasticGenerator(m, nil)
	require.NoError(t, err)
	_, err = g.Generate()
	require.Error(t, err)

	var notTrained *interfaces.ModelNotTrainedError
	assert.True(t, errors.As(err, &notTrained))
}
