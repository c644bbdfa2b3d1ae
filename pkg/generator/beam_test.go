/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: beam_test.go
Description: Tests for the deterministic beam-search generator. Covers run-to-run
reproducibility, bound enforcement, narrow-beam top-candidate selection, parallel
and sequential equivalence, and the untrained-model guard.
*/

package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-cracker/pkg/corpus"
	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/model"
	"github.com/kleascm/akaylee-cracker/pkg/normalizer"
	"github.com/kleascm/akaylee-cracker/pkg/tokenizer"
	"github.com/kleascm/akaylee-cracker/pkg/vocab"
)

// trainedModel fits a model on the given lines for generator tests.
func trainedModel(t *testing.T, lines []string) *model.Model {
	t.Helper()
	m := model.New(1.0, normalizer.New(), tokenizer.New(vocab.New()))
	_, err := m.Fit(corpus.NewSliceSource(lines), model.FitOptions{})
	require.NoError(t, err)
	return m
}

func TestBeamNarrowBeamPicksMostLikely(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n"})

	config := interfaces.DefaultGeneratorConfig()
	config.BeamTopKTemplates = 1
	config.BeamTopKPerSlot = 1

	g, err := NewBeamGenerator(m, config)
	require.NoError(t, err)
	candidates, err := g.Generate()
	require.NoError(t, err)

	// The most frequent template is WORD8|DIGITS1; its top slot values are
	// "password" and "1", so the single surviving candidate is "password1".
	require.Len(t, candidates, 1)
	assert.Equal(t, "password1", candidates[0].Text)
	assert.Equal(t, interfaces.SourceDeterministic, candidates[0].Source)
}

func TestBeamReproducible(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n", "dragon99", "sunshine1"})

	g1, err := NewBeamGenerator(m, nil)
	require.NoError(t, err)
	first, err := g1.Generate()
	require.NoError(t, err)

	g2, err := NewBeamGenerator(m, nil)
	require.NoError(t, err)
	second, err := g2.Generate()
	require.NoError(t, err)

	assert.Equal(t, first, second, "beam output must be identical across runs")
}

func TestBeamParallelMatchesSequential(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n", "dragon99", "sunshine1"})

	seqConfig := interfaces.DefaultGeneratorConfig()
	seqConfig.Workers = 1
	seq, err := NewBeamGenerator(m, seqConfig)
	require.NoError(t, err)
	seqOut, err := seq.Generate()
	require.NoError(t, err)

	parConfig := interfaces.DefaultGeneratorConfig()
	parConfig.Workers = 4
	par, err := NewBeamGenerator(m, parConfig)
	require.NoError(t, err)
	parOut, err := par.Generate()
	require.NoError(t, err)

	assert.Equal(t, seqOut, parOut, "worker count must not change the output")
}

func TestBeamRespectsMaxTotal(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n", "dragon99", "sunshine1"})

	config := interfaces.DefaultGeneratorConfig()
	config.MaxTotalCandidates = 2

	g, err := NewBeamGenerator(m, config)
	require.NoError(t, err)
	candidates, err := g.Generate()
	require.NoError(t, err)

	assert.LessOrEqual(t, len(candidates), 2)
}

func TestBeamDropsShortCandidates(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n"})

	config := interfaces.DefaultGeneratorConfig()
	config.MinLength = 12

	g, err := NewBeamGenerator(m, config)
	require.NoError(t, err)
	candidates, err := g.Generate()
	require.NoError(t, err)

	for _, cand := range candidates {
		assert.GreaterOrEqual(t, len([]rune(cand.Text)), 12)
	}
}

func TestBeamScoresDescendWithinTemplate(t *testing.T) {
	m := trainedModel(t, []string{"password1", "Password2", "letme1n"})

	config := interfaces.DefaultGeneratorConfig()
	config.BeamTopKTemplates = 1

	g, err := NewBeamGenerator(m, config)
	require.NoError(t, err)
	candidates, err := g.Generate()
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestBeamUntrainedModel(t *testing.T) {
	m := model.New(1.0, normalizer.New(), tokenizer.New(vocab.New()))

	g, err := NewBeamGenerator(m, nil)
	require.NoError(t, err)
	_, err = g.Generate()
	require.Error(t, err)

	var notTrained *interfaces.ModelNotTrainedError
	assert.True(t, errors.As(err, &notTrained))
}

func TestBeamInvalidConfig(t *testing.T) {
	m := trainedModel(t, []string{"password1"})

	config := interfaces.DefaultGeneratorConfig()
	config.BeamWidth = 0

	_, err := NewBeamGenerator(m, config)
	assert.Error(t, err)
}
