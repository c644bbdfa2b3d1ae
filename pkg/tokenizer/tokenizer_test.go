/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tokenizer_test.go
Description: Tests for the password tokenizer. Covers character-class segmentation,
WORD vs FRAG resolution through the vocabulary, lossless reconstruction, template
label rendering, and template label parsing.
*/

package tokenizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/vocab"
)

func TestTokenizeWordDigitSuffix(t *testing.T) {
	tok := New(vocab.New())

	template, tokens, err := tok.Tokenize("password1")
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, interfaces.TokenWord, tokens[0].Type)
	assert.Equal(t, "password", tokens[0].Value)
	assert.Equal(t, 8, tokens[0].Length)
	assert.Equal(t, interfaces.TokenDigits, tokens[1].Type)
	assert.Equal(t, "1", tokens[1].Value)

	assert.Equal(t, "WORD8|DIGITS1", template.Label())
}

func TestTokenizeFragForUnknownLetters(t *testing.T) {
	tok := New(vocab.New())

	template, tokens, err := tok.Tokenize("letme1n")
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	assert.Equal(t, interfaces.TokenFrag, tokens[0].Type)
	assert.Equal(t, "letme", tokens[0].Value)
	assert.Equal(t, interfaces.TokenDigits, tokens[1].Type)
	assert.Equal(t, interfaces.TokenFrag, tokens[2].Type)
	assert.Equal(t, "n", tokens[2].Value)

	assert.Equal(t, "FRAG5|DIGITS1|FRAG1", template.Label())
}

func TestTokenizeShortLetterRunsAreFrag(t *testing.T) {
	v := vocab.Empty()
	v.Add("ab")
	tok := New(v)

	// Letter runs below three runes are FRAG even when the vocabulary
	// contains them.
	_, tokens, err := tok.Tokenize("ab1")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, interfaces.TokenFrag, tokens[0].Type)
}

func TestTokenizeSymbolRuns(t *testing.T) {
	tok := New(vocab.New())

	template, tokens, err := tok.Tokenize("password#-9")
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	assert.Equal(t, interfaces.TokenSymbol, tokens[1].Type)
	assert.Equal(t, "#-", tokens[1].Value)
	assert.Equal(t, 2, tokens[1].Length)
	assert.Equal(t, "WORD8|SYMBOL2|DIGITS1", template.Label())
}

func TestTokenizeNonASCIIIsSymbol(t *testing.T) {
	tok := New(vocab.New())

	_, tokens, err := tok.Tokenize("abcñ1")
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	assert.Equal(t, interfaces.TokenSymbol, tokens[1].Type)
	assert.Equal(t, "ñ", tokens[1].Value)
	assert.Equal(t, 1, tokens[1].Length)
}

func TestTokenizeLosslessReconstruction(t *testing.T) {
	tok := New(vocab.New())

	inputs := []string{
		"password1",
		"letme1n",
		"a1b2c3",
		"!!!abc???123",
		"снег123",
		"dragon#sunshine99",
	}
	for _, input := range inputs {
		template, tokens, err := tok.Tokenize(input)
		require.NoError(t, err)

		var b strings.Builder
		for _, token := range tokens {
			b.WriteString(token.Value)
		}
		assert.Equal(t, input, b.String(), "tokens must reconstruct the input")
		assert.Equal(t, len(tokens), len(template), "one slot per token")
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	tok := New(vocab.New())

	_, _, err := tok.Tokenize("")
	require.Error(t, err)

	var invalid *interfaces.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestParseTemplateRoundTrip(t *testing.T) {
	labels := []string{
		"WORD8|DIGITS1",
		"FRAG5|DIGITS1|FRAG1",
		"WORD8|SYMBOL2|DIGITS3",
		"DIGITS6",
	}
	for _, label := range labels {
		template, err := ParseTemplate(label)
		require.NoError(t, err)
		assert.Equal(t, label, template.Label())
	}
}

func TestParseTemplateMalformed(t *testing.T) {
	bad := []string{
		"",
		"WORD",
		"WORD0",
		"WORD-1",
		"NOISE8",
		"WORD8||DIGITS1",
		"word8",
	}
	for _, label := range bad {
		_, err := ParseTemplate(label)
		require.Error(t, err, "label %q must fail", label)

		var invalid *interfaces.InvalidInputError
		assert.True(t, errors.As(err, &invalid), "label %q", label)
	}
}
