/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: normalizer_test.go
Description: Tests for the password normalizer. Covers case folding, leet-speak
substitution, idempotence, custom substitution tables, and input validation.
*/

package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

func TestNormalizeCaseFolding(t *testing.T) {
	n := New()

	got, err := n.Normalize("PassWord")
	require.NoError(t, err)
	assert.Equal(t, "password", got)
}

func TestNormalizeLeetSubstitutions(t *testing.T) {
	n := New()

	cases := map[string]string{
		"P@ssw0rd": "password",
		"$ecret":   "secret",
		"h3llo":    "hello",
		"7iger":    "tiger",
		"!mpact":   "impact",
		"c4t":      "cat",
		"5nake":    "snake",
	}
	for input, want := range cases {
		got, err := n.Normalize(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestNormalizePreservesTrailingDigits(t *testing.T) {
	n := New()

	// '1' and '2' are not in the substitution table, so digit suffixes
	// survive normalization and stay DIGITS runs downstream.
	got, err := n.Normalize("Password1")
	require.NoError(t, err)
	assert.Equal(t, "password1", got)

	got, err = n.Normalize("Password2")
	require.NoError(t, err)
	assert.Equal(t, "password2", got)
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()

	inputs := []string{"P@ssw0rd123", "HELLO!", "летмеин", "abc-def_42"}
	for _, input := range inputs {
		once, err := n.Normalize(input)
		require.NoError(t, err)
		twice, err := n.Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := New()

	_, err := n.Normalize("")
	require.Error(t, err)

	var invalid *interfaces.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestNormalizeInvalidUTF8(t *testing.T) {
	n := New()

	_, err := n.Normalize(string([]byte{0xff, 0xfe}))
	require.Error(t, err)

	var invalid *interfaces.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestNormalizeCustomMap(t *testing.T) {
	n := NewWithMap(map[rune]rune{'1': 'l'})

	got, err := n.Normalize("he11o")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestNormalizeEmptyMapFoldsCaseOnly(t *testing.T) {
	n := NewWithMap(nil)

	got, err := n.Normalize("P@ssw0rd")
	require.NoError(t, err)
	assert.Equal(t, "p@ssw0rd", got)
}

func TestNormalizeMapCopiedAtConstruction(t *testing.T) {
	table := map[rune]rune{'0': 'o'}
	n := NewWithMap(table)

	// Mutating the caller's map after construction must have no effect.
	table['1'] = 'l'

	got, err := n.Normalize("c00l1")
	require.NoError(t, err)
	assert.Equal(t, "cool1", got)
}
