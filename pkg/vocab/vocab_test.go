/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: vocab_test.go
Description: Tests for the word vocabulary. Covers the built-in word list,
case handling on insertion, and wordlist file loading with comment skipping.
*/

package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinWords(t *testing.T) {
	v := New()

	assert.True(t, v.Contains("password"))
	assert.True(t, v.Contains("dragon"))
	assert.False(t, v.Contains("letme"))
	assert.Greater(t, v.Len(), 100)
}

func TestEmptyVocabulary(t *testing.T) {
	v := Empty()

	assert.Equal(t, 0, v.Len())
	assert.False(t, v.Contains("password"))
}

func TestAddLowercases(t *testing.T) {
	v := Empty()
	v.Add("  LetMe  ")

	assert.True(t, v.Contains("letme"))
	assert.Equal(t, 1, v.Len())

	// Blank input is ignored.
	v.Add("   ")
	assert.Equal(t, 1, v.Len())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# common bases\nletme\nQWERTY\n\npassword\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v := New()
	added, err := v.LoadFile(path)
	require.NoError(t, err)

	// "password" is already built in, so only two new words land.
	assert.Equal(t, 2, added)
	assert.True(t, v.Contains("letme"))
	assert.True(t, v.Contains("qwerty"))
}

func TestLoadFileMissing(t *testing.T) {
	v := New()
	_, err := v.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
