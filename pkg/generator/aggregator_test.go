/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: aggregator_test.go
Description: Tests for candidate aggregation and artifact writing. Covers
deterministic-first ordering, first-seen deduplication, length bounds, and
newline-delimited artifact output in plain and gzip form.
*/

package generator

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

func det(texts ...string) []interfaces.Candidate {
	out := make([]interfaces.Candidate, len(texts))
	for i, text := range texts {
		out[i] = interfaces.Candidate{Text: text, Source: interfaces.SourceDeterministic}
	}
	return out
}

func sto(texts ...string) []interfaces.Candidate {
	out := make([]interfaces.Candidate, len(texts))
	for i, text := range texts {
		out[i] = interfaces.Candidate{Text: text, Source: interfaces.SourceStochastic}
	}
	return out
}

func TestCombineDeterministicFirst(t *testing.T) {
	combined := Combine(det("password1", "dragon99"), sto("sunshine1", "letme1n"), nil)
	assert.Equal(t, []string{"password1", "dragon99", "sunshine1", "letme1n"}, combined)
}

func TestCombineFirstSeenDedup(t *testing.T) {
	combined := Combine(det("password1", "dragon99", "password1"), sto("dragon99", "sunshine1"), nil)
	assert.Equal(t, []string{"password1", "dragon99", "sunshine1"}, combined)
}

func TestCombineLengthBounds(t *testing.T) {
	config := interfaces.DefaultGeneratorConfig()
	config.MinLength = 7
	config.MaxLength = 9

	combined := Combine(det("short1", "password1", "muchtoolongforthebounds"), sto("dragon99"), config)
	assert.Equal(t, []string{"password1", "dragon99"}, combined)
}

func TestCombineCountsRunesNotBytes(t *testing.T) {
	config := interfaces.DefaultGeneratorConfig()
	config.MinLength = 6
	config.MaxLength = 6

	// Six runes, more than six bytes.
	combined := Combine(det("пароль"), nil, config)
	assert.Equal(t, []string{"пароль"}, combined)
}

func TestCombineEmptyInputs(t *testing.T) {
	assert.Empty(t, Combine(nil, nil, nil))
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.txt")

	written, err := WriteArtifact(path, []string{"password1", "dragon99"})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "password1\ndragon99\n", string(data))
}

func TestWriteArtifactGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.txt.gz")

	written, err := WriteArtifact(path, []string{"password1", "dragon99"})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	gz, err := gzip.NewReader(file)
	require.NoError(t, err)
	defer gz.Close()

	var lines []string
	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"password1", "dragon99"}, lines)
}

func TestWriteArtifactSkipsEmbeddedNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.txt")

	written, err := WriteArtifact(path, []string{"password1", "bad\nline", "dragon99"})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "password1\ndragon99\n", string(data))
}

func TestWriteArtifactCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "deep", "candidates.txt")

	_, err := WriteArtifact(path, []string{"password1"})
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestTexts(t *testing.T) {
	texts := Texts(det("password1", "dragon99"))
	assert.Equal(t, []string{"password1", "dragon99"}, texts)
}
