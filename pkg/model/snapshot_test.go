/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: snapshot_test.go
Description: Tests for model snapshot persistence. Covers save/load round-trips
(plain and gzip), schema version enforcement, structural validation of corrupt
documents, and the untrained-save guard.
*/

package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

func TestSnapshotRoundTrip(t *testing.T) {
	m, _ := trainTestModel(t, []string{"password1", "Password2", "letme1n"}, FitOptions{})
	path := filepath.Join(t.TempDir(), "model.json")

	require.NoError(t, m.Save(path))

	loaded, err := Load(path, m.normalizer, m.tokenizer)
	require.NoError(t, err)

	assert.Equal(t, m.Alpha(), loaded.Alpha())
	assert.Equal(t, m.TotalExamples(), loaded.TotalExamples())
	assert.Equal(t, m.UniqueTemplates(), loaded.UniqueTemplates())
	assert.Equal(t, m.TemplateCount("WORD8|DIGITS1"), loaded.TemplateCount("WORD8|DIGITS1"))
	assert.Equal(t, m.ValueCount(interfaces.TokenDigits, "1"), loaded.ValueCount(interfaces.TokenDigits, "1"))

	// Scores must be identical after a round-trip.
	want, err := m.Score("password1")
	require.NoError(t, err)
	got, err := loaded.Score("password1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSnapshotRoundTripAfterTrim(t *testing.T) {
	m, _ := trainTestModel(t, []string{"password1", "Password2", "letme1n", "dragon99"}, FitOptions{})
	m.Trim(1)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path, m.normalizer, m.tokenizer)
	require.NoError(t, err)

	// Trimming drops value mass; the totals must shrink with it so the
	// persisted counts reproduce the same probabilities on load.
	for _, candidate := range []string{"password1", "password2", "dragon99"} {
		want, err := m.Score(candidate)
		require.NoError(t, err)
		got, err := loaded.Score(candidate)
		require.NoError(t, err)
		assert.Equal(t, want, got, "score of %q changed across the round-trip", candidate)
	}
}

func TestSnapshotRoundTripGzip(t *testing.T) {
	m, _ := trainTestModel(t, []string{"password1", "Password2", "letme1n"}, FitOptions{})
	path := filepath.Join(t.TempDir(), "model.json.gz")

	require.NoError(t, m.Save(path))

	loaded, err := Load(path, m.normalizer, m.tokenizer)
	require.NoError(t, err)
	assert.Equal(t, m.TotalExamples(), loaded.TotalExamples())
}

func TestSnapshotCreatesParentDirectories(t *testing.T) {
	m, _ := trainTestModel(t, []string{"password1"}, FitOptions{})
	path := filepath.Join(t.TempDir(), "nested", "dir", "model.json")

	require.NoError(t, m.Save(path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSnapshotSaveUntrained(t *testing.T) {
	m := newTestModel()

	err := m.Save(filepath.Join(t.TempDir(), "model.json"))
	require.Error(t, err)

	var notTrained *interfaces.ModelNotTrainedError
	assert.True(t, errors.As(err, &notTrained))
}

func TestSnapshotLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path, newTestModel().normalizer, newTestModel().tokenizer)
	require.Error(t, err)

	var corrupt *interfaces.SnapshotCorruptError
	assert.True(t, errors.As(err, &corrupt))
}

func TestSnapshotLoadVersionMismatch(t *testing.T) {
	doc := `{"schema_version":99,"alpha":1,"total_examples":1,"skipped_lines":0,` +
		`"template_counts":{"WORD8|DIGITS1":1},"value_counts":{}}`
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := Load(path, newTestModel().normalizer, newTestModel().tokenizer)
	require.Error(t, err)

	var corrupt *interfaces.SnapshotCorruptError
	require.True(t, errors.As(err, &corrupt))
	assert.Contains(t, corrupt.Reason, "schema version 99")
}

func TestSnapshotLoadStructuralCorruption(t *testing.T) {
	docs := map[string]string{
		"zero alpha": `{"schema_version":1,"alpha":0,"total_examples":1,` +
			`"template_counts":{"WORD8|DIGITS1":1},"value_counts":{}}`,
		"no examples": `{"schema_version":1,"alpha":1,"total_examples":0,` +
			`"template_counts":{"WORD8|DIGITS1":1},"value_counts":{}}`,
		"empty templates": `{"schema_version":1,"alpha":1,"total_examples":1,` +
			`"template_counts":{},"value_counts":{}}`,
		"zero count": `{"schema_version":1,"alpha":1,"total_examples":1,` +
			`"template_counts":{"WORD8|DIGITS1":0},"value_counts":{}}`,
		"unknown token type": `{"schema_version":1,"alpha":1,"total_examples":1,` +
			`"template_counts":{"WORD8|DIGITS1":1},"value_counts":{"NOISE":{"x":1}}}`,
	}
	for name, doc := range docs {
		path := filepath.Join(t.TempDir(), "model.json")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

		_, err := Load(path, newTestModel().normalizer, newTestModel().tokenizer)
		require.Error(t, err, "case %q", name)

		var corrupt *interfaces.SnapshotCorruptError
		assert.True(t, errors.As(err, &corrupt), "case %q", name)
	}
}

func TestSnapshotLoadNotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := Load(path, newTestModel().normalizer, newTestModel().tokenizer)
	require.Error(t, err)

	var corrupt *interfaces.SnapshotCorruptError
	assert.True(t, errors.As(err, &corrupt))
}

func TestSnapshotLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), newTestModel().normalizer, newTestModel().tokenizer)
	require.Error(t, err)

	// A missing file is an I/O failure, not a corruption.
	var corrupt *interfaces.SnapshotCorruptError
	assert.False(t, errors.As(err, &corrupt))
}
