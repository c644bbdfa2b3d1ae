/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: snapshot.go
Description: Versioned snapshot persistence for the Akaylee Cracker model. Saves and
loads the trained frequency tables as a schema-tagged JSON document (gzip-compressed
for .gz paths) with an explicit version check on load, so schema drift fails loudly
instead of silently corrupting scores.
*/

package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

// SchemaVersion is the snapshot document version this build reads and
// writes. Readers must reject any other version rather than guess a
// migration.
const SchemaVersion = 1

// snapshotDocument is the persisted form of a trained model.
type snapshotDocument struct {
	SchemaVersion  int                         `json:"schema_version"`
	Alpha          float64                     `json:"alpha"`
	TotalExamples  int64                       `json:"total_examples"`
	SkippedLines   int64                       `json:"skipped_lines"`
	TemplateCounts map[string]int64            `json:"template_counts"`
	ValueCounts    map[string]map[string]int64 `json:"value_counts"`
}

// Save writes the model snapshot to path, creating parent directories as
// needed. Paths ending in .gz are gzip-compressed. The file handle is
// released on every exit path.
func (m *Model) Save(path string) error {
	if !m.Trained() {
		return &interfaces.ModelNotTrainedError{Op: "save"}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(file)
		defer gz.Close()
		w = gz
	}

	if err := json.NewEncoder(w).Encode(m.document()); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to flush snapshot: %w", err)
		}
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	return nil
}

// document captures the model state under a read lock.
func (m *Model) document() *snapshotDocument {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc := &snapshotDocument{
		SchemaVersion:  SchemaVersion,
		Alpha:          m.alpha,
		TotalExamples:  m.totalExamples,
		SkippedLines:   m.skippedLines,
		TemplateCounts: make(map[string]int64, len(m.templateCounts)),
		ValueCounts:    make(map[string]map[string]int64, len(m.valueCounts)),
	}
	for label, count := range m.templateCounts {
		doc.TemplateCounts[label] = count
	}
	for tt, values := range m.valueCounts {
		copied := make(map[string]int64, len(values))
		for value, count := range values {
			copied[value] = count
		}
		doc.ValueCounts[string(tt)] = copied
	}
	return doc
}

// Load reads a model snapshot from path and rebuilds a trained model bound
// to the given normalizer and tokenizer. Any schema version mismatch or
// structural corruption fails with SnapshotCorruptError — a load never
// returns a degraded model.
func Load(path string, n interfaces.Normalizer, t interfaces.Tokenizer) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, &interfaces.SnapshotCorruptError{Path: path, Reason: "not a gzip stream"}
		}
		defer gz.Close()
		r = gz
	}

	var doc snapshotDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &interfaces.SnapshotCorruptError{Path: path, Reason: "invalid JSON: " + err.Error()}
	}
	if doc.SchemaVersion != SchemaVersion {
		return nil, &interfaces.SnapshotCorruptError{
			Path:   path,
			Reason: fmt.Sprintf("schema version %d, expected %d", doc.SchemaVersion, SchemaVersion),
		}
	}
	if err := doc.validate(); err != nil {
		return nil, &interfaces.SnapshotCorruptError{Path: path, Reason: err.Error()}
	}

	m := New(doc.Alpha, n, t)
	m.totalExamples = doc.TotalExamples
	m.skippedLines = doc.SkippedLines
	for label, count := range doc.TemplateCounts {
		m.templateCounts[label] = count
	}
	for name, values := range doc.ValueCounts {
		tt := interfaces.TokenType(name)
		table := make(map[string]int64, len(values))
		var total int64
		for value, count := range values {
			table[value] = count
			total += count
		}
		m.valueCounts[tt] = table
		m.valueTotals[tt] = total
	}
	return m, nil
}

// validate performs the structural checks a versioned reader owes its
// callers before any probability computed from the document is trusted.
func (d *snapshotDocument) validate() error {
	if d.Alpha <= 0 {
		return fmt.Errorf("non-positive alpha %v", d.Alpha)
	}
	if d.TotalExamples <= 0 {
		return fmt.Errorf("non-positive total_examples %d", d.TotalExamples)
	}
	if d.SkippedLines < 0 {
		return fmt.Errorf("negative skipped_lines %d", d.SkippedLines)
	}
	if len(d.TemplateCounts) == 0 {
		return fmt.Errorf("empty template_counts")
	}
	for label, count := range d.TemplateCounts {
		if count < 1 {
			return fmt.Errorf("template %q has count %d, expected >= 1", label, count)
		}
	}
	for name, values := range d.ValueCounts {
		if !interfaces.ValidTokenType(interfaces.TokenType(name)) {
			return fmt.Errorf("unknown token type %q", name)
		}
		for value, count := range values {
			if count < 1 {
				return fmt.Errorf("%s value %q has count %d, expected >= 1", name, value, count)
			}
		}
	}
	return nil
}
