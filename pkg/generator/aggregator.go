/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: aggregator.go
Description: Candidate aggregation for the Akaylee Cracker. Merges the deterministic
and stochastic candidate sequences into the final ordered artifact: deterministic
results first, first-seen deduplication, and length bounds enforcement. Also writes
the newline-delimited artifact files consumed by the cracking collaborator.
*/

package generator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

// Combine merges the two candidate sequences into one ordered, duplicate-free
// list of strings. Deterministic candidates come first by convention so the
// highest-confidence guesses are tried earliest; duplicates keep their first
// occurrence; strings outside [MinLength, MaxLength] are dropped.
func Combine(det, sto []interfaces.Candidate, config *interfaces.GeneratorConfig) []string {
	if config == nil {
		config = interfaces.DefaultGeneratorConfig()
	}

	seen := make(map[string]struct{}, len(det)+len(sto))
	combined := make([]string, 0, len(det)+len(sto))

	appendCandidates := func(candidates []interfaces.Candidate) {
		for _, cand := range candidates {
			length := utf8.RuneCountInString(cand.Text)
			if length < config.MinLength || length > config.MaxLength {
				continue
			}
			if _, dup := seen[cand.Text]; dup {
				continue
			}
			seen[cand.Text] = struct{}{}
			combined = append(combined, cand.Text)
		}
	}

	appendCandidates(det)
	appendCandidates(sto)
	return combined
}

// WriteArtifact writes candidates as a newline-delimited UTF-8 file, one per
// line, creating parent directories as needed. Paths ending in .gz are
// gzip-compressed. Candidates containing newlines are skipped — the artifact
// contract forbids embedded newlines. Returns the number of lines written.
func WriteArtifact(path string, candidates []string) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create artifact directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(file)
		defer gz.Close()
		w = gz
	}

	buffered := bufio.NewWriter(w)
	written := 0
	for _, cand := range candidates {
		if strings.ContainsAny(cand, "\r\n") {
			continue
		}
		if _, err := buffered.WriteString(cand); err != nil {
			return written, fmt.Errorf("failed to write artifact: %w", err)
		}
		if err := buffered.WriteByte('\n'); err != nil {
			return written, fmt.Errorf("failed to write artifact: %w", err)
		}
		written++
	}
	if err := buffered.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush artifact: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return written, fmt.Errorf("failed to flush artifact: %w", err)
		}
	}
	return written, nil
}

// Texts extracts the candidate strings from a candidate sequence, preserving
// order. Convenience for writing per-strategy artifacts.
func Texts(candidates []interfaces.Candidate) []string {
	texts := make([]string, len(candidates))
	for i, cand := range candidates {
		texts[i] = cand.Text
	}
	return texts
}
