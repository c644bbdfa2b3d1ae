/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: file_source.go
Description: Streaming corpus sources for the Akaylee Cracker. Provides buffered,
line-oriented readers over local wordlist files (with transparent gzip support) and
in-memory slices, all implementing the CorpusSource contract so training never holds
more than one line of the corpus in memory.
*/

package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

// maxLineBytes bounds a single corpus line. Leaked corpora occasionally
// contain junk lines far beyond any plausible password length.
const maxLineBytes = 1024 * 1024

// FileSource streams lines from a wordlist file. Files ending in .gz are
// decompressed on the fly. Blank lines are skipped. Close releases the file
// handle on every path.
type FileSource struct {
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
	line    string
}

// NewFileSource opens a wordlist for streaming.
func NewFileSource(path string) (*FileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}

	src := &FileSource{file: file}
	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open gzip corpus: %w", err)
		}
		src.gz = gz
		r = gz
	}

	src.scanner = bufio.NewScanner(r)
	src.scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return src, nil
}

// Scan advances to the next non-blank line.
func (s *FileSource) Scan() bool {
	for s.scanner.Scan() {
		line := strings.TrimRight(s.scanner.Text(), "\r")
		if line == "" {
			continue
		}
		s.line = line
		return true
	}
	return false
}

// Text returns the current line.
func (s *FileSource) Text() string { return s.line }

// Err reports any read failure after Scan returns false.
func (s *FileSource) Err() error { return s.scanner.Err() }

// Close releases the gzip stream and the file handle.
func (s *FileSource) Close() error {
	if s.gz != nil {
		s.gz.Close()
	}
	return s.file.Close()
}

// SliceSource streams lines from an in-memory slice. Used by tests and by
// small programmatic corpora.
type SliceSource struct {
	lines []string
	idx   int
	line  string
}

// NewSliceSource creates a source over the given lines.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

// Scan advances to the next line.
func (s *SliceSource) Scan() bool {
	if s.idx >= len(s.lines) {
		return false
	}
	s.line = s.lines[s.idx]
	s.idx++
	return true
}

// Text returns the current line.
func (s *SliceSource) Text() string { return s.line }

// Err always returns nil for an in-memory source.
func (s *SliceSource) Err() error { return nil }

// Close is a no-op for an in-memory source.
func (s *SliceSource) Close() error { return nil }

// ContextSource bounds another source with a context. Local file reads have
// no natural cancellation point, so long consumers (training over a large
// wordlist) wrap their source to honor shutdown signals between lines.
type ContextSource struct {
	ctx context.Context
	src interfaces.CorpusSource
}

// WithContext wraps src so Scan stops and Err reports the context error once
// ctx is cancelled.
func WithContext(ctx context.Context, src interfaces.CorpusSource) *ContextSource {
	return &ContextSource{ctx: ctx, src: src}
}

// Scan advances to the next line unless the context has been cancelled.
func (s *ContextSource) Scan() bool {
	if s.ctx.Err() != nil {
		return false
	}
	return s.src.Scan()
}

// Text returns the current line.
func (s *ContextSource) Text() string { return s.src.Text() }

// Err reports the context error if cancelled, otherwise the underlying
// source's error.
func (s *ContextSource) Err() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	return s.src.Err()
}

// Close releases the underlying source.
func (s *ContextSource) Close() error { return s.src.Close() }
