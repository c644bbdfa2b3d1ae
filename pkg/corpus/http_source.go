/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: http_source.go
Description: HTTP corpus source for the Akaylee Cracker. Streams a remote wordlist
(HTTP or HTTPS, optionally gzip-compressed) into the CorpusSource contract so models
can be trained directly from published corpora without staging them on disk first.
*/

package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// HTTPSource streams lines from a wordlist URL. The response body is read
// incrementally; nothing beyond the scanner buffer is held in memory.
type HTTPSource struct {
	url     string
	body    io.ReadCloser
	gz      *gzip.Reader
	scanner *bufio.Scanner
	line    string
	cancel  context.CancelFunc
}

// NewHTTPSource fetches url and prepares it for line streaming. URLs ending
// in .gz are decompressed on the fly. The context bounds the whole download,
// not just the dial.
func NewHTTPSource(ctx context.Context, url string, timeout time.Duration) (*HTTPSource, error) {
	// The timeout covers the whole download, not just the dial; the body
	// outlives this function, so cancellation is released in Close.
	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to build corpus request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to fetch corpus: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("corpus URL %s returned status %d", url, resp.StatusCode)
	}

	src := &HTTPSource{url: url, body: resp.Body, cancel: cancel}
	var r io.Reader = resp.Body
	if strings.HasSuffix(url, ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			cancel()
			return nil, fmt.Errorf("failed to open gzip corpus stream: %w", err)
		}
		src.gz = gz
		r = gz
	}

	src.scanner = bufio.NewScanner(r)
	src.scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return src, nil
}

// URL returns the source URL.
func (s *HTTPSource) URL() string { return s.url }

// Scan advances to the next non-blank line.
func (s *HTTPSource) Scan() bool {
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
func (s *HTTPSource) Text() string { return s.line }

// Err reports any read failure after Scan returns false.
func (s *HTTPSource) Err() error { return s.scanner.Err() }

// Close releases the gzip stream, the response body, and the request
// context.
func (s *HTTPSource) Close() error {
	if s.gz != nil {
		s.gz.Close()
	}
	err := s.body.Close()
	if s.cancel != nil {
		s.cancel()
	}
	return err
}
