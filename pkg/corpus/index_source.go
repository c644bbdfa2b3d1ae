/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: index_source.go
Description: Wordlist discovery and chained streaming for the Akaylee Cracker.
Scrapes anchor links from an HTML index page (the usual publishing format for
wordlist collections) and streams every discovered wordlist in sequence as one
continuous corpus.
*/

package corpus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
)

// wordlistExtensions are the link suffixes treated as wordlist files when
// scraping an index page.
var wordlistExtensions = []string{".txt", ".lst", ".txt.gz", ".lst.gz"}

// DiscoverWordlists fetches an HTML index page and returns the absolute URLs
// of every anchor pointing at a wordlist file, in document order with
// duplicates removed.
func DiscoverWordlists(ctx context.Context, indexURL string, timeout time.Duration) ([]string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build index request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index page %s returned status %d", indexURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL: %w", err)
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !isWordlistLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})
	return links, nil
}

// isWordlistLink reports whether a href looks like a wordlist file.
func isWordlistLink(href string) bool {
	lower := strings.ToLower(href)
	for _, ext := range wordlistExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// MultiSource chains several corpus sources into one continuous stream,
// opening each lazily and closing it before moving to the next.
type MultiSource struct {
	ctx     context.Context
	timeout time.Duration
	urls    []string
	idx     int
	current interfaces.CorpusSource
	err     error
}

// NewIndexSource scrapes indexURL for wordlist links and returns a source
// that streams every discovered wordlist in turn.
func NewIndexSource(ctx context.Context, indexURL string, timeout time.Duration) (*MultiSource, error) {
	links, err := DiscoverWordlists(ctx, indexURL, timeout)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("no wordlist links found at %s", indexURL)
	}
	return &MultiSource{ctx: ctx, timeout: timeout, urls: links}, nil
}

// Scan advances to the next line, crossing wordlist boundaries
// transparently.
func (s *MultiSource) Scan() bool {
	for {
		if s.current == nil {
			if s.idx >= len(s.urls) {
				return false
			}
			src, err := NewHTTPSource(s.ctx, s.urls[s.idx], s.timeout)
			s.idx++
			if err != nil {
				s.err = err
				return false
			}
			s.current = src
		}
		if s.current.Scan() {
			return true
		}
		if err := s.current.Err(); err != nil {
			s.err = err
			s.current.Close()
			s.current = nil
			return false
		}
		s.current.Close()
		s.current = nil
	}
}

// Text returns the current line.
func (s *MultiSource) Text() string {
	if s.current == nil {
		return ""
	}
	return s.current.Text()
}

// Err reports the first failure encountered while streaming.
func (s *MultiSource) Err() error { return s.err }

// Close releases the currently open source, if any.
func (s *MultiSource) Close() error {
	if s.current != nil {
		err := s.current.Close()
		s.current = nil
		return err
	}
	return nil
}
