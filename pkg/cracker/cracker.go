/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cracker.go
Description: Candidate-driven cracking loop for the Akaylee Cracker. Streams
candidates from a corpus source and tries each one against a target, with periodic
progress logging, attempt budgets, context cancellation, and batch runs over whole
directories of protected documents.
*/

package cracker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/logging"
)

// protectedExtensions are the document types picked up by directory runs.
var protectedExtensions = []string{".docx", ".pptx", ".xlsx", ".pdf"}

// CrackResult records the outcome of one cracking run against one target.
type CrackResult struct {
	Target   string        `json:"target"`
	Password string        `json:"password,omitempty"`
	Attempts int64         `json:"attempts"`
	Duration time.Duration `json:"duration"`
	Success  bool          `json:"success"`
}

// Config tunes a cracking run.
type Config struct {
	// MaxTries stops the run after this many attempts. Zero means
	// unlimited: run until the candidate stream is exhausted.
	MaxTries int64

	// PrintEvery controls progress logging frequency in attempts.
	PrintEvery int64

	// AttemptTimeout bounds a single attempt. A verifier that hangs past
	// the deadline is killed and the attempt counts as a miss. Zero means
	// no per-attempt bound.
	AttemptTimeout time.Duration
}

// DefaultConfig returns the standard cracking configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxTries:   0,
		PrintEvery: 1000,
	}
}

// Cracker drives candidates from a source against targets.
type Cracker struct {
	config *Config
	logger *logging.Logger
}

// New creates a cracker. The logger may be nil for silent runs.
func New(config *Config, logger *logging.Logger) *Cracker {
	if config == nil {
		config = DefaultConfig()
	}
	if config.PrintEvery <= 0 {
		config.PrintEvery = 1000
	}
	return &Cracker{config: config, logger: logger}
}

// Crack streams candidates from the source and tries each against the
// target until one succeeds, the attempt budget runs out, the stream ends,
// or the context is cancelled. The source is consumed but not closed; the
// caller owns its lifecycle.
func (c *Cracker) Crack(ctx context.Context, target Target, candidates interfaces.CorpusSource) (*CrackResult, error) {
	result := &CrackResult{Target: target.Name()}
	start := time.Now()

	for candidates.Scan() {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("cracking interrupted: %w", err)
		}
		if c.config.MaxTries > 0 && result.Attempts >= c.config.MaxTries {
			break
		}

		candidate := candidates.Text()
		result.Attempts++

		ok, err := c.try(ctx, target, candidate)
		if err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("attempt %d against %s failed: %w", result.Attempts, target.Name(), err)
		}
		if ok {
			result.Success = true
			result.Password = candidate
			result.Duration = time.Since(start)
			if c.logger != nil {
				c.logger.LogCrackResult(target.Name(), true, result.Attempts, result.Duration, nil)
			}
			return result, nil
		}

		if c.logger != nil && result.Attempts%c.config.PrintEvery == 0 {
			elapsed := time.Since(start).Seconds()
			rate := 0.0
			if elapsed > 0 {
				rate = float64(result.Attempts) / elapsed
			}
			c.logger.LogCrackAttempt(target.Name(), result.Attempts, rate, candidate, nil)
		}
	}

	result.Duration = time.Since(start)
	if err := candidates.Err(); err != nil {
		return result, fmt.Errorf("candidate stream failed: %w", err)
	}
	if c.logger != nil {
		c.logger.LogCrackResult(target.Name(), false, result.Attempts, result.Duration, nil)
	}
	return result, nil
}

// try runs one attempt under the per-attempt deadline, when configured.
func (c *Cracker) try(ctx context.Context, target Target, password string) (bool, error) {
	if c.config.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.AttemptTimeout)
		defer cancel()
	}
	return target.Try(ctx, password)
}

// SourceFactory opens a fresh candidate stream. Directory runs need one
// stream per target, so the caller supplies a factory rather than a single
// source.
type SourceFactory func() (interfaces.CorpusSource, error)

// TargetFactory builds a target for a discovered document path.
type TargetFactory func(path string) (Target, error)

// CrackDirectory finds every protected document under dir (sorted for
// reproducible run order) and runs the full candidate stream against each.
// A per-target failure is recorded in its result and does not stop the
// remaining targets; stream-open failures do.
func (c *Cracker) CrackDirectory(ctx context.Context, dir string, makeTarget TargetFactory, openSource SourceFactory) ([]*CrackResult, error) {
	paths, err := DiscoverTargets(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &interfaces.InvalidInputError{Reason: fmt.Sprintf("no protected documents found under %s", dir)}
	}

	results := make([]*CrackResult, 0, len(paths))
	for _, path := range paths {
		target, err := makeTarget(path)
		if err != nil {
			return results, fmt.Errorf("failed to build target for %s: %w", path, err)
		}

		source, err := openSource()
		if err != nil {
			return results, fmt.Errorf("failed to open candidate stream for %s: %w", path, err)
		}

		result, err := c.Crack(ctx, target, source)
		source.Close()
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			if ctx.Err() != nil {
				return results, err
			}
			if c.logger != nil {
				c.logger.Error("Cracking run failed", map[string]interface{}{
					"target": path,
					"error":  err.Error(),
				})
			}
		}
	}
	return results, nil
}

// DiscoverTargets walks dir and returns the sorted paths of every protected
// document type the cracker knows how to drive.
func DiscoverTargets(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range protectedExtensions {
			if ext == want {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
