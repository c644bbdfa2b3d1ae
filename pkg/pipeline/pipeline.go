/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: pipeline.go
Description: End-to-end pipeline orchestration for the Akaylee Cracker. Runs the
full train → snapshot → generate → combine → crack flow as a single tagged run:
trains the model from a corpus, persists the snapshot, produces both candidate
streams, writes the combined artifact, and optionally drives it against a directory
of protected documents. Every run gets a UUID and a metrics record.
*/

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kleascm/akaylee-cracker/pkg/corpus"
	"github.com/kleascm/akaylee-cracker/pkg/cracker"
	"github.com/kleascm/akaylee-cracker/pkg/generator"
	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/logging"
	"github.com/kleascm/akaylee-cracker/pkg/model"
	"github.com/kleascm/akaylee-cracker/pkg/normalizer"
	"github.com/kleascm/akaylee-cracker/pkg/tokenizer"
	"github.com/kleascm/akaylee-cracker/pkg/utils"
	"github.com/kleascm/akaylee-cracker/pkg/vocab"
)

// Config holds everything a pipeline run needs.
type Config struct {
	// CorpusPath is the training wordlist (file path or http(s) URL).
	CorpusPath string

	// SnapshotPath is where the trained model is persisted. Empty skips
	// the snapshot phase.
	SnapshotPath string

	// ArtifactPath is where the combined candidate list is written.
	ArtifactPath string

	// Alpha is the Laplace smoothing parameter.
	Alpha float64

	// MaxSamples bounds training input lines. Zero means the whole corpus.
	MaxSamples int64

	// TrimTopN keeps only the most frequent values per token type during
	// training. Zero disables trimming.
	TrimTopN int

	// Generator carries the beam and sampling parameters.
	Generator *interfaces.GeneratorConfig

	// TargetDir optionally points at a directory of protected documents
	// to crack with the generated artifact. Empty skips the crack phase.
	TargetDir string

	// VerifierCommand is the external command used to try passwords
	// against documents in TargetDir; "{}" marks the candidate and
	// "{target}" the document path. Required when TargetDir is set.
	VerifierCommand []string

	// Cracker tunes the cracking loop.
	Cracker *cracker.Config

	// HTTPTimeout bounds remote corpus downloads.
	HTTPTimeout time.Duration
}

// Result summarizes a completed pipeline run for the metrics record.
type Result struct {
	RunID             string                `json:"run_id"`
	CorpusPath        string                `json:"corpus_path"`
	TrainedExamples   int64                 `json:"trained_examples"`
	SkippedLines      int64                 `json:"skipped_lines"`
	UniqueTemplates   int                   `json:"unique_templates"`
	BeamCandidates    int                   `json:"beam_candidates"`
	SampledCandidates int                   `json:"sampled_candidates"`
	Combined          int                   `json:"combined"`
	ArtifactPath      string                `json:"artifact_path"`
	SnapshotPath      string                `json:"snapshot_path,omitempty"`
	CrackResults      []*cracker.CrackResult `json:"crack_results,omitempty"`
	Duration          time.Duration         `json:"duration"`
}

// Pipeline runs the full cracking workflow.
type Pipeline struct {
	config *Config
	logger *logging.Logger
}

// New creates a pipeline. The logger may be nil for silent runs.
func New(config *Config, logger *logging.Logger) (*Pipeline, error) {
	if config == nil {
		return nil, &interfaces.InvalidInputError{Reason: "pipeline config must not be nil"}
	}
	if config.CorpusPath == "" {
		return nil, &interfaces.InvalidInputError{Reason: "corpus path must not be empty"}
	}
	if config.ArtifactPath == "" {
		return nil, &interfaces.InvalidInputError{Reason: "artifact path must not be empty"}
	}
	if config.Generator == nil {
		config.Generator = interfaces.DefaultGeneratorConfig()
	}
	if err := config.Generator.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	if config.TargetDir != "" && len(config.VerifierCommand) == 0 {
		return nil, &interfaces.InvalidInputError{Reason: "cracking a target directory requires a verifier command"}
	}
	if config.Alpha <= 0 {
		config.Alpha = 1.0
	}
	if config.HTTPTimeout <= 0 {
		config.HTTPTimeout = 10 * time.Minute
	}
	return &Pipeline{config: config, logger: logger}, nil
}

// Run executes every configured phase in order and writes a metrics record
// for the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	start := time.Now()
	result := &Result{RunID: runID, CorpusPath: p.config.CorpusPath}

	p.info("Pipeline run started", map[string]interface{}{
		"run_id": runID,
		"corpus": p.config.CorpusPath,
	})

	// Phase 1: train
	m, err := p.train(ctx, result)
	if err != nil {
		return result, err
	}

	// Phase 2: snapshot
	if p.config.SnapshotPath != "" {
		if err := m.Save(p.config.SnapshotPath); err != nil {
			return result, fmt.Errorf("snapshot phase failed: %w", err)
		}
		result.SnapshotPath = p.config.SnapshotPath
		if p.logger != nil {
			p.logger.LogSnapshot(p.config.SnapshotPath, m.UniqueTemplates(), m.TotalExamples(), nil)
		}
	}

	// Phase 3: generate both candidate streams
	det, sto, err := p.generate(m, result)
	if err != nil {
		return result, err
	}

	// Phase 4: combine and write the artifact
	combined := generator.Combine(det, sto, p.config.Generator)
	result.Combined = len(combined)
	written, err := generator.WriteArtifact(p.config.ArtifactPath, combined)
	if err != nil {
		return result, fmt.Errorf("artifact phase failed: %w", err)
	}
	result.ArtifactPath = p.config.ArtifactPath
	p.info("Combined artifact written", map[string]interface{}{
		"run_id":     runID,
		"path":       p.config.ArtifactPath,
		"candidates": written,
	})

	// Phase 5: crack (optional)
	if p.config.TargetDir != "" {
		if err := p.crack(ctx, result); err != nil {
			return result, err
		}
	}

	result.Duration = time.Since(start)
	if p.logger != nil {
		p.logger.LogStats(result.TrainedExamples, result.BeamCandidates+result.SampledCandidates, result.Combined, map[string]interface{}{
			"run_id": runID,
		})
	}

	if path, err := utils.WriteRunMetrics("pipeline", runID, result); err != nil {
		p.info("Failed to write run metrics", map[string]interface{}{"error": err.Error()})
	} else {
		p.info("Run metrics written", map[string]interface{}{"path": path})
	}

	return result, nil
}

// train streams the corpus into a fresh model.
func (p *Pipeline) train(ctx context.Context, result *Result) (*model.Model, error) {
	src, err := OpenCorpus(ctx, p.config.CorpusPath, p.config.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("training phase failed: %w", err)
	}
	defer src.Close()

	n := normalizer.New()
	t := tokenizer.New(vocab.New())
	m := model.New(p.config.Alpha, n, t)

	opts := model.FitOptions{
		MinLength:  p.config.Generator.MinLength,
		MaxSamples: p.config.MaxSamples,
		TrimTopN:   p.config.TrimTopN,
	}
	if p.logger != nil {
		opts.Progress = func(processed, skipped int64) {
			p.logger.LogTraining(processed, skipped, nil)
		}
	}

	report, err := m.Fit(src, opts)
	if err != nil {
		return nil, fmt.Errorf("training phase failed: %w", err)
	}

	result.TrainedExamples = report.Processed
	result.SkippedLines = report.Skipped
	result.UniqueTemplates = report.UniqueTemplates
	p.info("Training complete", map[string]interface{}{
		"processed":        report.Processed,
		"skipped":          report.Skipped,
		"filtered":         report.Filtered,
		"unique_templates": report.UniqueTemplates,
		"duration":         report.Duration,
	})
	return m, nil
}

// generate runs the deterministic beam and the stochastic sampler.
func (p *Pipeline) generate(m *model.Model, result *Result) ([]interfaces.Candidate, []interfaces.Candidate, error) {
	beam, err := generator.NewBeamGenerator(m, p.config.Generator)
	if err != nil {
		return nil, nil, fmt.Errorf("generation phase failed: %w", err)
	}
	det, err := p.runGenerator(beam)
	if err != nil {
		return nil, nil, err
	}
	result.BeamCandidates = len(det)

	sampler, err := generator.NewStochasticGenerator(m, p.config.Generator)
	if err != nil {
		return nil, nil, fmt.Errorf("generation phase failed: %w", err)
	}
	sto, err := p.runGenerator(sampler)
	if err != nil {
		return nil, nil, err
	}
	result.SampledCandidates = len(sto)

	return det, sto, nil
}

// runGenerator times one generation strategy and logs its output size.
func (p *Pipeline) runGenerator(g interfaces.Generator) ([]interfaces.Candidate, error) {
	start := time.Now()
	out, err := g.Generate()
	if err != nil {
		return nil, fmt.Errorf("%s generation failed: %w", g.Name(), err)
	}
	if p.logger != nil {
		p.logger.LogGeneration(g.Name(), len(out), time.Since(start), nil)
	}
	return out, nil
}

// crack drives the written artifact against every protected document in the
// target directory.
func (p *Pipeline) crack(ctx context.Context, result *Result) error {
	c := cracker.New(p.config.Cracker, p.logger)

	makeTarget := func(path string) (cracker.Target, error) {
		command := make([]string, len(p.config.VerifierCommand))
		for i, arg := range p.config.VerifierCommand {
			command[i] = expandTargetPlaceholder(arg, path)
		}
		return cracker.NewExecTarget(path, command)
	}
	openSource := func() (interfaces.CorpusSource, error) {
		return corpus.NewFileSource(p.config.ArtifactPath)
	}

	results, err := c.CrackDirectory(ctx, p.config.TargetDir, makeTarget, openSource)
	result.CrackResults = results
	if err != nil {
		return fmt.Errorf("cracking phase failed: %w", err)
	}
	return nil
}

// info logs when a logger is configured.
func (p *Pipeline) info(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, fields)
	}
}

// OpenCorpus opens a corpus path as a streaming source. Paths beginning
// with http:// or https:// stream over the network; everything else is a
// local file. Either way the context cancels the stream mid-read, so a
// shutdown signal interrupts training rather than waiting for the corpus
// to end.
func OpenCorpus(ctx context.Context, path string, timeout time.Duration) (interfaces.CorpusSource, error) {
	if isHTTP(path) {
		return corpus.NewHTTPSource(ctx, path, timeout)
	}
	src, err := corpus.NewFileSource(path)
	if err != nil {
		return nil, err
	}
	return corpus.WithContext(ctx, src), nil
}

// expandTargetPlaceholder substitutes the document path into a verifier
// argument.
func expandTargetPlaceholder(arg, path string) string {
	return strings.ReplaceAll(arg, "{target}", path)
}

func isHTTP(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
