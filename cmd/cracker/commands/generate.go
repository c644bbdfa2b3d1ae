/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generate.go
Description: Generate and combine command implementations for the Akaylee Cracker.
Produces candidate passwords from a trained model with both generation strategies
and merges candidate artifacts into deduplicated, length-bounded lists.
*/

package commands

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-cracker/pkg/corpus"
	"github.com/kleascm/akaylee-cracker/pkg/generator"
	"github.com/kleascm/akaylee-cracker/pkg/utils"
)

// generateResult is the metrics record written after a generation run.
type generateResult struct {
	RunID             string        `json:"run_id"`
	SnapshotPath      string        `json:"snapshot_path"`
	ArtifactPath      string        `json:"artifact_path"`
	BeamCandidates    int           `json:"beam_candidates"`
	SampledCandidates int           `json:"sampled_candidates"`
	Combined          int           `json:"combined"`
	Seed              int64         `json:"seed"`
	Duration          time.Duration `json:"duration"`
}

// RunGenerate executes the candidate generation process
func RunGenerate(cmd *cobra.Command, args []string) error {
	fmt.Println("🎲 Akaylee Cracker - Generating Candidates")
	fmt.Println("==========================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	logger, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	runID := uuid.New().String()
	start := time.Now()

	// Load the trained model
	m, err := loadModel()
	if err != nil {
		return err
	}

	config := generatorConfigFromViper()
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid generator configuration: %w", err)
	}

	// Deterministic beam search
	beam, err := generator.NewBeamGenerator(m, config)
	if err != nil {
		return fmt.Errorf("failed to create beam generator: %w", err)
	}
	beamStart := time.Now()
	det, err := beam.Generate()
	if err != nil {
		return fmt.Errorf("beam generation failed: %w", err)
	}
	logger.LogGeneration(beam.Name(), len(det), time.Since(beamStart), map[string]interface{}{"run_id": runID})

	// Stochastic sampling
	sampler, err := generator.NewStochasticGenerator(m, config)
	if err != nil {
		return fmt.Errorf("failed to create stochastic generator: %w", err)
	}
	sampleStart := time.Now()
	sto, err := sampler.Generate()
	if err != nil {
		return fmt.Errorf("stochastic generation failed: %w", err)
	}
	logger.LogGeneration(sampler.Name(), len(sto), time.Since(sampleStart), map[string]interface{}{"run_id": runID})

	// Combine and write the artifact
	combined := generator.Combine(det, sto, config)
	artifactPath := viper.GetString("artifact_path")
	written, err := generator.WriteArtifact(artifactPath, combined)
	if err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	// Write the metrics record
	result := &generateResult{
		RunID:             runID,
		SnapshotPath:      viper.GetString("snapshot_path"),
		ArtifactPath:      artifactPath,
		BeamCandidates:    len(det),
		SampledCandidates: len(sto),
		Combined:          written,
		Seed:              config.Seed,
		Duration:          time.Since(start),
	}
	if _, err := utils.WriteRunMetrics("generate", runID, result); err != nil {
		logger.Warning("Failed to write run metrics", map[string]interface{}{"error": err.Error()})
	}

	// Print final statistics
	fmt.Println("\n📊 Generation Statistics")
	fmt.Println("=======================")
	fmt.Printf("Beam Candidates: %d\n", len(det))
	fmt.Printf("Sampled Candidates: %d\n", len(sto))
	fmt.Printf("Combined (deduplicated): %d\n", written)
	fmt.Printf("Artifact: %s\n", artifactPath)
	fmt.Printf("Duration: %v\n", time.Since(start))

	fmt.Println("\n✨ Generation completed!")
	return nil
}

// RunCombine merges candidate artifact files into one deduplicated list
func RunCombine(cmd *cobra.Command, args []string) error {
	fmt.Println("🔗 Akaylee Cracker - Combining Artifacts")
	fmt.Println("========================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	inputs := viper.GetStringSlice("combine_inputs")
	if len(inputs) == 0 {
		return fmt.Errorf("at least one input artifact is required")
	}

	minLength := viper.GetInt("min_length")
	maxLength := viper.GetInt("max_length")

	// Merge inputs in priority order with first-seen dedup and length bounds
	seen := make(map[string]struct{})
	var combined []string
	for _, input := range inputs {
		src, err := corpus.NewFileSource(input)
		if err != nil {
			return fmt.Errorf("failed to open artifact %s: %w", input, err)
		}
		for src.Scan() {
			candidate := src.Text()
			length := utf8.RuneCountInString(candidate)
			if length < minLength || length > maxLength {
				continue
			}
			if _, dup := seen[candidate]; dup {
				continue
			}
			seen[candidate] = struct{}{}
			combined = append(combined, candidate)
		}
		err = src.Err()
		src.Close()
		if err != nil {
			return fmt.Errorf("failed to read artifact %s: %w", input, err)
		}
	}

	artifactPath := viper.GetString("artifact_path")
	written, err := generator.WriteArtifact(artifactPath, combined)
	if err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	fmt.Printf("✅ Combined %d candidates from %d artifacts into %s\n", written, len(inputs), artifactPath)
	return nil
}
