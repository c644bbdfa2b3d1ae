/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: pipeline.go
Description: Pipeline command implementation for the Akaylee Cracker. Runs the
full train, snapshot, generate, combine, and crack workflow as one tagged run
with graceful shutdown and final statistics reporting.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-cracker/pkg/cracker"
	"github.com/kleascm/akaylee-cracker/pkg/pipeline"
)

// RunPipeline executes the full cracking pipeline
func RunPipeline(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Akaylee Cracker - Full Pipeline Run")
	fmt.Println("======================================")
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

	config := &pipeline.Config{
		CorpusPath:      viper.GetString("corpus_path"),
		SnapshotPath:    viper.GetString("snapshot_path"),
		ArtifactPath:    viper.GetString("artifact_path"),
		Alpha:           viper.GetFloat64("alpha"),
		MaxSamples:      viper.GetInt64("max_samples"),
		TrimTopN:        viper.GetInt("trim_top_n"),
		Generator:       generatorConfigFromViper(),
		TargetDir:       viper.GetString("target_dir"),
		VerifierCommand: viper.GetStringSlice("verifier_command"),
		Cracker: &cracker.Config{
			MaxTries:       viper.GetInt64("max_tries"),
			PrintEvery:     viper.GetInt64("print_every"),
			AttemptTimeout: viper.GetDuration("attempt_timeout"),
		},
		HTTPTimeout: viper.GetDuration("http_timeout"),
	}

	p, err := pipeline.New(config, logger)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping pipeline...")
		cancel()
	}()

	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	// Print final statistics
	fmt.Println("\n📊 Pipeline Statistics")
	fmt.Println("=====================")
	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Trained Examples: %d\n", result.TrainedExamples)
	fmt.Printf("Skipped Lines: %d\n", result.SkippedLines)
	fmt.Printf("Unique Templates: %d\n", result.UniqueTemplates)
	fmt.Printf("Beam Candidates: %d\n", result.BeamCandidates)
	fmt.Printf("Sampled Candidates: %d\n", result.SampledCandidates)
	fmt.Printf("Combined Candidates: %d\n", result.Combined)
	fmt.Printf("Artifact: %s\n", result.ArtifactPath)
	if result.SnapshotPath != "" {
		fmt.Printf("Snapshot: %s\n", result.SnapshotPath)
	}
	for _, crackResult := range result.CrackResults {
		if crackResult.Success {
			fmt.Printf("✅ %s: %q (%d attempts)\n", crackResult.Target, crackResult.Password, crackResult.Attempts)
		} else {
			fmt.Printf("❌ %s: not found (%d attempts)\n", crackResult.Target, crackResult.Attempts)
		}
	}
	fmt.Printf("Total Duration: %v\n", result.Duration)

	fmt.Println("\n✨ Pipeline run completed!")
	return nil
}
