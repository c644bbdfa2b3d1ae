/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: train.go
Description: Train command implementation for the Akaylee Cracker. Streams a
password corpus into a fresh statistical model and persists the trained model
as a versioned snapshot, with progress logging and a metrics record.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-cracker/pkg/model"
	"github.com/kleascm/akaylee-cracker/pkg/normalizer"
	"github.com/kleascm/akaylee-cracker/pkg/pipeline"
	"github.com/kleascm/akaylee-cracker/pkg/tokenizer"
	"github.com/kleascm/akaylee-cracker/pkg/utils"
	"github.com/kleascm/akaylee-cracker/pkg/vocab"
)

// trainResult is the metrics record written after a training run.
type trainResult struct {
	RunID           string        `json:"run_id"`
	CorpusPath      string        `json:"corpus_path"`
	SnapshotPath    string        `json:"snapshot_path"`
	Alpha           float64       `json:"alpha"`
	Processed       int64         `json:"processed"`
	Skipped         int64         `json:"skipped"`
	Filtered        int64         `json:"filtered"`
	UniqueTemplates int           `json:"unique_templates"`
	Duration        time.Duration `json:"duration"`
}

// RunTrain executes the training process
func RunTrain(cmd *cobra.Command, args []string) error {
	fmt.Println("🧠 Akaylee Cracker - Training Password Model")
	fmt.Println("============================================")
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
	corpusPath := viper.GetString("corpus_path")
	snapshotPath := viper.GetString("snapshot_path")

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping training...")
		cancel()
	}()

	// Open the corpus
	src, err := pipeline.OpenCorpus(ctx, corpusPath, viper.GetDuration("http_timeout"))
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer src.Close()

	// Build and fit the model
	n := normalizer.New()
	t := tokenizer.New(vocab.New())
	m := model.New(viper.GetFloat64("alpha"), n, t)

	opts := model.FitOptions{
		MinLength:  viper.GetInt("min_length"),
		MaxSamples: viper.GetInt64("max_samples"),
		TrimTopN:   viper.GetInt("trim_top_n"),
		Progress: func(processed, skipped int64) {
			logger.LogTraining(processed, skipped, map[string]interface{}{"run_id": runID})
		},
	}

	report, err := m.Fit(src, opts)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	// Persist the snapshot
	if err := m.Save(snapshotPath); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	logger.LogSnapshot(snapshotPath, m.UniqueTemplates(), m.TotalExamples(), map[string]interface{}{"run_id": runID})

	// Write the metrics record
	result := &trainResult{
		RunID:           runID,
		CorpusPath:      corpusPath,
		SnapshotPath:    snapshotPath,
		Alpha:           m.Alpha(),
		Processed:       report.Processed,
		Skipped:         report.Skipped,
		Filtered:        report.Filtered,
		UniqueTemplates: report.UniqueTemplates,
		Duration:        report.Duration,
	}
	if _, err := utils.WriteRunMetrics("train", runID, result); err != nil {
		logger.Warning("Failed to write run metrics", map[string]interface{}{"error": err.Error()})
	}

	// Print final statistics
	fmt.Println("\n📊 Training Statistics")
	fmt.Println("=====================")
	fmt.Printf("Processed: %d\n", report.Processed)
	fmt.Printf("Skipped: %d\n", report.Skipped)
	fmt.Printf("Filtered: %d\n", report.Filtered)
	fmt.Printf("Unique Templates: %d\n", report.UniqueTemplates)
	fmt.Printf("Duration: %v\n", report.Duration)
	fmt.Printf("Snapshot: %s\n", snapshotPath)

	fmt.Println("\n✨ Training completed!")
	return nil
}
