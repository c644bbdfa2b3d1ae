/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: crack.go
Description: Crack command implementation for the Akaylee Cracker. Drives a
candidate wordlist against password-protected documents, one target or a whole
directory, with progress logging, attempt budgets, and graceful shutdown.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-cracker/pkg/corpus"
	"github.com/kleascm/akaylee-cracker/pkg/cracker"
	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/utils"
)

// RunCrack executes the cracking process
func RunCrack(cmd *cobra.Command, args []string) error {
	fmt.Println("🔓 Akaylee Cracker - Cracking Session")
	fmt.Println("=====================================")
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

	wordlist := viper.GetString("wordlist")
	targetPath := viper.GetString("target_path")
	targetDir := viper.GetString("target_dir")
	verifierCommand := viper.GetStringSlice("verifier_command")

	if targetPath == "" && targetDir == "" {
		return fmt.Errorf("either --target or --target-dir is required")
	}
	if targetPath != "" && targetDir != "" {
		return fmt.Errorf("--target and --target-dir are mutually exclusive")
	}

	runID := uuid.New().String()
	config := &cracker.Config{
		MaxTries:       viper.GetInt64("max_tries"),
		PrintEvery:     viper.GetInt64("print_every"),
		AttemptTimeout: viper.GetDuration("attempt_timeout"),
	}
	c := cracker.New(config, logger)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping cracker...")
		cancel()
	}()

	makeTarget := func(path string) (cracker.Target, error) {
		command := make([]string, len(verifierCommand))
		for i, arg := range verifierCommand {
			command[i] = strings.ReplaceAll(arg, "{target}", path)
		}
		return cracker.NewExecTarget(path, command)
	}
	openSource := func() (interfaces.CorpusSource, error) {
		return corpus.NewFileSource(wordlist)
	}

	var results []*cracker.CrackResult
	if targetDir != "" {
		results, err = c.CrackDirectory(ctx, targetDir, makeTarget, openSource)
		if err != nil {
			return err
		}
	} else {
		target, err := makeTarget(targetPath)
		if err != nil {
			return fmt.Errorf("failed to build target: %w", err)
		}
		source, err := openSource()
		if err != nil {
			return fmt.Errorf("failed to open wordlist: %w", err)
		}
		result, err := c.Crack(ctx, target, source)
		source.Close()
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			return err
		}
	}

	// Write the metrics record
	if _, err := utils.WriteRunMetrics("crack", runID, results); err != nil {
		logger.Warning("Failed to write run metrics", map[string]interface{}{"error": err.Error()})
	}

	// Print final statistics
	fmt.Println("\n📊 Cracking Results")
	fmt.Println("==================")
	found := 0
	for _, result := range results {
		if result.Success {
			found++
			fmt.Printf("✅ %s: %q (%d attempts, %v)\n", result.Target, result.Password, result.Attempts, result.Duration)
		} else {
			fmt.Printf("❌ %s: not found (%d attempts, %v)\n", result.Target, result.Attempts, result.Duration)
		}
	}
	fmt.Printf("\nCracked %d of %d targets\n", found, len(results))

	fmt.Println("\n✨ Cracking session completed!")
	return nil
}
