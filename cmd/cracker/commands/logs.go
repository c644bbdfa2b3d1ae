/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logs.go
Description: Logs command implementation for the Akaylee Cracker. Summarizes
past runs from the written log files and applies the retention policy to the
log directory.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-cracker/pkg/logging"
)

// RunLogs analyzes the log directory and optionally sweeps old files
func RunLogs(cmd *cobra.Command, args []string) error {
	fmt.Println("📜 Akaylee Cracker - Log Summary")
	fmt.Println("================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logDir := viper.GetString("log_dir")
	manager := logging.NewLogManager(logDir, viper.GetInt("log_max_files"), viper.GetBool("log_compress"))

	if viper.GetBool("logs_sweep") {
		if err := manager.Sweep(); err != nil {
			return fmt.Errorf("failed to sweep log directory: %w", err)
		}
	}

	stats, err := manager.GetLogStats()
	if err != nil {
		return fmt.Errorf("failed to collect log stats: %w", err)
	}
	fmt.Printf("Directory: %s\n", logDir)
	fmt.Printf("Files: %d (%d compressed, %d plain)\n", stats.TotalFiles, stats.CompressedFiles, stats.UncompressedFiles)
	fmt.Printf("Total Size: %d bytes\n", stats.TotalSize)
	if stats.TotalFiles > 0 {
		fmt.Printf("Oldest: %s\n", stats.OldestFile.Format("2006-01-02 15:04:05"))
		fmt.Printf("Newest: %s\n", stats.NewestFile.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()

	analysis, err := logging.NewLogAnalyzer(logDir).AnalyzeLogs()
	if err != nil {
		return fmt.Errorf("failed to analyze logs: %w", err)
	}
	fmt.Println(analysis.GetLogSummary())

	return nil
}
