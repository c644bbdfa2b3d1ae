/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Log retention and analysis for the Akaylee Cracker. The manager
enforces the retention policy over the per-run log files the logger writes
(compression of finished files, pruning beyond the file budget) and the analyzer
reconstructs run statistics from the written logs.
*/

package logging

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// logFilePrefix is the filename prefix of every log file the logger writes.
const logFilePrefix = "akaylee-cracker_"

// LogManager enforces the retention policy over the log directory. The
// logger drives it on Close; it can also run standalone over an existing
// directory.
type LogManager struct {
	logDir   string
	maxFiles int
	compress bool
}

// NewLogManager creates a log manager for a log directory.
func NewLogManager(logDir string, maxFiles int, compress bool) *LogManager {
	return &LogManager{
		logDir:   logDir,
		maxFiles: maxFiles,
		compress: compress,
	}
}

// CompressFinished gzip-compresses every finished log file in the directory
// and removes the originals. Log files are per-run, so any plain .log file
// belongs to a run that has ended (or is ending, when called from Close).
func (lm *LogManager) CompressFinished() error {
	files, err := filepath.Glob(filepath.Join(lm.logDir, logFilePrefix+"*.log"))
	if err != nil {
		return fmt.Errorf("failed to glob log files: %w", err)
	}

	for _, file := range files {
		if err := lm.compressFile(file); err != nil {
			return fmt.Errorf("failed to compress %s: %w", file, err)
		}
	}
	return nil
}

// compressFile gzips one log file and removes the original.
func (lm *LogManager) compressFile(path string) error {
	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer source.Close()

	compressed, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer compressed.Close()

	gz := gzip.NewWriter(compressed)
	if _, err := io.Copy(gz, source); err != nil {
		gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	return os.Remove(path)
}

// CleanupOldLogs removes the oldest log files (plain and compressed) beyond
// the retention budget.
func (lm *LogManager) CleanupOldLogs() error {
	files, err := filepath.Glob(filepath.Join(lm.logDir, logFilePrefix+"*.log*"))
	if err != nil {
		return fmt.Errorf("failed to glob log files: %w", err)
	}
	if len(files) <= lm.maxFiles {
		return nil
	}

	// Oldest first.
	sort.Slice(files, func(i, j int) bool {
		statI, _ := os.Stat(files[i])
		statJ, _ := os.Stat(files[j])
		return statI.ModTime().Before(statJ.ModTime())
	})

	for _, file := range files[:len(files)-lm.maxFiles] {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", file, err)
		}
	}
	return nil
}

// Sweep applies the full retention policy: compress finished files when
// compression is enabled, then prune beyond the file budget.
func (lm *LogManager) Sweep() error {
	if lm.compress {
		if err := lm.CompressFinished(); err != nil {
			return err
		}
	}
	return lm.CleanupOldLogs()
}

// GetLogStats returns statistics about the log directory.
func (lm *LogManager) GetLogStats() (*LogStats, error) {
	files, err := filepath.Glob(filepath.Join(lm.logDir, logFilePrefix+"*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}

	stats := &LogStats{
		TotalFiles: len(files),
		OldestFile: time.Now(),
	}
	for _, file := range files {
		stat, err := os.Stat(file)
		if err != nil {
			continue
		}

		stats.TotalSize += stat.Size()
		if stat.ModTime().Before(stats.OldestFile) {
			stats.OldestFile = stat.ModTime()
		}
		if stat.ModTime().After(stats.NewestFile) {
			stats.NewestFile = stat.ModTime()
		}

		if strings.HasSuffix(file, ".gz") {
			stats.CompressedFiles++
		} else {
			stats.UncompressedFiles++
		}
	}
	return stats, nil
}

// LogStats holds statistics about log files
type LogStats struct {
	TotalFiles        int       `json:"total_files"`
	TotalSize         int64     `json:"total_size"`
	CompressedFiles   int       `json:"compressed_files"`
	UncompressedFiles int       `json:"uncompressed_files"`
	OldestFile        time.Time `json:"oldest_file"`
	NewestFile        time.Time `json:"newest_file"`
}

// LogAnalyzer reconstructs run statistics from written log files.
type LogAnalyzer struct {
	logDir string
}

// NewLogAnalyzer creates an analyzer for a log directory.
func NewLogAnalyzer(logDir string) *LogAnalyzer {
	return &LogAnalyzer{logDir: logDir}
}

// AnalyzeLogs scans every plain log file in the directory and tallies log
// levels and domain events.
func (la *LogAnalyzer) AnalyzeLogs() (*LogAnalysis, error) {
	files, err := filepath.Glob(filepath.Join(la.logDir, logFilePrefix+"*.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}

	analysis := &LogAnalysis{
		StartTime: time.Now(),
		LogFiles:  len(files),
	}
	for _, file := range files {
		if err := la.analyzeFile(file, analysis); err != nil {
			return nil, fmt.Errorf("failed to analyze file %s: %w", file, err)
		}
	}
	return analysis, nil
}

// analyzeFile tallies one log file line by line.
func (la *LogAnalyzer) analyzeFile(path string, analysis *LogAnalysis) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		la.analyzeLine(scanner.Text(), analysis)
	}
	return scanner.Err()
}

// analyzeLine tallies one log line. The event strings mirror the messages
// the logger's domain methods emit.
func (la *LogAnalyzer) analyzeLine(line string, analysis *LogAnalysis) {
	analysis.TotalLines++

	switch {
	case strings.Contains(line, "DEBUG"):
		analysis.DebugCount++
	case strings.Contains(line, "INFO"):
		analysis.InfoCount++
	case strings.Contains(line, "WARN"):
		analysis.WarningCount++
	case strings.Contains(line, "ERROR"):
		analysis.ErrorCount++
	case strings.Contains(line, "FATAL"):
		analysis.FatalCount++
	}

	switch {
	case strings.Contains(line, "Training progress"):
		analysis.TrainingCount++
	case strings.Contains(line, "Candidates generated"):
		analysis.GenerationCount++
	case strings.Contains(line, "Model snapshot"):
		analysis.SnapshotCount++
	case strings.Contains(line, "Crack progress"):
		analysis.CrackProgressCount++
	case strings.Contains(line, "Password found"):
		analysis.PasswordFoundCount++
	}
}

// LogAnalysis holds the results of log analysis
type LogAnalysis struct {
	StartTime          time.Time `json:"start_time"`
	LogFiles           int       `json:"log_files"`
	TotalLines         int64     `json:"total_lines"`
	DebugCount         int64     `json:"debug_count"`
	InfoCount          int64     `json:"info_count"`
	WarningCount       int64     `json:"warning_count"`
	ErrorCount         int64     `json:"error_count"`
	FatalCount         int64     `json:"fatal_count"`
	TrainingCount      int64     `json:"training_count"`
	GenerationCount    int64     `json:"generation_count"`
	SnapshotCount      int64     `json:"snapshot_count"`
	CrackProgressCount int64     `json:"crack_progress_count"`
	PasswordFoundCount int64     `json:"password_found_count"`
}

// GetLogSummary returns a summary of the log analysis
func (la *LogAnalysis) GetLogSummary() string {
	return fmt.Sprintf(
		"Log Analysis Summary:\n"+
			"  Files: %d\n"+
			"  Total Lines: %d\n"+
			"  Debug: %d\n"+
			"  Info: %d\n"+
			"  Warning: %d\n"+
			"  Error: %d\n"+
			"  Fatal: %d\n"+
			"  Training Updates: %d\n"+
			"  Generation Runs: %d\n"+
			"  Snapshots: %d\n"+
			"  Crack Progress: %d\n"+
			"  Passwords Found: %d",
		la.LogFiles, la.TotalLines, la.DebugCount, la.InfoCount,
		la.WarningCount, la.ErrorCount, la.FatalCount, la.TrainingCount,
		la.GenerationCount, la.SnapshotCount, la.CrackProgressCount,
		la.PasswordFoundCount,
	)
}
