/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logging_test.go
Description: Tests for the logging system. Covers logger creation and config
validation, the written domain events, log retention (cleanup, compression,
sweep), and log analysis.
*/

package logging

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLoggerConfig returns a quiet file-logging configuration rooted in dir.
func testLoggerConfig(dir string) *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelDebug,
		Format:    LogFormatCustom,
		OutputDir: dir,
		MaxFiles:  10,
		MaxSize:   1024 * 1024,
		Timestamp: true,
		Caller:    false,
		Colors:    false,
		Compress:  false,
	}
}

// writeLogFile drops a synthetic log file into dir with the given lines.
func writeLogFile(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	for _, line := range lines {
		_, err = file.WriteString(line + "\n")
		require.NoError(t, err)
	}
	require.NoError(t, file.Close())
	return path
}

func TestLoggerConfigValidate(t *testing.T) {
	config := testLoggerConfig(t.TempDir())
	assert.NoError(t, config.Validate())

	bad := *config
	bad.OutputDir = ""
	assert.Error(t, bad.Validate())

	bad = *config
	bad.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = *config
	bad.Level = "verbose"
	assert.Error(t, bad.Validate())

	bad = *config
	bad.MaxFiles = 0
	assert.Error(t, bad.Validate())
}

func TestLoggerDomainEventsAnalyzable(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(testLoggerConfig(dir))
	require.NoError(t, err)

	logger.LogTraining(1000, 3, nil)
	logger.LogSnapshot("model.json.gz", 42, 1000, nil)
	logger.LogGeneration("beam", 200, time.Second, nil)
	logger.LogCrackAttempt("report.docx", 5000, 123.4, "password1", nil)
	logger.LogCrackResult("report.docx", true, 5001, time.Minute, nil)
	logger.LogCrackResult("budget.xlsx", false, 9000, time.Minute, nil)
	logger.LogStats(1000, 3200, 3000, nil)
	require.NoError(t, logger.Close())

	analysis, err := NewLogAnalyzer(dir).AnalyzeLogs()
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.LogFiles)
	assert.Equal(t, int64(1), analysis.TrainingCount)
	assert.Equal(t, int64(1), analysis.SnapshotCount)
	assert.Equal(t, int64(1), analysis.GenerationCount)
	assert.Equal(t, int64(1), analysis.CrackProgressCount)
	assert.Equal(t, int64(1), analysis.PasswordFoundCount, "a miss must not count as a find")
	assert.Equal(t, int64(1), analysis.WarningCount, "the miss is logged as a warning")
}

func TestLogManagerCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()

	names := []string{
		"akaylee-cracker_2026-01-01_10-00-00.log",
		"akaylee-cracker_2026-01-01_11-00-00.log",
		"akaylee-cracker_2026-01-01_12-00-00.log",
		"akaylee-cracker_2026-01-01_13-00-00.log",
	}
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		path := writeLogFile(t, dir, name, []string{"INFO line"})
		stamp := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, stamp, stamp))
	}

	manager := NewLogManager(dir, 2, false)
	require.NoError(t, manager.CleanupOldLogs())

	files, err := filepath.Glob(filepath.Join(dir, "akaylee-cracker_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 2)

	// The two newest files survive.
	assert.Contains(t, files, filepath.Join(dir, names[2]))
	assert.Contains(t, files, filepath.Join(dir, names[3]))
}

func TestLogManagerCompressFinished(t *testing.T) {
	dir := t.TempDir()
	path := writeLogFile(t, dir, "akaylee-cracker_2026-01-01_10-00-00.log", []string{"INFO Training progress"})

	manager := NewLogManager(dir, 10, true)
	require.NoError(t, manager.CompressFinished())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "the plain file is replaced by its archive")

	file, err := os.Open(path + ".gz")
	require.NoError(t, err)
	defer file.Close()
	gz, err := gzip.NewReader(file)
	require.NoError(t, err)
	defer gz.Close()
	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "INFO Training progress\n", string(data))
}

func TestLogManagerSweep(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"akaylee-cracker_2026-01-01_10-00-00.log",
		"akaylee-cracker_2026-01-01_11-00-00.log",
		"akaylee-cracker_2026-01-01_12-00-00.log",
	} {
		writeLogFile(t, dir, name, []string{"INFO line"})
	}

	manager := NewLogManager(dir, 1, true)
	require.NoError(t, manager.Sweep())

	files, err := filepath.Glob(filepath.Join(dir, "akaylee-cracker_*.log*"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, filepath.Ext(files[0]) == ".gz", "surviving file is compressed")
}

func TestLogManagerStats(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "akaylee-cracker_2026-01-01_10-00-00.log", []string{"INFO line"})
	writeLogFile(t, dir, "akaylee-cracker_2026-01-01_11-00-00.log.gz", []string{"not really gzip"})

	stats, err := NewLogManager(dir, 10, false).GetLogStats()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalFiles)
	assert.Equal(t, 1, stats.CompressedFiles)
	assert.Equal(t, 1, stats.UncompressedFiles)
	assert.Greater(t, stats.TotalSize, int64(0))
}

func TestLogAnalyzerCounts(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "akaylee-cracker_2026-01-01_10-00-00.log", []string{
		"2026-01-01 10:00:01.000 INFO [TRAIN] Training progress processed=1000 skipped=3",
		"2026-01-01 10:00:02.000 DEBUG beam slot expanded",
		"2026-01-01 10:00:03.000 INFO [GEN] Candidates generated strategy=beam candidates=200",
		"2026-01-01 10:00:04.000 INFO [SNAPSHOT] Model snapshot path=model.json.gz",
		"2026-01-01 10:00:05.000 INFO [CRACK] Crack progress attempts=5000",
		"2026-01-01 10:00:06.000 INFO [RESULT] Password found target=report.docx",
		"2026-01-01 10:00:07.000 WARNING [RESULT] Password not found target=budget.xlsx",
		"2026-01-01 10:00:08.000 ERROR verifier failed to run",
	})

	analysis, err := NewLogAnalyzer(dir).AnalyzeLogs()
	require.NoError(t, err)

	assert.Equal(t, int64(8), analysis.TotalLines)
	assert.Equal(t, int64(1), analysis.DebugCount)
	assert.Equal(t, int64(5), analysis.InfoCount)
	assert.Equal(t, int64(1), analysis.WarningCount)
	assert.Equal(t, int64(1), analysis.ErrorCount)
	assert.Equal(t, int64(1), analysis.TrainingCount)
	assert.Equal(t, int64(1), analysis.GenerationCount)
	assert.Equal(t, int64(1), analysis.SnapshotCount)
	assert.Equal(t, int64(1), analysis.CrackProgressCount)
	assert.Equal(t, int64(1), analysis.PasswordFoundCount)

	summary := analysis.GetLogSummary()
	assert.Contains(t, summary, "Passwords Found: 1")
}
