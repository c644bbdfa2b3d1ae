/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Comprehensive logging system for the Akaylee Cracker. Provides structured
logging with timestamped files, multiple output formats, and beautiful formatting.
Supports JSON, text, and custom formats with rotation and performance optimization.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"log/syslog"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
	LogLevelFatal   LogLevel = "fatal"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatCustom LogFormat = "custom"
)

// LoggerConfig holds the configuration for the logger
// Includes syslog options for daemonized pipeline runs
type LoggerConfig struct {
	Level     LogLevel  `json:"level"`
	Format    LogFormat `json:"format"`
	OutputDir string    `json:"output_dir"`
	MaxFiles  int       `json:"max_files"`
	MaxSize   int64     `json:"max_size"` // in bytes
	Timestamp bool      `json:"timestamp"`
	Caller    bool      `json:"caller"`
	Colors    bool      `json:"colors"`
	Compress  bool      `json:"compress"`

	SyslogEnabled bool   `json:"syslog_enabled"`
	SyslogNetwork string `json:"syslog_network"`
	SyslogAddress string `json:"syslog_address"`
}

// Validate checks the LoggerConfig for invalid or missing values.
// Returns an error if the config is invalid, or nil if valid.
func (c *LoggerConfig) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive")
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom:
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelFatal:
		// ok
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

type logEntry struct {
	level  logrus.Level
	msg    string
	fields logrus.Fields
}

// Logger provides comprehensive logging functionality
// Supports an async log queue so hot training loops never block on I/O
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	manager    *LogManager
	fileHandle *os.File
	startTime  time.Time

	logQueue chan logEntry
	quit     chan struct{}
}

// NewLogger creates a new logger instance
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = &LoggerConfig{
			Level:     LogLevelInfo,
			Format:    LogFormatText,
			OutputDir: "./logs",
			MaxFiles:  10,
			MaxSize:   100 * 1024 * 1024, // 100MB
			Timestamp: true,
			Caller:    true,
			Colors:    true,
			Compress:  false,
		}
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		manager:   NewLogManager(config.OutputDir, config.MaxFiles, config.Compress),
		startTime: time.Now(),
		logQueue:  make(chan logEntry, 1024),
		quit:      make(chan struct{}),
	}

	if err := l.setup(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	go l.runLogQueue()

	return l, nil
}

// setup configures the logger with the given configuration
func (l *Logger) setup() error {
	// Set log level
	level, err := logrus.ParseLevel(string(l.config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)

	// Set formatter
	if err := l.setFormatter(); err != nil {
		return err
	}

	// Setup file output
	if err := l.setupFileOutput(); err != nil {
		return err
	}

	// Setup syslog sink if enabled
	if l.config.SyslogEnabled {
		writer, err := syslog.Dial(l.config.SyslogNetwork, l.config.SyslogAddress, syslog.LOG_INFO|syslog.LOG_USER, "akaylee-cracker")
		if err != nil {
			return fmt.Errorf("failed to connect to syslog: %w", err)
		}
		l.logger.SetOutput(io.MultiWriter(l.logger.Out, writer))
	}

	return nil
}

// setFormatter configures the log formatter
func (l *Logger) setFormatter() error {
	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				filename := filepath.Base(f.File)
				return "", fmt.Sprintf("%s:%d", filename, f.Line)
			},
		})

	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   l.config.Timestamp,
			TimestampFormat: time.RFC3339,
			ForceColors:     l.config.Colors,
			DisableColors:   !l.config.Colors,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				filename := filepath.Base(f.File)
				return "", fmt.Sprintf("%s:%d", filename, f.Line)
			},
		})

	case LogFormatCustom:
		l.logger.SetFormatter(&CrackerFormatter{
			CustomFormatter: CustomFormatter{
				Timestamp: l.config.Timestamp,
				Caller:    l.config.Caller,
				Colors:    l.config.Colors,
			},
		})

	default:
		return fmt.Errorf("unsupported log format: %s", l.config.Format)
	}

	return nil
}

// setupFileOutput configures file-based logging
func (l *Logger) setupFileOutput() error {
	if l.config.OutputDir == "" {
		return nil
	}

	// Create output directory
	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s%s.log", logFilePrefix, timestamp)
	filepath := filepath.Join(l.config.OutputDir, filename)

	// Open log file
	file, err := os.OpenFile(filepath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.fileHandle = file

	// Create multi-writer for both file and console
	multiWriter := io.MultiWriter(os.Stdout, file)
	l.logger.SetOutput(multiWriter)

	// Log startup message
	l.logger.WithFields(logrus.Fields{
		"start_time": l.startTime.Format(time.RFC3339),
		"log_file":   filepath,
		"level":      l.config.Level,
		"format":     l.config.Format,
	}).Info("Akaylee Cracker logging system initialized")

	return nil
}

// rotateLogs starts a fresh timestamped log file once the current one
// exceeds the size limit; the finished file is left for the manager's sweep.
func (l *Logger) rotateLogs() error {
	if l.fileHandle == nil {
		return nil
	}

	stat, err := l.fileHandle.Stat()
	if err != nil {
		return err
	}
	if stat.Size() < l.config.MaxSize {
		return nil
	}

	l.fileHandle.Close()
	return l.setupFileOutput()
}

// rotateCheckEvery is how many queued entries pass between size checks.
const rotateCheckEvery = 1024

// runLogQueue flushes log entries from the queue in a background goroutine,
// periodically rotating the log file.
func (l *Logger) runLogQueue() {
	flushed := 0
	for {
		select {
		case entry := <-l.logQueue:
			l.logger.WithFields(entry.fields).Log(entry.level, entry.msg)
			flushed++
			if flushed%rotateCheckEvery == 0 {
				l.rotateLogs()
			}
		case <-l.quit:
			return
		}
	}
}

// Cracker-specific logging methods

// LogTraining logs progress of a model training pass
func (l *Logger) LogTraining(processed int64, skipped int64, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["processed"] = processed
	fields["skipped"] = skipped
	fields["timestamp"] = time.Now()

	l.logger.WithFields(fields).Info("Training progress")
}

// LogSnapshot logs a model snapshot save or load
func (l *Logger) LogSnapshot(path string, templates int, examples int64, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["path"] = path
	fields["unique_templates"] = templates
	fields["total_examples"] = examples
	fields["timestamp"] = time.Now()

	l.logger.WithFields(fields).Info("Model snapshot")
}

// LogGeneration logs completion of a candidate generation strategy
func (l *Logger) LogGeneration(strategy string, count int, duration time.Duration, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["strategy"] = strategy
	fields["candidates"] = count
	fields["duration"] = duration
	fields["timestamp"] = time.Now()

	l.logger.WithFields(fields).Info("Candidates generated")
}

// LogCrackAttempt logs progress of a cracking run against one target
func (l *Logger) LogCrackAttempt(target string, attempts int64, rate float64, lastCandidate string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["target"] = target
	fields["attempts"] = attempts
	fields["attempts_per_sec"] = rate
	fields["last_candidate"] = lastCandidate
	fields["timestamp"] = time.Now()

	l.logger.WithFields(fields).Info("Crack progress")
}

// LogCrackResult logs the outcome of a cracking run against one target
func (l *Logger) LogCrackResult(target string, success bool, attempts int64, duration time.Duration, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["target"] = target
	fields["attempts"] = attempts
	fields["duration"] = duration
	fields["timestamp"] = time.Now()

	if success {
		l.logger.WithFields(fields).Info("Password found")
	} else {
		l.logger.WithFields(fields).Warning("Password not found")
	}
}

// LogStats logs pipeline statistics
func (l *Logger) LogStats(trained int64, generated int, combined int, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["trained_examples"] = trained
	fields["generated_candidates"] = generated
	fields["combined_candidates"] = combined
	fields["uptime"] = time.Since(l.startTime)
	fields["timestamp"] = time.Now()

	l.logger.WithFields(fields).Info("Statistics update")
}

// Close closes the logger and applies the retention policy to the log
// directory.
func (l *Logger) Close() error {
	close(l.quit)
	if l.fileHandle != nil {
		l.fileHandle.Close()
	}

	if err := l.manager.Sweep(); err != nil {
		return fmt.Errorf("failed to sweep log files: %w", err)
	}
	return nil
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// Debug logs a debug message (async)
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.DebugLevel, msg: msg, fields: fields}
}

// Info logs an info message (async)
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.InfoLevel, msg: msg, fields: fields}
}

// Warning logs a warning message (async)
func (l *Logger) Warning(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.WarnLevel, msg: msg, fields: fields}
}

// Error logs an error message (async)
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.ErrorLevel, msg: msg, fields: fields}
}

// Fatal logs a fatal message and exits (async)
func (l *Logger) Fatal(msg string, fields map[string]interface{}) {
	l.logQueue <- logEntry{level: logrus.FatalLevel, msg: msg, fields: fields}
}
