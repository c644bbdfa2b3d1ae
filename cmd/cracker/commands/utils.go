/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Akaylee Cracker commands. Provides common
configuration loading, logging setup, model loading, and generator configuration
used across all command implementations.
*/

package commands

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-cracker/pkg/interfaces"
	"github.com/kleascm/akaylee-cracker/pkg/logging"
	"github.com/kleascm/akaylee-cracker/pkg/model"
	"github.com/kleascm/akaylee-cracker/pkg/normalizer"
	"github.com/kleascm/akaylee-cracker/pkg/tokenizer"
	"github.com/kleascm/akaylee-cracker/pkg/vocab"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("AKAYLEE")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system from viper settings and
// returns the shared logger for the command run.
func SetupLogging() (*logging.Logger, error) {
	format := logging.LogFormat(viper.GetString("log_format"))
	if viper.GetBool("json_logs") {
		format = logging.LogFormatJSON
	}

	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    format,
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Timestamp: true,
		Caller:    false,
		Colors:    true,
		Compress:  viper.GetBool("log_compress"),
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}

	return logging.NewLogger(config)
}

// generatorConfigFromViper builds the generator configuration from the
// bound command flags.
func generatorConfigFromViper() *interfaces.GeneratorConfig {
	config := interfaces.DefaultGeneratorConfig()
	config.BeamTopKTemplates = viper.GetInt("top_k_templates")
	config.BeamTopKPerSlot = viper.GetInt("top_k_per_slot")
	config.BeamWidth = viper.GetInt("beam_width")
	config.MaxTotalCandidates = viper.GetInt("max_total")
	config.Workers = viper.GetInt("workers")
	config.NumSamples = viper.GetInt("samples")
	config.Seed = viper.GetInt64("seed")
	config.MinLength = viper.GetInt("min_length")
	config.MaxLength = viper.GetInt("max_length")
	return config
}

// loadModel restores a trained model from the configured snapshot path.
func loadModel() (*model.Model, error) {
	path := viper.GetString("snapshot_path")
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}

	n := normalizer.New()
	t := tokenizer.New(vocab.New())
	m, err := model.Load(path, n, t)
	if err != nil {
		return nil, fmt.Errorf("failed to load model snapshot: %w", err)
	}
	return m, nil
}
