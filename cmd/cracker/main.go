/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee Cracker. Provides comprehensive
command-line options, configuration management, and beautiful user interface for
controlling model training, candidate generation, and cracking runs with advanced
logging capabilities.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/akaylee-cracker/cmd/cracker/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
	logCompress bool

	// Model configuration
	alpha        float64
	snapshotPath string

	// Training configuration
	corpusPath  string
	maxSamples  int64
	trimTopN    int
	httpTimeout time.Duration

	// Generation configuration
	topKTemplates int
	topKPerSlot   int
	beamWidth     int
	maxTotal      int
	workers       int
	numSamples    int
	seed          int64
	minLength     int
	maxLength     int
	artifactPath  string

	// Cracking configuration
	targetPath  string
	targetDir   string
	wordlist    string
	verifierCmd    []string
	maxTries       int64
	printEvery     int64
	attemptTimeout time.Duration
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "akaylee-cracker",
		Short: "Akaylee Cracker - Statistical password modeling and candidate generation engine",
		Long: `Akaylee Cracker is a statistical password analysis engine. It learns the
structural patterns of leaked password corpora, generates high-probability candidate
passwords through deterministic beam search and seeded stochastic sampling, and drives
those candidates against password-protected documents. Built for reproducibility:
identical inputs always produce identical candidate lists.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")
	rootCmd.PersistentFlags().BoolVar(&logCompress, "log-compress", false, "Compress rotated log files")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("log_compress", rootCmd.PersistentFlags().Lookup("log-compress"))

	// Add train command
	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "Train a password model from a corpus",
		Long: `Train a statistical password model from a wordlist corpus. The corpus is
streamed line by line (local file, gzip archive, or http(s) URL), each password is
normalized and tokenized into a structural template, and the resulting frequency
model is persisted as a versioned snapshot.`,
		RunE: commands.RunTrain,
	}

	trainCmd.Flags().StringVar(&corpusPath, "corpus", "", "Corpus path or URL (required)")
	trainCmd.Flags().StringVar(&snapshotPath, "snapshot", "./model.json.gz", "Snapshot output path")
	trainCmd.Flags().Float64Var(&alpha, "alpha", 1.0, "Laplace smoothing parameter")
	trainCmd.Flags().Int64Var(&maxSamples, "max-samples", 0, "Maximum corpus lines to train on (0 = all)")
	trainCmd.Flags().IntVar(&trimTopN, "trim-top-n", 0, "Keep only the N most frequent values per token type (0 = keep all)")
	trainCmd.Flags().IntVar(&minLength, "min-length", 6, "Minimum password length to train on")
	trainCmd.Flags().DurationVar(&httpTimeout, "http-timeout", 10*time.Minute, "Timeout for remote corpus downloads")

	trainCmd.MarkFlagRequired("corpus")

	viper.BindPFlag("corpus_path", trainCmd.Flags().Lookup("corpus"))
	viper.BindPFlag("snapshot_path", trainCmd.Flags().Lookup("snapshot"))
	viper.BindPFlag("alpha", trainCmd.Flags().Lookup("alpha"))
	viper.BindPFlag("max_samples", trainCmd.Flags().Lookup("max-samples"))
	viper.BindPFlag("trim_top_n", trainCmd.Flags().Lookup("trim-top-n"))
	viper.BindPFlag("min_length", trainCmd.Flags().Lookup("min-length"))
	viper.BindPFlag("http_timeout", trainCmd.Flags().Lookup("http-timeout"))

	rootCmd.AddCommand(trainCmd)

	// Add generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate candidate passwords from a trained model",
		Long: `Generate candidate passwords from a trained model snapshot using both
strategies: deterministic beam search over the most frequent templates, and seeded
stochastic sampling proportional to training frequencies. The combined, deduplicated
candidate list is written as a newline-delimited artifact.`,
		RunE: commands.RunGenerate,
	}

	generateCmd.Flags().StringVar(&snapshotPath, "snapshot", "./model.json.gz", "Trained model snapshot path")
	generateCmd.Flags().StringVar(&artifactPath, "output", "./candidates.txt", "Candidate artifact output path")
	generateCmd.Flags().IntVar(&topKTemplates, "top-k-templates", 40, "Number of top templates for beam search")
	generateCmd.Flags().IntVar(&topKPerSlot, "top-k-per-slot", 300, "Number of top values per slot for beam search")
	generateCmd.Flags().IntVar(&beamWidth, "beam-width", 2000, "Beam width per template")
	generateCmd.Flags().IntVar(&maxTotal, "max-total", 200000, "Global cap on deterministic candidates")
	generateCmd.Flags().IntVar(&workers, "workers", 1, "Parallel workers for beam expansion")
	generateCmd.Flags().IntVar(&numSamples, "samples", 3000, "Number of stochastic samples")
	generateCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for stochastic sampling")
	generateCmd.Flags().IntVar(&minLength, "min-length", 6, "Minimum candidate length")
	generateCmd.Flags().IntVar(&maxLength, "max-length", 64, "Maximum candidate length")

	viper.BindPFlag("snapshot_path", generateCmd.Flags().Lookup("snapshot"))
	viper.BindPFlag("artifact_path", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("top_k_templates", generateCmd.Flags().Lookup("top-k-templates"))
	viper.BindPFlag("top_k_per_slot", generateCmd.Flags().Lookup("top-k-per-slot"))
	viper.BindPFlag("beam_width", generateCmd.Flags().Lookup("beam-width"))
	viper.BindPFlag("max_total", generateCmd.Flags().Lookup("max-total"))
	viper.BindPFlag("workers", generateCmd.Flags().Lookup("workers"))
	viper.BindPFlag("samples", generateCmd.Flags().Lookup("samples"))
	viper.BindPFlag("seed", generateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("min_length", generateCmd.Flags().Lookup("min-length"))
	viper.BindPFlag("max_length", generateCmd.Flags().Lookup("max-length"))

	rootCmd.AddCommand(generateCmd)

	// Add combine command
	combineCmd := &cobra.Command{
		Use:   "combine",
		Short: "Combine candidate artifacts into one deduplicated list",
		Long: `Merge candidate artifact files into a single list: order preserved across
inputs, first occurrence wins on duplicates, and candidates outside the length
bounds are dropped.`,
		RunE: commands.RunCombine,
	}

	combineCmd.Flags().StringSlice("inputs", []string{}, "Candidate artifact files to merge, in priority order (required)")
	combineCmd.Flags().StringVar(&artifactPath, "output", "./candidates.txt", "Combined artifact output path")
	combineCmd.Flags().IntVar(&minLength, "min-length", 6, "Minimum candidate length")
	combineCmd.Flags().IntVar(&maxLength, "max-length", 64, "Maximum candidate length")

	combineCmd.MarkFlagRequired("inputs")

	viper.BindPFlag("combine_inputs", combineCmd.Flags().Lookup("inputs"))
	viper.BindPFlag("artifact_path", combineCmd.Flags().Lookup("output"))
	viper.BindPFlag("min_length", combineCmd.Flags().Lookup("min-length"))
	viper.BindPFlag("max_length", combineCmd.Flags().Lookup("max-length"))

	rootCmd.AddCommand(combineCmd)

	// Add score command
	scoreCmd := &cobra.Command{
		Use:   "score [passwords...]",
		Short: "Score passwords against a trained model",
		Long: `Compute the log-probability of passwords under a trained model. Passwords
are given as arguments, or streamed from a file with --input. Higher scores mean
the password looks more like the training corpus.`,
		RunE: commands.RunScore,
	}

	scoreCmd.Flags().StringVar(&snapshotPath, "snapshot", "./model.json.gz", "Trained model snapshot path")
	scoreCmd.Flags().String("input", "", "File of passwords to score, one per line")

	viper.BindPFlag("snapshot_path", scoreCmd.Flags().Lookup("snapshot"))
	viper.BindPFlag("score_input", scoreCmd.Flags().Lookup("input"))

	rootCmd.AddCommand(scoreCmd)

	// Add crack command
	crackCmd := &cobra.Command{
		Use:   "crack",
		Short: "Try candidate passwords against protected documents",
		Long: `Drive a candidate wordlist against a password-protected document or a whole
directory of them. Each attempt runs the verifier command with the candidate
substituted for "{}" and the document path for "{target}"; exit status zero means
the password opened the document.`,
		RunE: commands.RunCrack,
	}

	crackCmd.Flags().StringVar(&wordlist, "wordlist", "", "Candidate wordlist path (required)")
	crackCmd.Flags().StringVar(&targetPath, "target", "", "Protected document path")
	crackCmd.Flags().StringVar(&targetDir, "target-dir", "", "Directory of protected documents")
	crackCmd.Flags().StringSliceVar(&verifierCmd, "verifier", []string{}, "Verifier command with {} and {target} placeholders (required)")
	crackCmd.Flags().Int64Var(&maxTries, "max-tries", 0, "Maximum attempts per target (0 = unlimited)")
	crackCmd.Flags().Int64Var(&printEvery, "print-every", 1000, "Progress logging interval in attempts")
	crackCmd.Flags().DurationVar(&attemptTimeout, "attempt-timeout", 0, "Per-attempt verifier deadline (0 = none)")

	crackCmd.MarkFlagRequired("wordlist")
	crackCmd.MarkFlagRequired("verifier")

	viper.BindPFlag("wordlist", crackCmd.Flags().Lookup("wordlist"))
	viper.BindPFlag("target_path", crackCmd.Flags().Lookup("target"))
	viper.BindPFlag("target_dir", crackCmd.Flags().Lookup("target-dir"))
	viper.BindPFlag("verifier_command", crackCmd.Flags().Lookup("verifier"))
	viper.BindPFlag("max_tries", crackCmd.Flags().Lookup("max-tries"))
	viper.BindPFlag("print_every", crackCmd.Flags().Lookup("print-every"))
	viper.BindPFlag("attempt_timeout", crackCmd.Flags().Lookup("attempt-timeout"))

	rootCmd.AddCommand(crackCmd)

	// Add pipeline command
	pipelineCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the full train, generate, and crack pipeline",
		Long: `Run the complete workflow as one tagged run: train a model from the corpus,
persist the snapshot, generate candidates with both strategies, write the combined
artifact, and optionally crack a directory of protected documents with it. Every
run gets a UUID and a metrics record under ./metrics.`,
		RunE: commands.RunPipeline,
	}

	pipelineCmd.Flags().StringVar(&corpusPath, "corpus", "", "Corpus path or URL (required)")
	pipelineCmd.Flags().StringVar(&snapshotPath, "snapshot", "./model.json.gz", "Snapshot output path")
	pipelineCmd.Flags().StringVar(&artifactPath, "output", "./candidates.txt", "Candidate artifact output path")
	pipelineCmd.Flags().Float64Var(&alpha, "alpha", 1.0, "Laplace smoothing parameter")
	pipelineCmd.Flags().Int64Var(&maxSamples, "max-samples", 0, "Maximum corpus lines to train on (0 = all)")
	pipelineCmd.Flags().IntVar(&trimTopN, "trim-top-n", 0, "Keep only the N most frequent values per token type (0 = keep all)")
	pipelineCmd.Flags().IntVar(&topKTemplates, "top-k-templates", 40, "Number of top templates for beam search")
	pipelineCmd.Flags().IntVar(&topKPerSlot, "top-k-per-slot", 300, "Number of top values per slot for beam search")
	pipelineCmd.Flags().IntVar(&beamWidth, "beam-width", 2000, "Beam width per template")
	pipelineCmd.Flags().IntVar(&maxTotal, "max-total", 200000, "Global cap on deterministic candidates")
	pipelineCmd.Flags().IntVar(&workers, "workers", 1, "Parallel workers for beam expansion")
	pipelineCmd.Flags().IntVar(&numSamples, "samples", 3000, "Number of stochastic samples")
	pipelineCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for stochastic sampling")
	pipelineCmd.Flags().IntVar(&minLength, "min-length", 6, "Minimum candidate length")
	pipelineCmd.Flags().IntVar(&maxLength, "max-length", 64, "Maximum candidate length")
	pipelineCmd.Flags().StringVar(&targetDir, "target-dir", "", "Directory of protected documents to crack (optional)")
	pipelineCmd.Flags().StringSliceVar(&verifierCmd, "verifier", []string{}, "Verifier command with {} and {target} placeholders")
	pipelineCmd.Flags().Int64Var(&maxTries, "max-tries", 0, "Maximum attempts per target (0 = unlimited)")
	pipelineCmd.Flags().Int64Var(&printEvery, "print-every", 1000, "Progress logging interval in attempts")
	pipelineCmd.Flags().DurationVar(&attemptTimeout, "attempt-timeout", 0, "Per-attempt verifier deadline (0 = none)")
	pipelineCmd.Flags().DurationVar(&httpTimeout, "http-timeout", 10*time.Minute, "Timeout for remote corpus downloads")

	pipelineCmd.MarkFlagRequired("corpus")

	viper.BindPFlag("corpus_path", pipelineCmd.Flags().Lookup("corpus"))
	viper.BindPFlag("snapshot_path", pipelineCmd.Flags().Lookup("snapshot"))
	viper.BindPFlag("artifact_path", pipelineCmd.Flags().Lookup("output"))
	viper.BindPFlag("alpha", pipelineCmd.Flags().Lookup("alpha"))
	viper.BindPFlag("max_samples", pipelineCmd.Flags().Lookup("max-samples"))
	viper.BindPFlag("trim_top_n", pipelineCmd.Flags().Lookup("trim-top-n"))
	viper.BindPFlag("top_k_templates", pipelineCmd.Flags().Lookup("top-k-templates"))
	viper.BindPFlag("top_k_per_slot", pipelineCmd.Flags().Lookup("top-k-per-slot"))
	viper.BindPFlag("beam_width", pipelineCmd.Flags().Lookup("beam-width"))
	viper.BindPFlag("max_total", pipelineCmd.Flags().Lookup("max-total"))
	viper.BindPFlag("workers", pipelineCmd.Flags().Lookup("workers"))
	viper.BindPFlag("samples", pipelineCmd.Flags().Lookup("samples"))
	viper.BindPFlag("seed", pipelineCmd.Flags().Lookup("seed"))
	viper.BindPFlag("min_length", pipelineCmd.Flags().Lookup("min-length"))
	viper.BindPFlag("max_length", pipelineCmd.Flags().Lookup("max-length"))
	viper.BindPFlag("target_dir", pipelineCmd.Flags().Lookup("target-dir"))
	viper.BindPFlag("verifier_command", pipelineCmd.Flags().Lookup("verifier"))
	viper.BindPFlag("max_tries", pipelineCmd.Flags().Lookup("max-tries"))
	viper.BindPFlag("print_every", pipelineCmd.Flags().Lookup("print-every"))
	viper.BindPFlag("attempt_timeout", pipelineCmd.Flags().Lookup("attempt-timeout"))
	viper.BindPFlag("http_timeout", pipelineCmd.Flags().Lookup("http-timeout"))

	rootCmd.AddCommand(pipelineCmd)

	// Add discover command
	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover wordlist links on an HTML index page",
		Long: `Scrape an HTML index page for links to wordlist files (.txt, .lst, and
their gzip variants) and print the absolute URLs. The discovered lists can be
streamed directly as a training corpus.`,
		RunE: commands.RunDiscover,
	}

	discoverCmd.Flags().String("index-url", "", "HTML index page URL (required)")
	discoverCmd.Flags().Duration("http-timeout", 2*time.Minute, "Timeout for the index fetch")

	discoverCmd.MarkFlagRequired("index-url")

	viper.BindPFlag("index_url", discoverCmd.Flags().Lookup("index-url"))
	viper.BindPFlag("index_timeout", discoverCmd.Flags().Lookup("http-timeout"))

	rootCmd.AddCommand(discoverCmd)

	// Add logs command
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Summarize past runs from the log directory",
		Long: `Analyze the written log files: per-level line counts plus training,
generation, snapshot, and cracking event tallies. With --sweep, compress
finished log files (when log compression is enabled) and prune the oldest
files beyond the retention budget first.`,
		RunE: commands.RunLogs,
	}

	logsCmd.Flags().Bool("sweep", false, "Apply the retention policy before summarizing")

	viper.BindPFlag("logs_sweep", logsCmd.Flags().Lookup("sweep"))

	rootCmd.AddCommand(logsCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
