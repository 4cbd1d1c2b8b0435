package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"vigcrack/internal/config"
	"vigcrack/internal/crack"
	"vigcrack/internal/dictionary"
	"vigcrack/internal/logging"
	"vigcrack/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Search flags, applied over the config file when set
	workers    int
	batchSize  int
	bufferSize int
	progress   bool
	outputPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd cracks a ciphertext
var rootCmd = &cobra.Command{
	Use:   "vigcrack <encrypted> <key_length> <first_word_length> [dict_path]",
	Short: "Brute-force a Vigenère ciphertext of known key length",
	Long: `vigcrack tries every key of the given length over A-Z. A key is reported
when the first <first_word_length> characters of its decryption are a word
from the dictionary (one word per line, default dict.txt).

The whole key space is always searched; all matching keys are printed at
the end together with their full decryption.

Example:
  vigcrack HFLMOXOSLE 2 5 words.txt`,
	Args:         cobra.RangeArgs(3, 4),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, err = logging.Initialize(cfg.LoggingSettings())
		if err != nil {
			return err
		}
		logging.Get(logging.CategoryBoot).Debug("configuration resolved",
			zap.String("config", configPath),
			zap.String("dictionary", cfg.Dictionary.Path),
			zap.Int("workers", cfg.Search.Workers),
			zap.Int("batch_size", cfg.Search.BatchSize),
			zap.Int("buffer_size", cfg.Search.BufferSize))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runCrack,
}

// encryptCmd is the inverse operation, handy for producing test ciphertexts
var encryptCmd = &cobra.Command{
	Use:   "encrypt <key> <plaintext>",
	Short: "Encrypt plaintext with a Vigenère key",
	Args:  cobra.ExactArgs(2),
	RunE:  runEncrypt,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the vigcrack configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective configuration to a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file (YAML)")

	rootCmd.Flags().IntVar(&workers, "workers", crack.DefaultWorkers, "Batches validated concurrently")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", crack.DefaultBatchSize, "Keys per batch")
	rootCmd.Flags().IntVar(&bufferSize, "buffer", crack.DefaultBufferSize, "Result channel capacity")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Also write results to a .json or .yaml file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if flags.Changed("workers") {
		cfg.Search.Workers = workers
	}
	if flags.Changed("batch-size") {
		cfg.Search.BatchSize = batchSize
	}
	if flags.Changed("buffer") {
		cfg.Search.BufferSize = bufferSize
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = progress
	}
	if flags.Changed("output") {
		cfg.Output.File = outputPath
	}
}

func parsePositive(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid %s %d: must be positive", name, n)
	}
	return n, nil
}

// runCrack loads the dictionary, searches the key space and prints the report
func runCrack(cmd *cobra.Command, args []string) error {
	encrypted := args[0]
	keyLength, err := parsePositive("key_length", args[1])
	if err != nil {
		return err
	}
	firstWordLength, err := parsePositive("first_word_length", args[2])
	if err != nil {
		return err
	}
	dictPath := cfg.Dictionary.Path
	if len(args) == 4 {
		dictPath = args[3]
	}

	words, err := dictionary.Load(dictPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	var bar *report.Progress
	opts := crack.Options{
		Ciphertext:      encrypted,
		KeyLength:       keyLength,
		FirstWordLength: firstWordLength,
		Words:           words,
		Workers:         cfg.Search.Workers,
		BatchSize:       cfg.Search.BatchSize,
		BufferSize:      cfg.Search.BufferSize,
		OnGenerated: func(size uint64, elapsed time.Duration) {
			report.Generated(out, elapsed)
			if cfg.Output.Progress {
				bar = report.NewProgress(cmd.ErrOrStderr(), size)
			}
		},
		Progress: func(keys int) { bar.Add(keys) },
	}

	logger.Info("Starting search",
		zap.Int("key_length", keyLength),
		zap.Int("first_word_length", firstWordLength),
		zap.Int("ciphertext_len", len(encrypted)))

	res, err := crack.Run(ctx, opts)
	bar.Finish()
	if err != nil {
		return err
	}

	report.Print(out, res)
	if cfg.Output.File != "" {
		if err := report.Export(cfg.Output.File, res); err != nil {
			return err
		}
	}

	logger.Info("Search finished",
		zap.String("run_id", res.RunID),
		zap.Int("matches", len(res.Pairs)),
		zap.Duration("elapsed", res.Elapsed))
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
