package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"prime-digit-families/internal/config"
	apperrors "prime-digit-families/internal/errors"
	"prime-digit-families/internal/family"
	"prime-digit-families/internal/log"
	"prime-digit-families/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// Exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitNotFound = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	cfg, err = parseFlags(args, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	logger, err := log.NewStructuredLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create logger: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	fmt.Fprintf(stdout, "Prime Digit Family Search\n")
	fmt.Fprintf(stdout, "=========================\n\n")
	fmt.Fprintf(stdout, "Range: [%d, %d), %d digits\n", cfg.Min, cfg.Max, cfg.DigitWidth)
	fmt.Fprintf(stdout, "Pattern sizes: %d-%d\n", cfg.MinPatternLen, cfg.MaxPatternLen)
	if cfg.Mode == config.ModeLongest {
		fmt.Fprintf(stdout, "Looking for: longest family\n")
	} else {
		fmt.Fprintf(stdout, "Looking for: family of %d primes\n", cfg.TargetFamilySize)
	}
	fmt.Fprintln(stdout)

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	startTime := time.Now()

	searcher, err := family.NewSearcher(ctx, cfg, family.WithLogger(logger), family.WithRecorder(recorder))
	if err != nil {
		fmt.Fprintf(stderr, "\nError: %v\n", err)
		return exitError
	}

	result, err := searcher.Run(ctx)
	elapsed := time.Since(startTime)
	logSummary(logger.With("run_id", searcher.RunID()), registry)

	if errors.Is(err, apperrors.ErrNotFound) {
		fmt.Fprintf(stdout, "No family found (%s): %v\n", formatElapsed(elapsed), err)
		return exitNotFound
	}
	if err != nil {
		fmt.Fprintf(stderr, "\nError: %v\n", err)
		return exitError
	}

	if err := writeResult(stdout, result); err != nil {
		fmt.Fprintf(stderr, "\nError writing result: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "  Search time: %s\n", formatElapsed(elapsed))
	return exitOK
}

// parseFlags layers command-line flags over cfg. A preset replaces the range
// and family parameters before any explicit flag is applied.
func parseFlags(args []string, cfg config.Config, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("familysearch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	preset := fs.String("preset", "", fmt.Sprintf("Named parameter set, one of %v", config.PresetNames()))
	minValue := fs.Uint64("min", cfg.Min, "Inclusive lower bound of the searched range")
	maxValue := fs.Uint64("max", cfg.Max, "Exclusive upper bound of the searched range")
	width := fs.Int("width", cfg.DigitWidth, "Number of digits of every number in the range")
	minPattern := fs.Int("min-pattern", cfg.MinPatternLen, "Fewest digit positions replaced together")
	maxPattern := fs.Int("max-pattern", cfg.MaxPatternLen, "Most digit positions replaced together")
	target := fs.Int("target", cfg.TargetFamilySize, "Exact family size to look for")
	workers := fs.Int("workers", cfg.Workers, "Parallel pattern workers (1 for a deterministic sequential scan)")
	mode := fs.String("mode", string(cfg.Mode), "Search mode: exact or longest")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level: DEBUG, INFO, WARN or ERROR")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	if *preset != "" {
		var err error
		if cfg, err = config.Preset(*preset, cfg); err != nil {
			return config.Config{}, err
		}
	}

	// only flags given explicitly override the preset
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min":
			cfg.Min = *minValue
		case "max":
			cfg.Max = *maxValue
		case "width":
			cfg.DigitWidth = *width
		case "min-pattern":
			cfg.MinPatternLen = *minPattern
		case "max-pattern":
			cfg.MaxPatternLen = *maxPattern
		case "target":
			cfg.TargetFamilySize = *target
		case "workers":
			cfg.Workers = *workers
		case "mode":
			cfg.Mode = config.Mode(*mode)
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	return cfg, nil
}

// logSummary logs the collected search metrics in a stable order
func logSummary(logger log.Logger, g prometheus.Gatherer) {
	summary, err := metrics.Summary(g)
	if err != nil {
		logger.Warn("failed to summarise metrics", "err", err)
		return
	}

	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyvals := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		keyvals = append(keyvals, k, summary[k])
	}
	logger.Info("search metrics", keyvals...)
}

// formatElapsed formats a duration into a human-readable elapsed time string
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}

	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%dm%02ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
