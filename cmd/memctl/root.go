package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/enginemem/engine"
	"github.com/joshuapare/enginemem/internal/logger"
	"github.com/joshuapare/enginemem/mem/memory"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	noColor   bool
	logFormat string
	logDir    string

	// Memory sizing flags, shared by every command that boots the engine
	totalSize uint64
	nodeCap   int
	headroom  uint64
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Inspect the engine memory subsystem",
	Long: `memctl boots the engine memory stack (bootstrap region, bump arena,
dynamic allocator and tagged memory system) and reports on it. It can print
the nested size requirements, a tagged usage report, or drive a randomized
allocate/free workload with invariant checks after every step.`,
	SilenceUsage: true,
}

func init() {
	defaults := memory.DefaultConfig()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&logFormat, "log-format", string(logger.FormatText), "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write logs to a dated file in this directory")

	rootCmd.PersistentFlags().
		Uint64Var(&totalSize, "size", defaults.TotalSize, "Dynamic allocator size in bytes")
	rootCmd.PersistentFlags().
		IntVar(&nodeCap, "nodes", defaults.NodeCapacity, "Free-list node capacity (0 = derived from size)")
	rootCmd.PersistentFlags().
		Uint64Var(&headroom, "headroom", 0, "Extra bootstrap arena bytes")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// engineOptions maps the global flags onto engine options.
func engineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.Memory = memory.Config{TotalSize: totalSize, NodeCapacity: nodeCap}
	opts.Headroom = headroom
	return opts
}

// newLogger builds the logger every component shares. Warnings and failures
// are always shown; --verbose adds debug output.
func newLogger() (*slog.Logger, func() error, error) {
	format := logger.Format(logFormat)
	if format != logger.FormatText && format != logger.FormatJSON {
		return nil, nil, fmt.Errorf("unknown log format %q", logFormat)
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return logger.New(logger.Options{
		Enabled: true,
		Level:   level,
		Format:  format,
		Writer:  os.Stderr,
		LogDir:  logDir,
	})
}

// bootEngine boots the engine from the global flags. The returned func shuts
// it down and releases the logger.
func bootEngine() (*engine.Engine, func(), error) {
	log, closeLog, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	opts := engineOptions()
	opts.Logger = log

	e, err := engine.Boot(opts)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("failed to boot engine: %w", err)
	}
	printVerbose("Booted engine with %d byte region\n", e.RegionSize())

	return e, func() {
		if err := e.Shutdown(); err != nil {
			printError("%v\n", err)
		}
		closeLog()
	}, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
