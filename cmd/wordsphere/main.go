// Package main provides the wordsphere binary entry point.
// wordsphere renders a rotating 3D word cloud in the terminal, in a
// desktop window or headless into PNG frames.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "wordsphere"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every host.
type globalFlags struct {
	configPath string
	wordsPath  string
	count      int
	seed       uint64
	logFile    string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Rotating 3D word cloud",
		Long: `wordsphere places topic words on a sphere and spins it.

Hosts:
- terminal (default): braille globe and styled labels
- window: rasterized scene in a desktop window
- snapshot: headless PNG frames`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &g)
			if err != nil {
				return err
			}
			return runTerminal(cfg, &g)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVarP(&g.wordsPath, "words", "w", "", "Word list file (YAML, JSON or CSV); watched for changes")
	pf.IntVarP(&g.count, "count", "n", 0, "Number of words drawn from the pool")
	pf.Uint64Var(&g.seed, "seed", 0, "Shuffle seed (0 = random)")
	pf.StringVar(&g.logFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(windowCmd(&g), snapshotCmd(&g))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func windowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Show the word sphere in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			return runWindow(cfg, g)
		},
	}
}

func snapshotCmd(g *globalFlags) *cobra.Command {
	var o snapshotOptions
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames to PNG files without a display",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(g.logFile, g.logLevel, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()
			written, err := runSnapshot(cfg, logger, o)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", written, o.out)
			return nil
		},
	}
	cmd.Flags().IntVar(&o.frames, "frames", 1, "Number of frames to render")
	cmd.Flags().StringVarP(&o.out, "out", "o", ".", "Output directory")
	cmd.Flags().IntVar(&o.width, "width", 800, "Frame width in pixels")
	cmd.Flags().IntVar(&o.height, "height", 600, "Frame height in pixels")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "Write prometheus metrics to this textfile")
	return cmd
}
