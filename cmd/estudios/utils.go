package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tcimlab/estudios/internal/config"
)

// flagChanged reports whether the user set the named flag on the command
// line, as opposed to it holding its default. Needed to decide whether a
// flag default should yield to the configuration file.
func flagChanged(cmd *cobra.Command, name string) bool {
	changed := false
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name == name {
			changed = true
		}
	})
	return changed
}

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory determines the output directory from configuration
func resolveOutputDirectory(configPath string) (string, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg != nil && cfg.Output.Directory != "" {
		return cfg.Output.Directory, nil
	}

	// Default to a tool-specific hidden directory under the current working
	// directory so reports never land next to the catalog files themselves.
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".estudios", "reports"), nil
	}
	return filepath.Join(cwd, ".estudios", "reports"), nil
}

// generateOutputFilePath combines filename generation and directory
// resolution, creating the directory when necessary.
func generateOutputFilePath(command, extension, configPath string) (string, error) {
	filename := generateTimestampedFileName(command, extension)
	outputDir, err := resolveOutputDirectory(configPath)
	if err != nil {
		return "", err
	}

	if mkErr := os.MkdirAll(outputDir, 0o755); mkErr != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, mkErr)
	}
	return filepath.Join(outputDir, filename), nil
}

// loadConfigOrDefault loads the configuration at path, falling back to the
// defaults when loading fails.
func loadConfigOrDefault(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig(), err
	}
	return cfg, nil
}

// isInteractiveEnvironment returns true if the environment appears to be
// an interactive TTY session (and not CI), used to decide auto-open behavior.
func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// shouldUseColors reports whether stdout is a terminal that can take ANSI
// colors. NO_COLOR always wins.
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
