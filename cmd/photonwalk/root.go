package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/photonwalk/internal/logging"
	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
)

var rootCmd = &cobra.Command{
	Use:   "photonwalk",
	Short: "Random walk of a photon from the center of a star to its surface",
	Long: `photonwalk simulates a photon scattering its way out of a star, one step
of one mean free path at a time, and estimates how many years the real photon
would need to escape.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a config field, e.g. --set medium.opacity=4 (repeatable)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed (0 means time based)")
	rootCmd.PersistentFlags().Int("max-steps", 0, "Stop a walk after this many steps (0 means no limit)")
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"seed":      "seed",
	"max-steps": "maxSteps",
	"fps":       "fps",
	"steps":     "stepsPerFrame",
	"walks":     "walks",
	"workers":   "workers",
	"listen":    "listen",
}

// loadConfig reads the optional config file given as the first argument and
// applies --set and the explicitly given flags on top of it.
func loadConfig(cmd *cobra.Command, args []string) (*photonwalk.Config, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := photonwalk.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	sets, _ := cmd.Flags().GetStringArray("set")
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			sets = append(sets, fmt.Sprintf("%s=%s", key, f.Value.String()))
		}
	}
	if err := cfg.ApplyOverrides(sets); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to stderr; LOG_FORMAT=json switches to JSON lines.
func newLogger() *slog.Logger {
	return logging.NewWithWriter(os.Stderr, logging.Level(photonwalk.Debug), logging.ParseFormat(os.Getenv("LOG_FORMAT")))
}
