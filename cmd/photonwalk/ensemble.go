package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
	"github.com/lukaszgryglicki/photonwalk/internal/report"
)

var ensembleCmd = &cobra.Command{
	Use:   "ensemble [config]",
	Short: "Run many independent walks in parallel and average them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := newLogger()
		log.Info("ensemble started", "walks", cfg.Walks, "workers", cfg.Workers)
		res, err := photonwalk.Estimate(ctx, cfg.Medium, cfg.Ensemble())
		if err != nil {
			return err
		}
		out := report.NewConsole(cmd.OutOrStdout())
		out.Ensemble(res)
		return out.Err()
	},
}

func init() {
	rootCmd.AddCommand(ensembleCmd)
	ensembleCmd.Flags().Int("walks", 0, "Number of walks (default 100)")
	ensembleCmd.Flags().Int("workers", 0, "Parallel workers (default NumCPU)")
}
