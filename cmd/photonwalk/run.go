package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
	"github.com/lukaszgryglicki/photonwalk/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run [config]",
	Short: "Run a single walk and print its results",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		chart, _ := cmd.Flags().GetBool("chart")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := report.NewConsole(cmd.OutOrStdout())
		_, traj, err := photonwalk.Run(ctx, cfg, newLogger(), photonwalk.WithReporter(out))
		if err != nil {
			return err
		}
		out.Farthest(traj.MaxDistance(), cfg.Medium.BoundaryRadius())
		if chart {
			out.Chart(traj.Distances())
		}
		return out.Err()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("fps", 0, "Steps per second, negative for as fast as possible (default 60)")
	runCmd.Flags().Int("steps", 0, "Steps taken per frame (default 1)")
	runCmd.Flags().Bool("chart", true, "Plot the distance from the center per step")
}
