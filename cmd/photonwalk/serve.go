package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/photonwalk/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [config]",
	Short: "Stream a frame-paced walk over WebSocket with Prometheus metrics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		log := newLogger()
		srv := server.New(cfg, log)
		defer srv.Close()
		if err := srv.StartWalk(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		httpSrv := &http.Server{Addr: cfg.Listen, Handler: srv.Handler()}
		go func() {
			<-ctx.Done()
			log.Info("received interrupt signal, shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()

		log.Info("listening", "addr", cfg.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Listen address (default :8080)")
	serveCmd.Flags().Int("fps", 0, "Steps per second (default 60)")
	serveCmd.Flags().Int("steps", 0, "Steps taken per frame (default 1)")
}
