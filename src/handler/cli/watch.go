package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"pylens/src/controller"
	"pylens/src/service/metrics"
	"pylens/src/util"
)

func (h *Handler) watchCmd() *cobra.Command {
	var (
		metricsAddr string
		format      string
		noHistory   bool
	)

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-analyze Python files as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			if metricsAddr != "" {
				h.cfg.Metrics.Enabled = true
				h.cfg.Metrics.Addr = metricsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := []controller.Option{}

			store, err := h.openHistory(noHistory)
			if err != nil {
				return err
			}
			defer store.Close()
			opts = append(opts, controller.WithHistory(store))

			if h.cfg.Metrics.Enabled {
				reg := prometheus.NewRegistry()
				opts = append(opts, controller.WithRecorder(metrics.NewRecorder(reg)))

				server := metrics.NewServer(h.cfg.Metrics.Addr, reg)
				if err := server.Start(ctx); err != nil {
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := server.Stop(shutdownCtx); err != nil {
						util.Warn("Metrics server shutdown: %v", err)
					}
				}()
				fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("metrics on http://"+server.Addr()+"/metrics"))
			}

			watchCtrl := controller.NewWatchController(
				controller.NewAnalysisController(h.cfg, opts...),
				controller.NewReportController(h.cfg),
				controller.WatchOptions{Out: cmd.OutOrStdout(), Format: format},
			)
			fmt.Fprintln(cmd.ErrOrStderr(), titleStyle.Render("Watching for changes, Ctrl+C to stop"))
			return watchCtrl.Run(ctx, args)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format for each change set")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record analyses in the history store")

	return cmd
}
