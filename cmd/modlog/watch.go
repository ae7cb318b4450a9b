package modlog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/modlog/pkg/config"
	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/logger"
	"github.com/arthur-debert/modlog/pkg/logging"
	"github.com/arthur-debert/modlog/pkg/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:     "watch <module>...",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.GetLogger("cmd.watch")

			path := watchPath(opts)
			if path == "" {
				return errors.New(errors.ErrConfigWatch, MsgErrNoWatchFile)
			}

			local := *opts
			local.configPath = path
			cfg, err := loadConfig(&local)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			l, err := watchResolver(cfg, metrics.New(reg))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				srv := metricsServer(metricsAddr, reg)
				go func() {
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						log.Error().Err(err).Str("addr", metricsAddr).Msg("Metrics server failed")
					}
				}()
				defer shutdown(srv)
				fmt.Fprintf(cmd.ErrOrStderr(), MsgMetricsAddr, metricsAddr)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgWatching, path)
			if err := renderResolutions(out, l, args); err != nil {
				return err
			}

			return config.Watch(ctx, path,
				func(cfg *config.Config) {
					defer logging.LogOperationStart(log, "reload")()
					table, err := cfg.BuildTable()
					if err != nil {
						fmt.Fprintf(out, MsgReloadFailed, err)
						return
					}
					l.Reconfigure(table)
					fmt.Fprintf(out, MsgReloaded, path)
					if err := renderResolutions(out, l, args); err != nil {
						log.Warn().Err(err).Msg("Failed to render resolutions")
					}
				},
				func(err error) {
					fmt.Fprintf(out, MsgReloadFailed, err)
				})
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics", "", MsgFlagMetrics)

	return cmd
}

// watchPath picks the file to watch: --config, then $LOG_CONFIG, then the
// XDG default. Without a file there is nothing to watch.
func watchPath(opts *globalOptions) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	if p := os.Getenv(config.EnvConfigPath); p != "" {
		return p
	}
	return config.DefaultPath()
}

func watchResolver(cfg *config.Config, m *metrics.Metrics) (*logger.Logger, error) {
	table, err := cfg.BuildTable()
	if err != nil {
		return nil, err
	}
	return logger.New(table, logger.WithRoot(cfg.Root), logger.WithMetrics(m)), nil
}

func metricsServer(addr string, reg *prometheus.Registry) *http.Server {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
