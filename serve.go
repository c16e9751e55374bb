package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/web"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()
			log.Info("database ready", zap.String("path", db.Path()))

			srv, err := web.New(web.Options{
				Addr:          cfg.Server.Addr,
				Mode:          cfg.Server.Mode,
				AlertTTL:      cfg.Alert.TTL,
				RelayTimeout:  cfg.Relay.Timeout,
				RelayName:     string(cfg.Relay.Kind),
				AdminUsername: cfg.Admin.Username,
				AdminPassword: cfg.Admin.Password,
			}, db, mailRelay(cfg, log), log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overriding server.addr")
	return cmd
}
