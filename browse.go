package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/tui"
)

func newBrowseCmd(root *rootFlags) *cobra.Command {
	var (
		style   string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the portfolio in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("stdout is not a TTY (refusing to render ANSI output)")
			}

			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if style == "" {
				style = cfg.TUI.Style
			}

			// stderr belongs to the UI while it runs
			log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: "json", File: logFile})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			opts := []contact.Option{
				contact.WithTimeout(cfg.Relay.Timeout),
				contact.WithLogger(log),
				contact.WithRelayName(string(cfg.Relay.Kind)),
			}
			if db, err := store.Open(cfg.DBPath); err != nil {
				log.Warn("delivery journal unavailable", zap.Error(err))
			} else {
				defer db.Close()
				opts = append(opts, contact.WithJournal(db))
			}

			alert := contact.NewAlert(cfg.Alert.TTL, nil)
			submitter := contact.NewSubmitter(mailRelay(cfg, log), alert, opts...)

			// size to the real terminal before the first render
			w, h := 80, 24
			if ww, hh, err := term.GetSize(int(os.Stdout.Fd())); err == nil && ww > 0 && hh > 0 {
				w, h = ww, hh
			}

			m := tui.New(tui.Options{
				Width:     w,
				Height:    h,
				Style:     style,
				Submitter: submitter,
				Alert:     alert,
				Logger:    log,
			})
			return tui.Run(m)
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "glamour style: auto, dark, light, notty, dracula, pink, or a JSON style file path")
	cmd.Flags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "portfolio-browse.log"), "file the terminal client logs to")
	return cmd
}
