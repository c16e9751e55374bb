package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
)

type rootFlags struct {
	config  string
	verbose bool
}

func main() {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Zach's portfolio, on the web or in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.config, "config", "portfolio.yml", "path to the YAML config file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(newServeCmd(&flags), newBrowseCmd(&flags), newConfigCmd(&flags))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads and validates the config named by the --config flag.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// mailRelay builds the configured relay. A relay that cannot be built does
// not stop the portfolio from starting: every submission fails instead.
func mailRelay(cfg *config.Config, log *zap.Logger) contact.Relay {
	relay, err := cfg.NewRelay()
	if err == nil {
		return relay
	}
	log.Warn("mail relay not configured, contact form submissions will fail",
		zap.String("relay", string(cfg.Relay.Kind)),
		zap.Error(err),
	)
	return contact.RelayFunc(func(context.Context, contact.Submission) error {
		return fmt.Errorf("%w: %v", contact.ErrRelay, err)
	})
}
