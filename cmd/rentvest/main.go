// Command rentvest compares buying a rental property with investing the
// same money in an index fund.
package main

import (
	"fmt"
	"os"

	"github.com/rentvest/property-vs-fund/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every command needs once flags are parsed.
type app struct {
	settingsPath string
	logLevel     string
	logFormat    string

	settings *config.Settings
	logger   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "rentvest",
		Short:         "Compare buying an investment property with investing in an index fund",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsPath, "settings", "", "application settings file (YAML)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: console, json")

	root.AddCommand(
		newRunCmd(a),
		newQuoteCmd(a),
		newValidateCmd(a),
		newExampleCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	settings, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	logger, err := initializeLogger(settings.Logging, a.logLevel, a.logFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.settings = settings
	a.logger = logger
	return nil
}
