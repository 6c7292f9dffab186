package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rentvest/property-vs-fund/internal/api"
	"github.com/rentvest/property-vs-fund/internal/cache"
	"github.com/rentvest/property-vs-fund/internal/calculation"
	"github.com/rentvest/property-vs-fund/internal/config"
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/rentvest/property-vs-fund/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type reportOptions struct {
	format      string
	out         string
	timestamped bool
}

func (o *reportOptions) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVarP(&o.format, "format", "f", defaultFormat, "report format: "+fmt.Sprint(output.AvailableFormatterNames()))
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&o.timestamped, "timestamped", false, "write the report to a timestamped file in the working directory")
}

// emit renders results and writes them to stdout or a file.
func (o *reportOptions) emit(cmd *cobra.Command, logger *zap.Logger, results *domain.ScenarioComparison) error {
	if o.out != "" || o.timestamped {
		filename, err := output.WriteReport(results, o.format, o.out)
		if err != nil {
			return err
		}
		logger.Info("report written", zap.String("file", filename), zap.String("format", output.NormalizeFormatName(o.format)))
		return nil
	}
	f, err := output.LookupFormatter(o.format)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newRunCmd(a *app) *cobra.Command {
	var opts reportOptions
	var debug bool
	cmd := &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Project every scenario in a configuration file and print a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine, err := calculation.NewCalculationEngineForConfig(cfg)
			if err != nil {
				return err
			}
			engine.SetLogger(a.logger.Sugar())
			engine.Debug = debug

			results, err := engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return opts.emit(cmd, a.logger, results)
		},
	}
	opts.register(cmd, "console")
	cmd.Flags().BoolVar(&debug, "debug", false, "log the year-0 breakdown of every scenario")
	return cmd
}

func newQuoteCmd(a *app) *cobra.Command {
	var opts reportOptions
	inputs := domain.DefaultScenarioInputs()
	name := "Quote"
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Project a single scenario given on the command line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := calculation.NewCalculationEngine()
			engine.SetLogger(a.logger.Sugar())
			results, err := engine.RunScenarios(cmd.Context(), &domain.Configuration{
				Scenarios: []domain.Scenario{{Name: name, Inputs: inputs}},
			})
			if err != nil {
				return err
			}
			return opts.emit(cmd, a.logger, results)
		},
	}
	opts.register(cmd, "console")
	fl := cmd.Flags()
	fl.StringVar(&name, "name", name, "scenario name")
	fl.Var(decimalFlag{&inputs.PurchasePrice}, "price", "purchase price")
	fl.Var(decimalFlag{&inputs.DownPayment}, "down-payment", "down payment")
	fl.Var(decimalFlag{&inputs.MortgageInterestRate}, "interest-rate", "mortgage interest rate (% per year)")
	fl.Var(decimalFlag{&inputs.PropertyAppreciationRate}, "appreciation", "property appreciation (% per year)")
	fl.Var(decimalFlag{&inputs.FundReturnRate}, "fund-return", "fund return (% per year)")
	fl.Var(decimalFlag{&inputs.RentGrowthRate}, "rent-growth", "rent growth (% per year)")
	fl.Var(decimalFlag{&inputs.WeeklyRentIncome}, "weekly-rent", "weekly rent income")
	fl.Var(decimalFlag{&inputs.AnnualMaintenanceCost}, "maintenance", "annual maintenance cost")
	fl.Var(decimalFlag{&inputs.AnnualInsuranceCost}, "insurance", "annual insurance cost")
	fl.BoolVar(&inputs.IsFirstTimeBuyer, "first-home", false, "buyer qualifies for the first home buyer concession")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Check a configuration file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			rules := cfg.EffectiveRules()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d scenario(s) valid; tax tables %s, horizon %d years\n",
				args[0], len(cfg.Scenarios), rules.Name, rules.Horizon())
			return nil
		},
	}
}

func newExampleCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.SaveConfiguration(config.NewInputParser().CreateExampleConfiguration(), out); err != nil {
				return fmt.Errorf("failed to write example configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "example_config.yaml", "output file")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.Server.Address
			}
			return serve(cmd.Context(), a, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings)")
	return cmd
}

// newProjectionCache builds the cache selected in settings; nil disables caching.
func newProjectionCache(ctx context.Context, engine *calculation.CalculationEngine, s config.CacheSettings, logger *zap.Logger) (*cache.ProjectionCache, func()) {
	switch s.Backend {
	case config.CacheBackendNone:
		return nil, func() {}
	case config.CacheBackendRedis:
		store := cache.NewRedisStore(s.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			logger.Warn("redis unreachable; requests will be computed until it recovers",
				zap.String("addr", s.RedisAddr), zap.Error(err))
		}
		return cache.NewProjectionCache(engine, store, s.TTL, logger), func() { _ = store.Close() }
	default:
		return cache.NewProjectionCache(engine, cache.NewMemoryStore(), s.TTL, logger), func() {}
	}
}

func serve(ctx context.Context, a *app, addr string) error {
	logger := a.logger
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger.Sugar())

	pc, closeCache := newProjectionCache(ctx, engine, a.settings.Cache, logger)
	defer closeCache()

	handler := api.NewHandler(engine, pc, logger)
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(handler, a.settings.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("cache", a.settings.Cache.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.settings.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
