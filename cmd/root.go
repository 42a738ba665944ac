// Package cmd defines and implements the CLI commands for the occupation-risk executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/api"
	"github.com/JakeFAU/occupation-risk/internal/app"
	"github.com/JakeFAU/occupation-risk/internal/config"
)

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App is what subcommands use. Tests substitute a fake through the factory.
type App interface {
	Logger() *zap.Logger
	Pipeline() api.OccupationService
	Prober() api.Prober
	Migrate(ctx context.Context) error
	Run(ctx context.Context) error
	Close() error
}

// appFactory builds the App from the --config path.
type appFactory func(ctx context.Context, cfgPath string) (App, error)

type builtApp struct {
	*app.App
}

func (b builtApp) Pipeline() api.OccupationService { return b.Service() }

func (b builtApp) Prober() api.Prober { return b.BLS() }

func defaultApp(ctx context.Context, cfgPath string) (App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	a, err := app.Build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return builtApp{App: a}, nil
}

// newRootCmd creates and configures the root command.
func newRootCmd(factory appFactory) *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "occupation-risk",
		Short: "Occupation statistics and automation risk lookups.",
		Long: `occupation-risk resolves job titles to SOC codes, serves employment,
wage and projection statistics from a 90-day cache backed by the BLS public
API, and scores each occupation's automation risk.`,
		SilenceUsage: true,

		// Build the application once and hand it to the subcommand through the context.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := factory(cmd.Context(), cfgFile)
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				return appInstance.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); OCCRISK_* environment variables override it")

	cmd.AddCommand(
		newLookupCmd(),
		newCompareCmd(),
		newProbeCmd(),
		newMigrateCmd(),
		newServeCmd(),
	)
	return cmd
}

// resolveApp fetches the App stored by PersistentPreRunE.
func resolveApp(ctx context.Context) (App, error) {
	if ctx == nil {
		return nil, errors.New("command context is nil")
	}
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point.
func Execute() {
	root := newRootCmd(defaultApp)
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
