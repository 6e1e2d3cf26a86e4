package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/cmd/cli/commands"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/internal/config"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/postgres"
	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
	closeDB func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gigstaff",
		Short:        "GigStaff CLI - staff casino-party events and pay the crew",
		Long:         `A CLI for creating events, assigning workers to positions, calculating pay and tracking payments.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeDB != nil {
				closeDB()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.CreateEventCmd(app))
	rootCmd.AddCommand(commands.AddWorkerCmd(app))
	rootCmd.AddCommand(commands.ImportWorkersCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.UnassignCmd(app))
	rootCmd.AddCommand(commands.MarkPaidCmd(app))
	rootCmd.AddCommand(commands.RecalcPayCmd(app))
	rootCmd.AddCommand(commands.PreviewPayCmd(app))
	rootCmd.AddCommand(commands.GigsCmd(app))
	rootCmd.AddCommand(commands.StaffingCmd(app))
	rootCmd.AddCommand(commands.EligibleCmd(app))
	rootCmd.AddCommand(commands.PaySummaryCmd(app))
	rootCmd.AddCommand(commands.ExportPayrollCmd(app))
	rootCmd.AddCommand(commands.PaySettingsCmd(app))
	rootCmd.AddCommand(commands.SetPayRateCmd(app))
	rootCmd.AddCommand(commands.SetBonusCmd(app))
	rootCmd.AddCommand(commands.SetTiersCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	// Cobra already printed the error
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger, config and database. Google clients are created lazily.
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.New(env, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Starting application", zap.String("environment", env))

	// Load configuration
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Debug("Connecting to database")
	// Connect to database
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Database = database
	app.Migrator = database
	closeDB = database.Close
	app.Logger.Debug("Database connected")

	return nil
}
