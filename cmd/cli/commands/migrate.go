package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// Migrator applies schema migrations
type Migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and seed pay settings from config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Migrator == nil {
				return fmt.Errorf("database does not support migrations")
			}
			// Apply pending migrations
			applied, err := app.Migrator.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("\nSchema is up to date")
			} else {
				fmt.Printf("\n✓ Applied %d migration(s):\n", len(applied))
				for _, name := range applied {
					fmt.Printf("  %s\n", name)
				}
			}

			// Seed pay settings into an empty database
			if app.Cfg.SeedSettings != nil {
				seeded, err := services.SeedPaySettings(app.Ctx, app.Database, app.Logger, app.Cfg.SeedSettings.PaySettings())
				if err != nil {
					return err
				}
				if seeded {
					fmt.Println("✓ Seeded pay settings from config")
				}
			}
			fmt.Println()
			return nil
		},
	}
}
