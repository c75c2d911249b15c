package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"creatorlens/internal/config"
	"creatorlens/internal/persistence"
)

// NewMigrateCmd creates the migrate command for database migrations
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long: `Manage database schema migrations.

Subcommands:
  up       Apply all pending migrations
  status   Show migration status

Applied migrations are tracked in the schema_migrations table and new
migrations run in sequential order inside a transaction.

Examples:
  creatorlens migrate up
  creatorlens migrate status`,
	}

	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateStatusCmd())

	return cmd
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrateUp(cmd.Context())
		},
	}
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrateStatus(cmd.Context())
		},
	}
}

func runMigrateUp(ctx context.Context) error {
	db, err := connectDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return persistence.NewMigrationManager(db).Migrate(ctx)
}

func runMigrateStatus(ctx context.Context) error {
	db, err := connectDB()
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := persistence.NewMigrationManager(db).Status(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Migration status:")
	for _, s := range status {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Printf("  %3d  %-40s  %s\n", s.Version, s.Description, state)
	}
	return nil
}

func connectDB() (*persistence.PostgresDB, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.ConnectionString == "" {
		return nil, fmt.Errorf("database connection string not configured (set DATABASE_URL)")
	}

	db, err := persistence.NewPostgresDB(cfg.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
