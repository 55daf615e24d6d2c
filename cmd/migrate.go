package cmd

import (
	"fmt"

	"github.com/scribeworks/transcriber-api/internal/database"
	"github.com/scribeworks/transcriber-api/internal/models"
	"github.com/scribeworks/transcriber-api/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the Transcriber API database schema.

The schema is managed through GORM auto-migration of the application
models. Use the subcommands to apply the schema or inspect its state.

Available subcommands:
  up      - Apply the schema to the configured database
  down    - Drop the application tables
  status  - Show which tables currently exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the schema",
	Long: `Create or update the application tables.

Auto-migration adds missing tables, columns and indexes. It never
drops existing columns.`,
	RunE: runMigrateUp,
}

// migrateDownCmd drops the application tables
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Drop the application tables",
	Long: `Drop the users and transcription_records tables.

This destroys all stored accounts and transcription history.`,
	RunE: runMigrateDown,
}

// migrateStatusCmd shows which tables exist
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

// migrationModels is the schema in dependency order
var migrationModels = []any{
	&models.User{},
	&models.Transcription{},
}

func openMigrationDB() (*database.DB, error) {
	if err := loadConfig(); err != nil {
		return nil, err
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	return database.Initialize(cfg.Database.Path, database.Options{
		MaxConnections:        cfg.Database.MaxConnections,
		MaxIdleConnections:    cfg.Database.MaxIdleConnections,
		ConnectionMaxLifetime: cfg.Database.ConnectionMaxLifetime,
		LogQueries:            cfg.Database.LogQueries,
	})
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Println("Dry run mode - no changes will be made")
		for _, m := range migrationModels {
			fmt.Printf("Would migrate %T\n", m)
		}
		return nil
	}

	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(migrationModels...); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	fmt.Println("Schema applied")
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if !dryRun {
		fmt.Print("WARNING: This will drop all application tables. Continue? (y/N): ")
		var response string
		_, _ = fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Rollback cancelled")
			return nil
		}
	}

	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, m := range migrationModels {
		if dryRun {
			fmt.Printf("Would drop table for %T\n", m)
			continue
		}
		if err := db.DB.Migrator().DropTable(m); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", m, err)
		}
	}

	if !dryRun {
		fmt.Println("Tables dropped")
	}
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	fmt.Println("Database Schema Status")
	for _, m := range migrationModels {
		state := "missing"
		if db.DB.Migrator().HasTable(m) {
			state = "present"
		}
		fmt.Printf("  %-30T %s\n", m, state)
	}
	return nil
}
