package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/yourusername/sekolah-api/internal/config"
	"github.com/yourusername/sekolah-api/pkg/database"
)

var (
	configPath     string
	migrationsPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the sekolah-api database schema",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "migrations directory (defaults to database.migrations_path)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *migrateV4.Migrate) error {
					return ignoreNoChange(m.Up())
				})
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back the given number of migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("invalid steps %q", args[0])
					}
					steps = n
				}
				return withMigrator(func(m *migrateV4.Migrate) error {
					return ignoreNoChange(m.Steps(-steps))
				})
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the schema version and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return withMigrator(func(m *migrateV4.Migrate) error {
					return m.Force(version)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *migrateV4.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrateV4.ErrNilVersion) {
						fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

func withMigrator(fn func(m *migrateV4.Migrate) error) error {
	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}
	dir := migrationsPath
	if dir == "" {
		dir = cfg.Database.MigrationsPath
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, dir)
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}
	log.Println("Done")
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrateV4.ErrNoChange) {
		log.Println("No migration changes detected")
		return nil
	}
	return err
}
