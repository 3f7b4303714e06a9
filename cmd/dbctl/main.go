package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/bun"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/db"
	dbmigrate "github.com/roivaz/docsplit/internal/db/migrate"
)

var rootCmd = &cobra.Command{
	Use:   "dbctl",
	Short: "Database schema management CLI",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize migration tables and extensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			return manager.Init(cmd.Context())
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or rollback schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			return manager.MigrateUp(cmd.Context())
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		to, _ := cmd.Flags().GetString("to")

		return runWithDatabase(func(database *db.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			if to != "" {
				return manager.MigrateDownTo(cmd.Context(), to)
			}
			return manager.MigrateDownSteps(cmd.Context(), steps)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:           "status",
	Short:         "Show applied and pending migrations",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			status, err := manager.Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range status {
				state := "pending"
				if m.IsApplied() {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s_%s\t%s\n", m.Name, m.Comment, state)
			}
			return nil
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:           "verify",
	Short:         "Ensure database is on the latest schema version",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			if err := dbmigrate.EnsureCurrent(cmd.Context(), database.Bun(), migrationsDir(), false); err != nil {
				return err
			}
			count, err := db.NewSearchRepository(database).CountDocuments(cmd.Context())
			if err != nil {
				return fmt.Errorf("count documents: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema is current; %d documents ingested\n", count)
			return nil
		})
	},
}

var recreateCmd = &cobra.Command{
	Use:   "recreate <scope>",
	Short: "Drop and recreate tables (all) or empty them (chunks); destructive",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("scope must be exactly one of: all, chunks")
		}
		switch args[0] {
		case "all", "chunks":
			return nil
		default:
			return errors.New("scope must be one of: all, chunks")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.ToLower(os.Getenv("DB_ALLOW_DESTRUCTIVE")) != "yes" {
			return errors.New("DB_ALLOW_DESTRUCTIVE=yes must be set for recreate")
		}
		scope := args[0]
		return runWithDatabase(func(database *db.Database) error {
			return recreateScope(cmd.Context(), database.Bun(), scope)
		})
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the database is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if err := database.Ping(ctx); err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database connection successful")
			return nil
		})
	},
}

func main() {
	config.Init(rootCmd)

	rootCmd.PersistentFlags().String("dsn", "", "PostgreSQL DSN (overrides POSTGRES_URL)")
	rootCmd.PersistentFlags().String("migrations", "", "Migrations directory (default: embedded migrations)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every SQL query")
	_ = viper.BindPFlag(config.KeyPostgresURL, rootCmd.PersistentFlags().Lookup("dsn"))
	_ = viper.BindPFlag(config.KeyMigrationsDir, rootCmd.PersistentFlags().Lookup("migrations"))
	_ = viper.BindPFlag(config.KeyDBDebug, rootCmd.PersistentFlags().Lookup("debug"))

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(initCmd, migrateCmd, statusCmd, verifyCmd, recreateCmd, pingCmd)
	_ = migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back (0 = all)")
	_ = migrateDownCmd.Flags().String("to", "", "Roll back to the specified migration (inclusive)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dbctl: %v\n", err)
		os.Exit(1)
	}
}

func runWithDatabase(fn func(*db.Database) error) error {
	dsn := config.PostgresURL()
	if dsn == "" {
		return errors.New("postgres DSN must be provided via flag or environment")
	}
	database, err := db.NewDatabase(db.Config{DSN: dsn, Debug: config.DBDebug()})
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}

func recreateScope(ctx context.Context, bunDB *bun.DB, scope string) error {
	switch scope {
	case "all":
		if _, err := bunDB.ExecContext(ctx, `DROP TABLE IF EXISTS chunks, documents, bun_migrations, bun_migration_locks CASCADE`); err != nil {
			return err
		}
	case "chunks":
		if _, err := bunDB.ExecContext(ctx, `TRUNCATE TABLE chunks, documents`); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown scope: %s", scope)
	}
	return dbmigrate.EnsureCurrent(ctx, bunDB, migrationsDir(), true)
}

func newManager(database *db.Database) (*dbmigrate.Manager, error) {
	return dbmigrate.NewManager(database.Bun(), migrationsDir())
}

// migrationsDir is empty unless overridden, which selects the embedded set.
func migrationsDir() string {
	return config.MigrationsDir()
}
