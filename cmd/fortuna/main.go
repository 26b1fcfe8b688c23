package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/fortuna/internal/cli"
	"github.com/terraincognita07/fortuna/internal/config"
	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/horoscope"
	"github.com/terraincognita07/fortuna/internal/seed"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// commandState is filled by the root command before any subcommand runs.
type commandState struct {
	envFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	state := &commandState{}

	root := &cobra.Command{
		Use:          "fortuna",
		Short:        "Fortuna - personalized daily fortunes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(state.envFile)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			state.cfg = cfg
			state.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if state.logger != nil {
				_ = state.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&state.envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	root.AddCommand(
		newServeCommand(state),
		newMigrateCommand(state),
		newSeedCommand(state),
		newRefreshCommand(state),
		newResetPasswordCommand(state),
	)
	return root
}

func (state *commandState) openDatabase() (*gorm.DB, error) {
	database, err := db.OpenSQLite(state.cfg.DB.Path, state.logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

func newMigrateCommand(state *commandState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := state.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(database)
			fmt.Fprintf(cmd.OutOrStdout(), "Database %s is up to date\n", state.cfg.DB.Path)
			return nil
		},
	}
}

func newSeedCommand(state *commandState) *cobra.Command {
	var catalogPath string
	admin := config.AdminConfig{}

	command := &cobra.Command{
		Use:   "seed",
		Short: "Load personality traits and yearly forecasts, optionally creating an admin",
		Long: `Replaces the personality trait and yearly forecast tables with the
embedded catalog (or --catalog). When an admin username, email and password
are given by flags or ADMIN_* variables, that account is created as an
administrator unless it already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			database, err := state.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(database)

			return cli.RunSeed(database, catalog, mergeAdmin(state.cfg.Admin, admin), time.Now(), state.logger, cmd.OutOrStdout())
		},
	}
	command.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog replacing the embedded one")
	command.Flags().StringVar(&admin.Username, "admin-username", "", "admin username")
	command.Flags().StringVar(&admin.Email, "admin-email", "", "admin email")
	command.Flags().StringVar(&admin.Password, "admin-password", "", "admin password")
	return command
}

func newRefreshCommand(state *commandState) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-horoscopes",
		Short: "Fetch today's horoscope for every sign and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := state.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(database)

			client := horoscope.NewClient(state.cfg.Horoscope, state.logger)
			return cli.RunRefreshHoroscopes(commandContext(cmd), database, client, time.Now(), state.logger, cmd.OutOrStdout())
		},
	}
}

func newResetPasswordCommand(state *commandState) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Assign a temporary password that must be changed at next login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := state.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(database)
			return cli.RunResetPassword(database, args[0], cmd.OutOrStdout())
		},
	}
}

func loadCatalog(path string) (seed.Catalog, error) {
	if path == "" {
		return seed.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return seed.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return seed.Parse(raw)
}

// mergeAdmin lets command line flags override the ADMIN_* environment.
func mergeAdmin(base config.AdminConfig, flags config.AdminConfig) config.AdminConfig {
	if flags.Username != "" {
		base.Username = flags.Username
	}
	if flags.Email != "" {
		base.Email = flags.Email
	}
	if flags.Password != "" {
		base.Password = flags.Password
	}
	return base
}

func closeDatabase(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
