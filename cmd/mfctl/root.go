package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/2beens/muscleforge/internal/config"
	"github.com/2beens/muscleforge/internal/db"
)

var (
	env        string
	configPath string

	dbPool *pgxpool.Pool
)

var rootCmd = &cobra.Command{
	Use:           "mfctl",
	Short:         "muscleforge admin tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load(env, configPath)
		if err != nil {
			return err
		}
		secrets, err := config.LoadSecrets(cmd.Context())
		if err != nil {
			return err
		}

		dbPool, err = db.NewDBPool(cmd.Context(), db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: secrets.PostgresPassword,
		})
		if err != nil {
			return fmt.Errorf("db pool: %w", err)
		}
		return dbPool.Ping(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbPool != nil {
			dbPool.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path to TOML config file")
}
