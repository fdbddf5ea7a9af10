package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/muscleforge/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Apply the muscleforge schema to the configured database.

Every statement is idempotent, running it against an up to date database
changes nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Migrate(cmd.Context(), dbPool); err != nil {
			return err
		}
		color.Green("✓ schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
