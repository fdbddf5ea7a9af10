package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/2beens/muscleforge/internal/accounts"
	"github.com/2beens/muscleforge/internal/exercises"
	"github.com/2beens/muscleforge/internal/profiles"
	"github.com/2beens/muscleforge/internal/telemetry/metrics"
	"github.com/2beens/muscleforge/internal/validation"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account the same way the /a/register endpoint does.

The account gets its profile and the default exercise catalog.

Example:
  mfctl register --username ana --password 's3cret-pass'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercisesRepo := exercises.NewRepo(dbPool)
		service := accounts.NewService(
			accounts.NewRepo(dbPool),
			metrics.NewManager("muscleforge", "mfctl", prometheus.NewRegistry()),
			profiles.NewService(profiles.NewRepo(dbPool)).OnAccountSaved,
			exercises.NewSeeder(exercisesRepo, exercises.DefaultCatalog).OnAccountSaved,
		)

		account, err := service.Register(cmd.Context(), accounts.RegisterForm{
			Username:  registerUsername,
			Email:     registerEmail,
			Password1: registerPassword,
			Password2: registerPassword,
		})
		var verr *validation.Error
		if errors.As(err, &verr) {
			printFieldErrors(verr)
			return errors.New("account not created")
		}
		if err != nil {
			return err
		}

		color.Green("✓ account %d [%s] created", account.ID, account.Username)
		return nil
	},
}

func printFieldErrors(verr *validation.Error) {
	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		color.Yellow("%s: %s", field, verr.Fields[field])
	}
	if len(fields) == 0 {
		fmt.Println(verr.Error())
	}
}

func init() {
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "account username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email (optional)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(registerCmd)
}
