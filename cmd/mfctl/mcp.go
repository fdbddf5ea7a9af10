package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/2beens/muscleforge/internal/accounts"
	"github.com/2beens/muscleforge/internal/exercises"
	"github.com/2beens/muscleforge/internal/goals"
	mfmcp "github.com/2beens/muscleforge/internal/mcp"
	"github.com/2beens/muscleforge/internal/plans"
	"github.com/2beens/muscleforge/internal/progress"
	"github.com/2beens/muscleforge/internal/sessions"
)

var mcpUsername string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve one account's data to an MCP client over stdio",
	Long: `Start the Model Context Protocol server on stdin/stdout.

Every tool reads on behalf of the given account only. The same tools are
served by the backend on /mcp for the logged in account.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "muscleforge": {
        "command": "mfctl",
        "args": ["mcp", "--username", "ana"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := accounts.NewRepo(dbPool).GetByUsername(cmd.Context(), mcpUsername)
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return fmt.Errorf("no account with username %q", mcpUsername)
		}
		if err != nil {
			return err
		}

		exercisesService := exercises.NewService(exercises.NewRepo(dbPool))
		sessionsRepo := sessions.NewRepo(dbPool)
		contextService := mfmcp.NewContextService(mfmcp.Services{
			Schema:    mfmcp.NewPoolSchemaRepo(dbPool),
			Plans:     plans.NewService(plans.NewRepo(dbPool), sessionsRepo),
			Sessions:  sessions.NewService(sessionsRepo, exercisesService, nil),
			Exercises: exercisesService,
			Goals:     goals.NewService(goals.NewRepo(dbPool)),
			Progress:  progress.NewService(progress.NewRepo(dbPool)),
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		server := mfmcp.NewServer(contextService, account.ID)
		return server.Run(ctx, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpUsername, "username", "", "account whose data is served")
	_ = mcpCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(mcpCmd)
}
