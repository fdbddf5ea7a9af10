package mcp

import (
	"net/http"

	"github.com/2beens/muscleforge/internal/access"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds a read-only MCP server over the data of accountID:
// workout plans with their sessions, exercises, goals and progress entries.
func NewServer(service contextService, accountID int) *mcp.Server {
	h := NewHandler(service, accountID)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "muscleforge-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_schema",
		Description: "Returns the DB schema of the fitness tables (exercise, workout_plan, workout_session, exercise_in_session, goal, progress_entry, profile). Use when you need to know what a field means.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_workout_plans",
		Description: "Returns the account's workout plans ordered by start date (id, title, start/end date, status).",
	}, h.ListPlansTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_plan",
		Description: "Returns one workout plan with all of its sessions. Arg: plan_id.",
	}, h.GetPlanTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_session",
		Description: "Returns a workout session with its exercise entries (exercise, reps, sets, weight, duration). Args: plan_id, session_id.",
	}, h.GetSessionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_exercises",
		Description: "Returns the account's exercise catalog ordered by category and name.",
	}, h.ListExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_goals",
		Description: "Returns the account's goals ordered by start date.",
	}, h.ListGoalsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_goal_stats",
		Description: "Returns how many goals are completed vs. not completed.",
	}, h.GoalStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_progress",
		Description: "Returns body progress check-ins (weight, measurements, notes), newest first. Optional: limit.",
	}, h.ListProgressTool())

	return s
}

// NewHTTPHandler serves the caller's MCP server over streamable HTTP.
// It has to run behind the auth middleware, which puts the caller into the context.
// Stateless: every request gets a fresh server bound to its caller.
func NewHTTPHandler(service contextService) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		accountID, ok := access.CallerFrom(r.Context())
		if !ok {
			return nil
		}
		return NewServer(service, accountID)
	}, &mcp.StreamableHTTPOptions{Stateless: true})
}
