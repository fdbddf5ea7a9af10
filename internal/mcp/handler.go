package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/2beens/muscleforge/internal/access"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler turns tool calls into service calls for a single account.
type Handler struct {
	service   contextService
	accountID int
}

func NewHandler(service contextService, accountID int) *Handler {
	return &Handler{
		service:   service,
		accountID: accountID,
	}
}

func errorResult(prefix string, err error) *mcp.CallToolResult {
	msg := prefix + ": " + err.Error()
	switch {
	case errors.Is(err, access.ErrNotFound):
		msg = prefix + ": not found"
	case errors.Is(err, access.ErrForbidden):
		msg = prefix + ": not yours"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema", err), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

func (h *Handler) ListPlansTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		list, err := h.service.ListPlans(ctx, h.accountID)
		if err != nil {
			return errorResult("Error listing workout plans", err), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// PlanInput is the input for get_workout_plan.
type PlanInput struct {
	PlanID int `json:"plan_id" jsonschema:"Workout plan id (see list_workout_plans)"`
}

func (h *Handler) GetPlanTool() func(context.Context, *mcp.CallToolRequest, PlanInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PlanInput) (*mcp.CallToolResult, any, error) {
		detail, err := h.service.GetPlan(ctx, h.accountID, in.PlanID)
		if err != nil {
			return errorResult("Error fetching workout plan", err), nil, nil
		}
		return jsonResult(detail), nil, nil
	}
}

// SessionInput is the input for get_workout_session.
type SessionInput struct {
	PlanID    int `json:"plan_id" jsonschema:"Workout plan id"`
	SessionID int `json:"session_id" jsonschema:"Workout session id within the plan"`
}

func (h *Handler) GetSessionTool() func(context.Context, *mcp.CallToolRequest, SessionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SessionInput) (*mcp.CallToolResult, any, error) {
		session, err := h.service.GetSession(ctx, h.accountID, in.PlanID, in.SessionID)
		if err != nil {
			return errorResult("Error fetching workout session", err), nil, nil
		}
		return jsonResult(session), nil, nil
	}
}

func (h *Handler) ListExercisesTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		list, err := h.service.ListExercises(ctx, h.accountID)
		if err != nil {
			return errorResult("Error listing exercises", err), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

func (h *Handler) ListGoalsTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		list, err := h.service.ListGoals(ctx, h.accountID)
		if err != nil {
			return errorResult("Error listing goals", err), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

func (h *Handler) GoalStatsTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		stats, err := h.service.GoalStats(ctx, h.accountID)
		if err != nil {
			return errorResult("Error fetching goal stats", err), nil, nil
		}
		return jsonResult(stats), nil, nil
	}
}

// ProgressInput is the input for list_progress.
type ProgressInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Return at most this many entries, newest first (0 = all)"`
}

func (h *Handler) ListProgressTool() func(context.Context, *mcp.CallToolRequest, ProgressInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ProgressInput) (*mcp.CallToolResult, any, error) {
		if in.Limit < 0 {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: "Invalid limit: must not be negative"}},
				IsError: true,
			}, nil, nil
		}
		list, err := h.service.ListProgress(ctx, h.accountID, in.Limit)
		if err != nil {
			return errorResult("Error listing progress", err), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}
