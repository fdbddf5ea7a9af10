package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/muscleforge/internal/exercises"
	"github.com/2beens/muscleforge/internal/goals"
	"github.com/2beens/muscleforge/internal/plans"
	"github.com/2beens/muscleforge/internal/progress"
	"github.com/2beens/muscleforge/internal/sessions"
)

type plansReader interface {
	List(ctx context.Context, callerID int) ([]plans.Plan, error)
	Get(ctx context.Context, callerID, id int) (*plans.Detail, error)
}

type sessionsReader interface {
	Get(ctx context.Context, callerID, planID, sessionID int) (*sessions.Session, error)
}

type exercisesLister interface {
	List(ctx context.Context, callerID int) ([]exercises.Exercise, error)
}

type goalsReader interface {
	List(ctx context.Context, callerID int) ([]goals.Goal, error)
	Stats(ctx context.Context, callerID int) (goals.Stats, error)
}

type progressLister interface {
	List(ctx context.Context, callerID int) ([]progress.Entry, error)
}

// contextService is what the tool handlers read through. Every call is made on
// behalf of one account and goes through the same ownership checks as HTTP.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	ListPlans(ctx context.Context, accountID int) ([]plans.Plan, error)
	GetPlan(ctx context.Context, accountID, planID int) (*plans.Detail, error)
	GetSession(ctx context.Context, accountID, planID, sessionID int) (*sessions.Session, error)
	ListExercises(ctx context.Context, accountID int) ([]exercises.Exercise, error)
	ListGoals(ctx context.Context, accountID int) ([]goals.Goal, error)
	GoalStats(ctx context.Context, accountID int) (goals.Stats, error)
	ListProgress(ctx context.Context, accountID, limit int) ([]progress.Entry, error)
}

// Services are the read sides the tools use, normally the HTTP services themselves.
type Services struct {
	Schema    SchemaRepo
	Plans     plansReader
	Sessions  sessionsReader
	Exercises exercisesLister
	Goals     goalsReader
	Progress  progressLister
}

type ContextService struct {
	deps Services
}

func NewContextService(services Services) *ContextService {
	return &ContextService{deps: services}
}

// GetSchema renders the tables behind the tools as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.deps.Schema.Columns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# muscleforge DB Schema\n\nNo tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}
	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# muscleforge DB Schema\n\n")
	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) ListPlans(ctx context.Context, accountID int) ([]plans.Plan, error) {
	list, err := s.deps.Plans.List(ctx, accountID)
	if list == nil && err == nil {
		list = []plans.Plan{}
	}
	return list, err
}

func (s *ContextService) GetPlan(ctx context.Context, accountID, planID int) (*plans.Detail, error) {
	return s.deps.Plans.Get(ctx, accountID, planID)
}

func (s *ContextService) GetSession(ctx context.Context, accountID, planID, sessionID int) (*sessions.Session, error) {
	return s.deps.Sessions.Get(ctx, accountID, planID, sessionID)
}

func (s *ContextService) ListExercises(ctx context.Context, accountID int) ([]exercises.Exercise, error) {
	list, err := s.deps.Exercises.List(ctx, accountID)
	if list == nil && err == nil {
		list = []exercises.Exercise{}
	}
	return list, err
}

func (s *ContextService) ListGoals(ctx context.Context, accountID int) ([]goals.Goal, error) {
	list, err := s.deps.Goals.List(ctx, accountID)
	if list == nil && err == nil {
		list = []goals.Goal{}
	}
	return list, err
}

func (s *ContextService) GoalStats(ctx context.Context, accountID int) (goals.Stats, error) {
	return s.deps.Goals.Stats(ctx, accountID)
}

// ListProgress returns the newest entries first, at most limit of them when limit > 0.
func (s *ContextService) ListProgress(ctx context.Context, accountID, limit int) ([]progress.Entry, error) {
	entries, err := s.deps.Progress.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []progress.Entry{}
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
