package exercises

import (
	"context"
	"fmt"

	"github.com/2beens/muscleforge/internal/accounts"
	"github.com/2beens/muscleforge/internal/db"

	log "github.com/sirupsen/logrus"
)

type templatesRepo interface {
	InsertTemplates(ctx context.Context, q db.Querier, ownerID int, templates []Template) (int64, error)
}

// Seeder gives every new account its own copy of the catalog.
type Seeder struct {
	repo    templatesRepo
	catalog []Template
}

func NewSeeder(repo templatesRepo, catalog []Template) *Seeder {
	return &Seeder{
		repo:    repo,
		catalog: catalog,
	}
}

// OnAccountSaved seeds the catalog when, and only when, the account was just created.
func (s *Seeder) OnAccountSaved(ctx context.Context, q db.Querier, account *accounts.Account, created bool) error {
	if !created || len(s.catalog) == 0 {
		return nil
	}

	n, err := s.repo.InsertTemplates(ctx, q, account.ID, s.catalog)
	if err != nil {
		return fmt.Errorf("seed exercises for account %d: %w", account.ID, err)
	}
	if n != int64(len(s.catalog)) {
		return fmt.Errorf("seed exercises for account %d: inserted %d of %d", account.ID, n, len(s.catalog))
	}

	log.Debugf("seeded %d exercises (catalog v%d) for account %d", n, CatalogVersion, account.ID)
	return nil
}
