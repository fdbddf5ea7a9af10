// Package dbtest starts a throwaway postgres in docker for integration tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/2beens/muscleforge/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const testDBName = "muscleforge_test"

type Postgres struct {
	Pool *pgxpool.Pool
	Port string

	dockerPool *dockertest.Pool
	resource   *dockertest.Resource
}

// StartPostgres runs postgres:16 with the schema applied.
// Callers must Close it, usually from TestMain.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("new dockertest pool: %w", err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("ping docker: %w", err)
	}
	dockerPool.MaxWait = 2 * time.Minute

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("run postgres: %w", err)
	}
	_ = resource.Expire(300)

	p := &Postgres{
		Port:       resource.GetPort("5432/tcp"),
		dockerPool: dockerPool,
		resource:   resource,
	}

	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/%s?sslmode=disable", p.Port, testDBName)
	if err := dockerPool.Retry(func() error {
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		return sqlDB.PingContext(ctx)
	}); err != nil {
		p.Close()
		return nil, fmt.Errorf("wait for postgres: %w", err)
	}

	p.Pool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: "localhost",
		DBPort: p.Port,
		DBName: testDBName,
	})
	if err != nil {
		p.Close()
		return nil, err
	}

	if err := db.Migrate(ctx, p.Pool); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// Reset wipes all rows, keeping the schema.
func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `TRUNCATE account RESTART IDENTITY CASCADE;`)
	return err
}

func (p *Postgres) DBName() string {
	return testDBName
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
	if p.resource != nil {
		_ = p.dockerPool.Purge(p.resource)
	}
}
