//go:build integration_test || all_tests

package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/2beens/muscleforge/internal/accounts"
	"github.com/2beens/muscleforge/internal/config"
	"github.com/2beens/muscleforge/internal/db/dbtest"
	"github.com/2beens/muscleforge/internal/exercises"
)

const (
	serverPort = 9317
	serverHost = "127.0.0.1"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type IntegrationTestSuite struct {
	suite.Suite

	pg         *dbtest.Postgres
	dockerPool *dockertest.Pool
	server     *Server
	teardown   []func()
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	var err error
	s.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}
	if err = s.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := s.redisSetup()
	if err != nil {
		s.cleanup()
		log.Fatalf("failed to setup redis: %s", err)
	}

	s.pg, err = dbtest.StartPostgres(ctx)
	if err != nil {
		s.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}
	s.teardown = append(s.teardown, s.pg.Close)

	s.server, err = NewServer(ctx, NewServerParams{
		Config: &config.Config{
			Host:                        serverHost,
			Port:                        serverPort,
			PostgresHost:                "localhost",
			PostgresPort:                s.pg.Port,
			PostgresDBName:              s.pg.DBName(),
			PostgresUser:                "postgres",
			RedisHost:                   "localhost",
			RedisPort:                   redisPort,
			PrometheusMetricsHost:       serverHost,
			PrometheusMetricsPort:       "0",
			SessionTTLHours:             1,
			SessionCacheSizeMB:          1,
			LoginRateLimitAllowedPerMin: 1000,
			SessionFormExtraRows:        3,
		},
		VersionInfo: "test-version-info",
	})
	if err != nil {
		s.cleanup()
		log.Fatalf("new server: %s", err)
	}
	s.server.Serve(serverHost, serverPort)

	s.Require().Eventually(func() bool {
		resp, err := http.Get(serverEndpoint + "/")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 100*time.Millisecond)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.cleanup()
}

func (s *IntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Reset(context.Background()))
}

func (s *IntegrationTestSuite) cleanup() {
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	for i := len(s.teardown) - 1; i >= 0; i-- {
		s.teardown[i]()
	}
}

func (s *IntegrationTestSuite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %w", err)
	}
	s.teardown = append(s.teardown, func() {
		_ = s.dockerPool.Purge(redisResource)
	})
	return redisResource.GetPort("6379/tcp"), nil
}

// do sends body as JSON and decodes the response into out when out is not nil.
func (s *IntegrationTestSuite) do(method, path, token string, body, out any) int {
	t := s.T()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, serverEndpoint+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) registerAndLogin(username string) (string, int) {
	t := s.T()

	status := s.do(http.MethodPost, "/a/register", "", map[string]string{
		"username":  username,
		"password1": "long-enough-pass",
		"password2": "long-enough-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login accounts.LoginResponse
	status = s.do(http.MethodPost, "/a/login", "", map[string]string{
		"username": username,
		"password": "long-enough-pass",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)
	return login.Token, login.AccountID
}

func (s *IntegrationTestSuite) count(query string, args ...any) int {
	var n int
	s.Require().NoError(s.pg.Pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

func (s *IntegrationTestSuite) createPlan(token string) int {
	var plan struct {
		ID int `json:"id"`
	}
	status := s.do(http.MethodPost, "/workoutplans", token, map[string]string{
		"title":     "Spring block",
		"startDate": "2026-03-01",
		"endDate":   "2026-05-31",
	}, &plan)
	s.Require().Equal(http.StatusCreated, status)
	return plan.ID
}

func (s *IntegrationTestSuite) TestRegister_SeedsProfileAndCatalog() {
	t := s.T()
	token, accountID := s.registerAndLogin("ana")

	var exs []exercises.Exercise
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/exercises", token, nil, &exs))
	assert.Len(t, exs, len(exercises.DefaultCatalog))
	assert.Equal(t, 1, s.count(`SELECT count(*) FROM profile WHERE account_id = $1`, accountID))

	// saving the account again must not seed twice
	status := s.do(http.MethodPut, "/account", token, map[string]string{
		"username": "ana-renamed",
		"email":    "ana@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, 1, s.count(`SELECT count(*) FROM profile WHERE account_id = $1`, accountID))
	assert.Equal(t, len(exercises.DefaultCatalog), s.count(`SELECT count(*) FROM exercise WHERE account_id = $1`, accountID))
}

func (s *IntegrationTestSuite) TestOwnership_ForbiddenAndNotFound() {
	t := s.T()
	anaToken, _ := s.registerAndLogin("ana")
	bobToken, _ := s.registerAndLogin("bob")

	planID := s.createPlan(anaToken)
	path := "/workoutplans/" + strconv.Itoa(planID)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, anaToken, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, path, bobToken, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, path, bobToken, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/workoutplans/999999", bobToken, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, path, "", nil, nil))

	// the plan survived bob's delete attempt
	assert.Equal(t, 1, s.count(`SELECT count(*) FROM workout_plan WHERE id = $1`, planID))
}

func (s *IntegrationTestSuite) TestSessionSave_AllOrNothing() {
	t := s.T()
	token, accountID := s.registerAndLogin("ana")
	planID := s.createPlan(token)

	var exerciseID int
	require.NoError(t, s.pg.Pool.QueryRow(context.Background(),
		`SELECT id FROM exercise WHERE account_id = $1 ORDER BY id LIMIT 1`, accountID,
	).Scan(&exerciseID))

	path := fmt.Sprintf("/workoutplans/%d/sessions", planID)
	form := map[string]any{
		"date":    "2026-03-02",
		"hours":   "1",
		"minutes": "5",
		"seconds": "0",
		"entries": []map[string]any{
			{"exercise": exerciseID, "reps": 10, "sets": 3, "weight": "60"},
			{"exercise": exerciseID, "reps": 0, "sets": 3},
		},
	}
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(http.MethodPost, path, token, form, nil))
	assert.Equal(t, 0, s.count(`SELECT count(*) FROM workout_session WHERE plan_id = $1`, planID))
	assert.Equal(t, 0, s.count(`SELECT count(*) FROM exercise_in_session`))

	form["entries"] = []map[string]any{
		{"exercise": exerciseID, "reps": 10, "sets": 3, "weight": "60"},
		{"exercise": exerciseID, "reps": 8, "sets": 3, "duration": "90"},
	}
	var saved struct {
		ID              int   `json:"id"`
		DurationSeconds int64 `json:"durationSeconds"`
		Entries         []struct {
			ID int `json:"id"`
		} `json:"entries"`
	}
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, path, token, form, &saved))
	assert.Equal(t, int64(3900), saved.DurationSeconds)
	require.Len(t, saved.Entries, 2)

	// deleting one row and breaking the other leaves both rows in place
	form["entries"] = []map[string]any{
		{"id": saved.Entries[0].ID, "exercise": exerciseID, "reps": 10, "sets": 3, "delete": true},
		{"id": saved.Entries[1].ID, "exercise": exerciseID, "reps": -1, "sets": 3},
	}
	sessionPath := fmt.Sprintf("%s/%d", path, saved.ID)
	assert.Equal(t, http.StatusUnprocessableEntity, s.do(http.MethodPut, sessionPath, token, form, nil))
	assert.Equal(t, 2, s.count(`SELECT count(*) FROM exercise_in_session WHERE session_id = $1`, saved.ID))
}

func (s *IntegrationTestSuite) TestAccountDelete_Cascades() {
	t := s.T()
	token, accountID := s.registerAndLogin("ana")
	s.createPlan(token)

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/goals", token, map[string]string{
		"title":       "Bench 100",
		"description": "Bench press 100kg for one rep",
		"startDate":   "2026-01-01",
		"endDate":     "2026-12-31",
	}, nil))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/progress", token, map[string]string{
		"date":   "2026-02-01",
		"weight": "81.5",
	}, nil))

	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/account", token, nil, nil))

	for _, table := range []string{"profile", "exercise", "workout_plan", "goal", "progress_entry"} {
		assert.Equal(t, 0, s.count(`SELECT count(*) FROM `+table+` WHERE account_id = $1`, accountID), table)
	}
	assert.Equal(t, 0, s.count(`SELECT count(*) FROM workout_session`))

	// the token died with the account
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/account", token, nil, nil))
}
