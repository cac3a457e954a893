//go:build integration

// api_integration_test.go
package handlers_test

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"go_5s_keep/internal/clock"
	"go_5s_keep/internal/config"
	"go_5s_keep/internal/handlers"
	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/repository"
	"go_5s_keep/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB
var testLogger *slog.Logger

const dbContainerName = "test_postgres_five_s_api"

// 2024-01-10 (水) 10:00 UTC
var integrationNow = time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(testLogger)

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       dbContainerName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=five_s",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}

	hostMappedPort := resource.GetPort("5432/tcp")
	if hostMappedPort == "" {
		if pErr := pool.Purge(resource); pErr != nil {
			log.Printf("Warning: Could not purge resource after failing to get mapped port: %s", pErr)
		}
		log.Fatalf("Could not get mapped port for 5432/tcp from container %s", dbContainerName)
	}

	// devcontainer からは TEST_DB_HOST=host.docker.internal を指定する
	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbCfg := config.DatabaseConfig{
		Driver:      "postgres",
		URL:         fmt.Sprintf("postgres://user:secret@%s:%s/five_s?sslmode=disable", dbHost, hostMappedPort),
		AutoMigrate: true,
	}
	testLogger.Info("PostgreSQL container started",
		slog.String("container_name", dbContainerName),
		slog.String("host", dbHost),
		slog.String("port", hostMappedPort),
	)

	if err = pool.Retry(func() error {
		var errRetry error
		testDB, errRetry = repository.NewDB(dbCfg, testLogger)
		if errRetry != nil {
			testLogger.Warn("Retry: DB connection attempt failed.", slog.Any("error", errRetry))
		}
		return errRetry
	}); err != nil {
		if pErr := pool.Purge(resource); pErr != nil {
			log.Printf("Warning: Could not purge resource after connection retry failed: %s", pErr)
		}
		log.Fatalf("Could not connect to PostgreSQL container after retries: %s", err)
	}
	testLogger.Info("Connected and migrated test database.")

	code := m.Run()
	testLogger.Info("Tests finished.", slog.Int("exit_code", code))

	if err := pool.Purge(resource); err != nil {
		log.Fatalf("Could not purge PostgreSQL resource: %s", err)
	}
	os.Exit(code)
}

type integrationApp struct {
	server *httptest.Server
	areas  map[string]*model.LifeArea
	daily  service.DailyService
}

// setupIntegrationApp はテーブルを空にしてカタログを投入し、実DBに対する全スタックを組み立てます
func setupIntegrationApp(t *testing.T) *integrationApp {
	t.Helper()
	require.NotNil(t, testDB, "TestDB should have been initialized in TestMain")
	models := repository.AllModels()
	for i := len(models) - 1; i >= 0; i-- {
		clearTable(t, testDB, models[i])
	}

	areaRepo := repository.NewGormAreaRepository()
	areas := make(map[string]*model.LifeArea)
	for i, name := range []string{"work", "home", "health"} {
		a := &model.LifeArea{Name: name, DisplayName: name, SortOrder: i + 1}
		require.NoError(t, areaRepo.Upsert(context.Background(), testDB, a))
		areas[name] = a
	}

	cfg := &config.Config{App: config.AppConfig{Timezone: "UTC"}}
	cfg.ApplyDefaults()
	cal := service.NewCalendar(clock.Fixed(integrationNow), cfg)
	progressRepo := repository.NewGormProgressRepository()
	daily := service.NewDailyService(testDB, repository.NewGormDailyRepository(), cfg)
	dashboard := service.NewDashboardService(testDB, progressRepo, areaRepo, daily, cal)
	progress := service.NewProgressService(testDB, progressRepo, areaRepo, daily, dashboard, cal)

	h := handlers.NewHandlers(handlers.Services{
		Area:      service.NewAreaService(testDB, areaRepo),
		Progress:  progress,
		Daily:     daily,
		Dashboard: dashboard,
		Weekly:    service.NewWeeklyService(testDB, repository.NewGormWeeklyRepository(), progressRepo, areaRepo, cfg, cal),
		Stages:    service.NewStageServices(testDB, areaRepo, cal),
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(testLogger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(5 * time.Second))
	h.Mount(r, progress)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return &integrationApp{server: server, areas: areas, daily: daily}
}

func TestIntegration_OnboardingToDailyProgress(t *testing.T) {
	app := setupIntegrationApp(t)
	sid := "session_" + uuid.NewString()
	h := sessionHeaders(sid)

	resp, _ := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/daily", Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusSeeOther})
	assert.Equal(t, "/api/v1/onboarding", resp.Header.Get("Location"))

	_, body := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/onboarding", Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	onboarding := decodeBody[model.OnboardingView](t, body)
	require.Len(t, onboarding.Areas, 3)
	assert.Equal(t, "work", onboarding.Areas[0].Name)

	_, body = sendRequest(t, app.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/onboarding", Body: map[string]string{"area_id": app.areas["home"].ID.String()}, Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	dash := decodeBody[model.DashboardView](t, body)
	require.Len(t, dash.Actions, 3)
	for _, a := range dash.Actions {
		assert.Equal(t, model.StatusPending, a.Status)
	}
	assert.Equal(t, model.DailyProgress{Completed: 0, Total: 3}, dash.Counter)

	sendRequest(t, app.server, httpRequestDetails{Method: http.MethodPatch, Path: "/api/v1/daily/" + dash.Actions[0].ID.String(), Body: map[string]string{"status": "done"}, Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	sendRequest(t, app.server, httpRequestDetails{Method: http.MethodPatch, Path: "/api/v1/daily/" + dash.Actions[1].ID.String(), Body: map[string]string{"status": "skipped"}, Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})

	_, body = sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/daily", Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	daily := decodeBody[model.DashboardView](t, body)
	assert.Equal(t, model.DailyProgress{Completed: 1, Total: 3}, daily.Counter)

	var n int64
	require.NoError(t, testDB.Model(&model.DailyAction{}).Where("session_id = ?", sid).Count(&n).Error)
	assert.EqualValues(t, 3, n)
}

func TestIntegration_WeeklyReviewUpsert(t *testing.T) {
	app := setupIntegrationApp(t)
	sid := "session_" + uuid.NewString()
	h := sessionHeaders(sid)

	sendRequest(t, app.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/onboarding", Body: map[string]string{"area_id": app.areas["work"].ID.String()}, Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})

	for _, text := range []string{"lần một", "lần hai"} {
		sendRequest(t, app.server, httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/review", Body: map[string]string{"what_clearer": text}, Headers: h},
			httpResponseExpectations{ExpectedCode: http.StatusOK})
	}

	_, body := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/review", Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	view := decodeBody[model.WeeklyReviewView](t, body)
	assert.Equal(t, "2024-01-08", view.WeekStartDate)
	require.NotNil(t, view.Current)
	assert.Equal(t, "lần hai", view.Current.WhatClearer)

	var n int64
	require.NoError(t, testDB.Model(&model.WeeklyReview{}).Where("session_id = ?", sid).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestIntegration_ConcurrentEnsureActions(t *testing.T) {
	app := setupIntegrationApp(t)
	sid := "session_" + uuid.NewString()
	ctx := middleware.WithLogger(context.Background(), testLogger)
	areaID := app.areas["health"].ID

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := app.daily.EnsureActions(ctx, sid, areaID, "2024-01-10")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var n int64
	require.NoError(t, testDB.Model(&model.DailyAction{}).Where("session_id = ? AND area_id = ?", sid, areaID).Count(&n).Error)
	assert.EqualValues(t, 3, n)
}

func TestIntegration_StageItemsScopedToArea(t *testing.T) {
	app := setupIntegrationApp(t)
	sid := "session_" + uuid.NewString()
	h := sessionHeaders(sid)

	sendRequest(t, app.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/onboarding", Body: map[string]string{"area_id": app.areas["work"].ID.String()}, Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})

	sendRequest(t, app.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/areas/work/s1", Body: map[string]string{"item_text": "họp thừa"}, Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusCreated})
	sendRequest(t, app.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/areas/work/s1", Body: map[string]string{"item_text": "   "}, Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusNoContent})

	_, body := sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/areas/home/s1", Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.Empty(t, decodeBody[model.StageView[model.FilterItem]](t, body).Items)

	_, body = sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/areas/work/s1", Headers: h},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	work := decodeBody[model.StageView[model.FilterItem]](t, body)
	require.Len(t, work.Items, 1)
	assert.Equal(t, "họp thừa", work.Items[0].ItemText)

	// 他のセッションからは見えない
	_, body = sendRequest(t, app.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/areas/work/s1", Headers: sessionHeaders("other")},
		httpResponseExpectations{ExpectedCode: http.StatusSeeOther})
	assert.Contains(t, string(body), "/onboarding")
}
