package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go_5s_keep/internal/clock"
	"go_5s_keep/internal/config"
	"go_5s_keep/internal/middleware"
	"go_5s_keep/internal/model"
	"go_5s_keep/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2024-01-10 は水曜日 (週の開始は 2024-01-08)
var testNow = time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := &config.Config{App: config.AppConfig{Timezone: "UTC"}}
	cfg.ApplyDefaults()
	return cfg
}

// testContext はセッションIDと捨てるロガーを設定したコンテキスト
func testContext(sessionID string) context.Context {
	ctx := middleware.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return middleware.WithSessionID(ctx, sessionID)
}

// setupTestDB はテストごとに独立したインメモリDBを作ります
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect database for service testing")
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedAreas はカタログを sort_order がバラバラの順で投入し、name -> 領域 を返します
func seedAreas(t *testing.T, db *gorm.DB) map[string]*model.LifeArea {
	t.Helper()
	repo := repository.NewGormAreaRepository()
	seed := []*model.LifeArea{
		{Name: "health", DisplayName: "Sức khỏe", Emoji: "💪", SortOrder: 3},
		{Name: "work", DisplayName: "Công việc", Emoji: "💼", SortOrder: 1},
		{Name: "home", DisplayName: "Nhà cửa", Emoji: "🏠", SortOrder: 2},
	}
	out := make(map[string]*model.LifeArea, len(seed))
	for _, a := range seed {
		require.NoError(t, repo.Upsert(context.Background(), db, a))
		out[a.Name] = a
	}
	return out
}

// testServices は実DB (sqlite) に対して組み立てたサービス一式
type testServices struct {
	db        *gorm.DB
	cfg       *config.Config
	areas     AreaService
	progress  ProgressService
	daily     DailyService
	dashboard DashboardService
	weekly    WeeklyService
	stages    *StageServices
}

func newTestServices(db *gorm.DB, now time.Time) *testServices {
	cfg := testConfig()
	cal := NewCalendar(clock.Fixed(now), cfg)

	areaRepo := repository.NewGormAreaRepository()
	progressRepo := repository.NewGormProgressRepository()

	daily := NewDailyService(db, repository.NewGormDailyRepository(), cfg)
	dashboard := NewDashboardService(db, progressRepo, areaRepo, daily, cal)
	return &testServices{
		db:        db,
		cfg:       cfg,
		areas:     NewAreaService(db, areaRepo),
		progress:  NewProgressService(db, progressRepo, areaRepo, daily, dashboard, cal),
		daily:     daily,
		dashboard: dashboard,
		weekly:    NewWeeklyService(db, repository.NewGormWeeklyRepository(), progressRepo, areaRepo, cfg, cal),
		stages:    NewStageServices(db, areaRepo, cal),
	}
}

func countRows(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}
