package repository

import (
	"context"
	"testing"
	"time"

	"go_5s_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリDBを作ります
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestAreaRepository_FindAllSortedBySortOrder(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormAreaRepository()

	require.NoError(t, repo.Upsert(ctx, db, &model.LifeArea{Name: "home", DisplayName: "Nhà cửa", SortOrder: 2}))
	require.NoError(t, repo.Upsert(ctx, db, &model.LifeArea{Name: "work", DisplayName: "Công việc", SortOrder: 1}))
	require.NoError(t, repo.Upsert(ctx, db, &model.LifeArea{Name: "health", DisplayName: "Sức khỏe", SortOrder: 3}))

	areas, err := repo.FindAll(ctx, db)
	require.NoError(t, err)
	require.Len(t, areas, 3)
	assert.Equal(t, "work", areas[0].Name)
	assert.Equal(t, "home", areas[1].Name)
	assert.Equal(t, "health", areas[2].Name)

	// 同じ name の再投入は更新になり、ID は保存済みの行のものになる
	workID := areas[0].ID
	again := &model.LifeArea{ID: uuid.New(), Name: "work", DisplayName: "Công việc 2", SortOrder: 9}
	require.NoError(t, repo.Upsert(ctx, db, again))
	assert.Equal(t, workID, again.ID)
	areas, err = repo.FindAll(ctx, db)
	require.NoError(t, err)
	require.Len(t, areas, 3)
	assert.Equal(t, "work", areas[2].Name)
	assert.Equal(t, workID, areas[2].ID)
	assert.Equal(t, "Công việc 2", areas[2].DisplayName)

	got, err := repo.FindByName(ctx, db, "home")
	require.NoError(t, err)
	byID, err := repo.FindByID(ctx, db, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "home", byID.Name)

	_, err = repo.FindByName(ctx, db, "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProgressRepository_UpsertKeepsOneRowPerSession(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormProgressRepository()

	_, err := repo.FindBySessionID(ctx, db, "session_1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	area1, area2 := uuid.New(), uuid.New()
	now := time.Now()
	state, err := model.StateOf(nil).CompleteOnboarding(area1)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, db, state.ToRow("session_1", now)))

	state, err = model.StateOf(nil).CompleteOnboarding(area2)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, db, state.ToRow("session_1", now.Add(time.Minute))))

	var count int64
	require.NoError(t, db.Model(&model.UserSession{}).Where("session_id = ?", "session_1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	row, err := repo.FindBySessionID(ctx, db, "session_1")
	require.NoError(t, err)
	require.NotNil(t, row.CurrentAreaID)
	assert.Equal(t, area2, *row.CurrentAreaID)
	assert.True(t, row.OnboardingCompleted)
	assert.Equal(t, model.StepFilter, row.CurrentStep)

	require.NoError(t, repo.UpdateStep(ctx, db, "session_1", model.StepOrganize, now))
	require.NoError(t, repo.UpdateArea(ctx, db, "session_1", area1, now))
	row, err = repo.FindBySessionID(ctx, db, "session_1")
	require.NoError(t, err)
	assert.Equal(t, area1, *row.CurrentAreaID)
	assert.Equal(t, model.StepOrganize, row.CurrentStep)

	assert.ErrorIs(t, repo.UpdateArea(ctx, db, "session_unknown", area1, now), model.ErrNotFound)
}

func TestDailyRepository_InsertMissingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormDailyRepository()
	areaID := uuid.New()

	newRows := func() []*model.DailyAction {
		rows := make([]*model.DailyAction, 0, 3)
		for i, text := range []string{"a", "b", "c"} {
			rows = append(rows, &model.DailyAction{
				ID: uuid.New(), SessionID: "s", AreaID: areaID, ActionDate: "2024-01-10",
				Slot: i, ActionText: text, Status: model.StatusPending,
			})
		}
		return rows
	}

	n, err := repo.InsertMissing(ctx, db, newRows())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.InsertMissing(ctx, db, newRows())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	rows, err := repo.FindForDate(ctx, db, "s", areaID, "2024-01-10")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].ActionText)
	assert.Equal(t, "c", rows[2].ActionText)

	updated, err := repo.UpdateStatus(ctx, db, "s", rows[1].ID, model.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, updated.Status)

	// 他のセッションからは更新できない
	_, err = repo.UpdateStatus(ctx, db, "other", rows[1].ID, model.StatusSkipped)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestWeeklyRepository_UpsertOneRowPerWeek(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormWeeklyRepository()

	original := &model.WeeklyReview{ID: uuid.New(), SessionID: "s", WeekStartDate: "2024-01-08", WhatClearer: "v1"}
	require.NoError(t, repo.Upsert(ctx, db, original))
	updated := &model.WeeklyReview{ID: uuid.New(), SessionID: "s", WeekStartDate: "2024-01-08", WhatClearer: "v2"}
	require.NoError(t, repo.Upsert(ctx, db, updated))
	assert.Equal(t, original.ID, updated.ID, "更新後は保存済みの行を指す")

	current, err := repo.FindByWeek(ctx, db, "s", "2024-01-08")
	require.NoError(t, err)
	assert.Equal(t, "v2", current.WhatClearer)
	assert.Equal(t, original.ID, current.ID)

	require.NoError(t, repo.Upsert(ctx, db, &model.WeeklyReview{ID: uuid.New(), SessionID: "s", WeekStartDate: "2024-01-15", WhatClearer: "next"}))

	recent, err := repo.FindRecent(ctx, db, "s", 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-01-15", recent[0].WeekStartDate)
	assert.Equal(t, "2024-01-08", recent[1].WeekStartDate)

	// 直接の二重挿入は一意制約で ErrConflict になる
	err = insert(ctx, db, &model.WeeklyReview{ID: uuid.New(), SessionID: "s", WeekStartDate: "2024-01-15"})
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestStageRepository_ScopedCRUD(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormStageRepository[model.FilterItem]("created_at")
	areaID, otherArea := uuid.New(), uuid.New()

	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		item := &model.FilterItem{ItemText: text}
		require.True(t, item.Prepare("s", areaID, ""))
		item.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, db, item))
	}
	stale := &model.FilterItem{ItemText: "old area"}
	require.True(t, stale.Prepare("s", otherArea, ""))
	require.NoError(t, repo.Create(ctx, db, stale))

	items, err := repo.List(ctx, db, "s", areaID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].ItemText)
	assert.Equal(t, "first", items[2].ItemText)

	updated, err := repo.Update(ctx, db, "s", items[0].ID, map[string]interface{}{"should_keep": false})
	require.NoError(t, err)
	assert.False(t, updated.ShouldKeep)

	assert.ErrorIs(t, repo.Delete(ctx, db, "other", items[0].ID), model.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, db, "s", items[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, db, "s", items[0].ID), model.ErrNotFound)

	items, err = repo.List(ctx, db, "s", otherArea)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "old area", items[0].ItemText)
}

func TestStageRepository_CleanReflectionsOrderedByDate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormStageRepository[model.CleanReflection]("reflection_date")
	areaID := uuid.New()

	for _, day := range []string{"2024-01-09", "2024-01-11", "2024-01-10"} {
		r := &model.CleanReflection{ReflectionText: day}
		require.True(t, r.Prepare("s", areaID, day))
		require.NoError(t, repo.Create(ctx, db, r))
	}

	rows, err := repo.List(ctx, db, "s", areaID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-11", rows[0].ReflectionDate)
	assert.Equal(t, "2024-01-09", rows[2].ReflectionDate)
}

func TestQuery_RejectsUnfilteredWrites(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	assert.ErrorIs(t, update[model.FilterItem](ctx, db, Query{}, map[string]interface{}{"should_keep": false}), model.ErrInvalidInput)
	assert.ErrorIs(t, remove[model.FilterItem](ctx, db, Query{}), model.ErrInvalidInput)
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormAreaRepository()

	require.NoError(t, SeedCatalog(ctx, db, repo, DefaultCatalog()))
	require.NoError(t, SeedCatalog(ctx, db, repo, DefaultCatalog()))

	areas, err := repo.FindAll(ctx, db)
	require.NoError(t, err)
	require.Len(t, areas, len(DefaultCatalog()))
	for i, a := range areas {
		assert.Equal(t, i+1, a.SortOrder)
	}
}
