package service

import (
	"testing"
	"time"

	"go_5s_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_weeklyService_SaveUpsertsCurrentWeek(t *testing.T) {
	db := setupTestDB(t)
	areas := seedAreas(t, db)
	svc := newTestServices(db, testNow)
	ctx := testContext("s")

	_, err := svc.progress.CompleteOnboarding(ctx, "s", areas["work"].ID)
	require.NoError(t, err)

	view, err := svc.weekly.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", view.WeekStartDate)
	assert.Nil(t, view.Current)
	assert.Empty(t, view.History)
	require.NotNil(t, view.Area)
	assert.Equal(t, "work", view.Area.Name)

	_, err = svc.weekly.Save(ctx, "s", &model.SaveWeeklyReviewRequest{WhatClearer: "lần 1"})
	require.NoError(t, err)
	view, err = svc.weekly.Save(ctx, "s", &model.SaveWeeklyReviewRequest{WhatClearer: "lần 2", WhatLighter: " nhẹ ", WhatAdjust: "ngủ sớm"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), countRows(t, db, &model.WeeklyReview{}, "session_id = ? AND week_start_date = ?", "s", "2024-01-08"))
	require.NotNil(t, view.Current)
	assert.Equal(t, "lần 2", view.Current.WhatClearer)
	assert.Equal(t, "nhẹ", view.Current.WhatLighter)

	// 翌週の日曜日 (2024-01-21) の週の開始は 2024-01-15
	nextWeek := newTestServices(db, time.Date(2024, 1, 21, 9, 0, 0, 0, time.UTC))
	view, err = nextWeek.weekly.Save(ctx, "s", &model.SaveWeeklyReviewRequest{WhatClearer: "tuần sau"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", view.WeekStartDate)

	assert.Equal(t, int64(2), countRows(t, db, &model.WeeklyReview{}, "session_id = ?", "s"))
	require.Len(t, view.History, 2)
	assert.Equal(t, "2024-01-15", view.History[0].WeekStartDate)
	assert.Equal(t, "2024-01-08", view.History[1].WeekStartDate)
}

func Test_weeklyService_HistoryLimit(t *testing.T) {
	db := setupTestDB(t)
	ctx := testContext("s")

	day := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		_, err := newTestServices(db, day.AddDate(0, 0, 7*i)).weekly.Save(ctx, "s", &model.SaveWeeklyReviewRequest{WhatAdjust: "x"})
		require.NoError(t, err)
	}

	view, err := newTestServices(db, day.AddDate(0, 0, 7*6)).weekly.Load(ctx, "s")
	require.NoError(t, err)
	require.Len(t, view.History, 5)
	assert.Equal(t, "2024-02-12", view.History[0].WeekStartDate)
	assert.Equal(t, view.WeekStartDate, view.Current.WeekStartDate)
	assert.Nil(t, view.Area)
}
