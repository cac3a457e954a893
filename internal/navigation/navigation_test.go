package navigation

import (
	"testing"

	"go_5s_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var protectedRoutes = []string{
	"/dashboard",
	"/daily",
	"/daily/" + uuid.NewString(),
	"/review",
	"/progress/area",
	"/progress/step",
	"/areas/work/s1",
	"/areas/work/s2",
	"/areas/home/s3",
	"/areas/home/s4",
	"/areas/health/s5/" + uuid.NewString(),
}

func TestResolve_NoProgressRowAlwaysOnboarding(t *testing.T) {
	state := model.StateOf(nil)
	for _, p := range protectedRoutes {
		assert.Equal(t, RouteOnboarding, Resolve(state, p), p)
	}
	assert.Equal(t, RouteOnboarding, Resolve(state, "/"))
	assert.Equal(t, RouteOnboarding, Resolve(state, "/onboarding"))
}

func TestResolve_IncompleteRowAlwaysOnboarding(t *testing.T) {
	areaID := uuid.New()
	state := model.StateOf(&model.UserSession{SessionID: "s", CurrentAreaID: &areaID, CurrentStep: model.StepClean})
	for _, p := range protectedRoutes {
		assert.Equal(t, RouteOnboarding, Resolve(state, p), p)
	}
}

func TestResolve_Active(t *testing.T) {
	areaID := uuid.New()
	state := model.StateOf(&model.UserSession{SessionID: "s", CurrentAreaID: &areaID, CurrentStep: model.StepFilter, OnboardingCompleted: true})

	assert.Equal(t, RouteDashboard, Resolve(state, "/"))
	assert.Equal(t, RouteOnboarding, Resolve(state, "/onboarding"))
	for _, p := range protectedRoutes {
		assert.Equal(t, Route(p), Resolve(state, p), p)
	}
}

func TestIsProtected(t *testing.T) {
	assert.False(t, IsProtected("/areas"))
	assert.False(t, IsProtected("/areas/work"))
	assert.False(t, IsProtected("/areas/work/s9"))
	assert.False(t, IsProtected("/onboarding"))
	assert.False(t, IsProtected("/progress"))
	assert.False(t, IsProtected("/dailyx"))
	assert.True(t, IsProtected("/areas/work/s1"))
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "/dashboard", Trim("/api/v1", "/api/v1/dashboard"))
	assert.Equal(t, "/", Trim("/api/v1", "/api/v1"))
	assert.Equal(t, "/", Trim("/api/v1/", "/api/v1/"))
	assert.Equal(t, "/areas/work/s1", Trim("", "/areas/work/s1/"))
}

func TestStepLinks(t *testing.T) {
	assert.Nil(t, StepLinks(nil))

	links := StepLinks(&model.LifeArea{Name: "work"})
	if assert.Len(t, links, 5) {
		assert.Equal(t, "/areas/work/s1", links[0].Path)
		assert.Equal(t, model.StepSustain, links[4].Step)
		assert.Equal(t, "Tâm thế", links[4].Title)
	}
}

func TestAreaEntries(t *testing.T) {
	a := &model.LifeArea{ID: uuid.New(), Name: "work"}
	b := &model.LifeArea{ID: uuid.New(), Name: "home"}

	entries := AreaEntries([]*model.LifeArea{a, b}, b)
	assert.False(t, entries[0].Current)
	assert.True(t, entries[1].Current)

	entries = AreaEntries([]*model.LifeArea{a, b}, nil)
	assert.False(t, entries[0].Current)
	assert.False(t, entries[1].Current)
}
