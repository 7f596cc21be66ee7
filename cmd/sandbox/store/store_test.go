package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-planner/models"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	cities := catalog.ListCities()
	require.NotEmpty(t, cities)
	for i := 1; i < len(cities); i++ {
		assert.LessOrEqual(t, cities[i-1].Order, cities[i].Order)
	}

	paris, ok := catalog.CityByName("paris")
	require.True(t, ok)

	questions, err := catalog.QuestionsForCity(paris.ID)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, q := range questions {
		ids[q.ID] = true
		assert.True(t, q.AppliesTo(paris.ID))
	}
	assert.True(t, ids["q-days"])
	assert.True(t, ids["q-nightlife"], "inactive questions are served")
	assert.True(t, ids["q-pace"], "common questions are served")
	assert.False(t, ids["q-rome-days"])
}

func TestQuestionsForUnknownCity(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	_, err = catalog.QuestionsForCity("nowhere")
	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestGuidesForCity(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	guides := catalog.GuidesForCity(" ROME ")
	names := make([]string, 0, len(guides))
	for _, g := range guides {
		names = append(names, g.ID)
	}
	assert.ElementsMatch(t, []string{"g-bruno", "g-chiara", "g-dario"}, names)
	assert.Empty(t, catalog.GuidesForCity("Atlantis"))
}

func TestParseCatalogValidation(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "duplicate city", yaml: "cities: [{id: a, name: A}, {id: a, name: B}]"},
		{name: "unknown city reference", yaml: "cities: [{id: a, name: A}]\nquestions: [{id: q, question: Q, city: {id: b}, status: active, type: text}]"},
		{name: "unknown question type", yaml: "questions: [{id: q, question: Q, status: active, type: slider}]"},
		{name: "broken yaml", yaml: "cities: [:"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(testCase.yaml))
			assert.Error(t, err)
		})
	}
}

func TestMemoryPlanStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlanStore()

	first, err := s.Insert(ctx, models.TravelPlan{UserID: "u1", CityName: "Paris", Itinerary: "a"})
	require.NoError(t, err)
	_, err = uuid.Parse(first.PlanID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), first.CreatedAt, time.Minute)

	second, err := s.Insert(ctx, models.TravelPlan{UserID: "u1", CityName: "Rome", Itinerary: "b"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, models.TravelPlan{UserID: "u2", CityName: "Rome", Itinerary: "c"})
	require.NoError(t, err)

	got, err := s.Get(ctx, first.PlanID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	list, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.PlanID, list[0].PlanID)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
