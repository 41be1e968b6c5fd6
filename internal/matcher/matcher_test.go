package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/models"
	"insurance-advisor/internal/taxonomy"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	store := taxonomy.NewStore(taxonomy.DefaultCatalog())
	return New(store, logger.NewTestLogger(t))
}

func basicTrip() *models.TripAttributes {
	return &models.TripAttributes{
		Destination:   "Japan",
		DepartureDate: "2026-09-01",
		ReturnDate:    "2026-09-06",
		TravelerCount: 1,
	}
}

func TestMatchReturnsEveryProduct(t *testing.T) {
	m := newTestMatcher(t)

	matches, err := m.Match(nil, basicTrip())

	require.NoError(t, err)
	require.Len(t, matches, 3)

	seen := map[string]bool{}
	for _, match := range matches {
		seen[match.ProductCode] = true
		assert.GreaterOrEqual(t, match.EligibilityScore, 0.0)
		assert.LessOrEqual(t, match.EligibilityScore, 100.0)
		assert.NotEmpty(t, match.Reasons)
	}
	assert.Len(t, seen, 3)
}

func TestMatchSortsHighestFirst(t *testing.T) {
	m := newTestMatcher(t)

	matches, err := m.Match(&models.TravelerProfile{Age: 30}, basicTrip())

	require.NoError(t, err)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].EligibilityScore, matches[i].EligibilityScore)
	}
}

func TestMatchSeniorTravelerFavorsPreExProduct(t *testing.T) {
	m := newTestMatcher(t)

	profile := &models.TravelerProfile{Age: 70, MedicalConditions: []string{"none"}}
	trip := &models.TripAttributes{
		Destination:   "Switzerland",
		DepartureDate: "2026-09-01",
		ReturnDate:    "2026-09-11",
		TravelerCount: 1,
	}

	matches, err := m.Match(profile, trip)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// The pre-ex product wins on the senior bonus; the budget product takes
	// the age-ineligibility penalty and loses its healthy-traveler bonus.
	assert.Equal(t, "PROD-C", matches[0].ProductCode)
	assert.Equal(t, 100.0, matches[0].EligibilityScore)

	byCode := map[string]models.ScoredMatch{}
	for _, match := range matches {
		byCode[match.ProductCode] = match
	}
	assert.Equal(t, 90.0, byCode["PROD-B"].EligibilityScore)
	assert.Equal(t, 45.0, byCode["PROD-A"].EligibilityScore)
}

func TestMatchHealthyYoungTravelerFavorsBudget(t *testing.T) {
	m := newTestMatcher(t)

	profile := &models.TravelerProfile{Age: 28}
	matches, err := m.Match(profile, basicTrip())

	require.NoError(t, err)
	assert.Equal(t, "PROD-A", matches[0].ProductCode)
	assert.Equal(t, 98.0, matches[0].EligibilityScore)
}

func TestMatchMedicalConditionsScoring(t *testing.T) {
	m := newTestMatcher(t)

	profile := &models.TravelerProfile{
		Age:               45,
		MedicalConditions: []string{"diabetes"},
	}

	matches, err := m.Match(profile, basicTrip())
	require.NoError(t, err)

	byCode := map[string]models.ScoredMatch{}
	for _, match := range matches {
		byCode[match.ProductCode] = match
	}

	assert.Equal(t, "PROD-C", matches[0].ProductCode)
	assert.Contains(t, byCode["PROD-C"].Benefits, "Pre-existing conditions covered")
	assert.Contains(t, byCode["PROD-A"].Reasons, "Pre-existing conditions may not be covered")
	assert.Greater(t, byCode["PROD-C"].EligibilityScore, byCode["PROD-A"].EligibilityScore)
}

func TestMatchAdventureInterests(t *testing.T) {
	m := newTestMatcher(t)

	profile := &models.TravelerProfile{
		Age:       30,
		Interests: []string{"Scuba Diving"},
	}

	matches, err := m.Match(profile, basicTrip())
	require.NoError(t, err)

	byCode := map[string]models.ScoredMatch{}
	for _, match := range matches {
		byCode[match.ProductCode] = match
	}

	// Budget product excludes adventure cover, the other two include it.
	assert.Contains(t, byCode["PROD-A"].Reasons, "Adventure activities may not be covered")
	assert.Contains(t, byCode["PROD-B"].Reasons, "Adventure sports coverage available")
	assert.Greater(t, byCode["PROD-B"].EligibilityScore, byCode["PROD-A"].EligibilityScore)
}

func TestMatchDurationLimits(t *testing.T) {
	m := newTestMatcher(t)

	// 60 days exceeds the budget product's 30-day cap but not the others.
	trip := &models.TripAttributes{
		Destination:   "Japan",
		DepartureDate: "2026-06-01",
		ReturnDate:    "2026-07-31",
		TravelerCount: 1,
	}

	matches, err := m.Match(&models.TravelerProfile{Age: 30}, trip)
	require.NoError(t, err)

	byCode := map[string]models.ScoredMatch{}
	for _, match := range matches {
		byCode[match.ProductCode] = match
	}

	assert.Contains(t, byCode["PROD-A"].Reasons, "Trip duration may exceed policy limits")
	assert.Contains(t, byCode["PROD-B"].Reasons, "Trip duration (60 days) is within limits")
}

func TestMatchMalformedTrip(t *testing.T) {
	m := newTestMatcher(t)

	tests := []struct {
		name string
		trip *models.TripAttributes
	}{
		{"nil trip", nil},
		{"return before departure", &models.TripAttributes{
			Destination:   "Japan",
			DepartureDate: "2026-09-10",
			ReturnDate:    "2026-09-01",
		}},
		{"unparseable date", &models.TripAttributes{
			Destination:   "Japan",
			DepartureDate: "next tuesday",
			ReturnDate:    "2026-09-01",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Match(nil, tt.trip)
			var malformed *models.MalformedTripError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestMatchMissingDatesArePermissive(t *testing.T) {
	m := newTestMatcher(t)

	matches, err := m.Match(&models.TravelerProfile{Age: 30}, &models.TripAttributes{
		Destination:   "Japan",
		TravelerCount: 1,
	})

	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestMatchDeterministic(t *testing.T) {
	m := newTestMatcher(t)
	profile := &models.TravelerProfile{
		Age:               52,
		MedicalConditions: []string{"hypertension"},
		Interests:         []string{"hiking"},
	}

	first, err := m.Match(profile, basicTrip())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := m.Match(profile, basicTrip())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
