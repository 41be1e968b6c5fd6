package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/models"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	return New(logger.NewTestLogger(t))
}

func TestWeightsSumToOne(t *testing.T) {
	sum := weightPriceValue + weightCoverageAdequacy + weightRiskMatch + weightUserPreference + weightReputation
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRankPriceValueRelativeToCandidateSet(t *testing.T) {
	s := newTestScorer(t)

	quotes := []models.Quote{
		{ProductCode: "CHEAP", PlanName: "Plan A", Price: 40, Currency: "SGD"},
		{ProductCode: "DEAR", PlanName: "Plan B", Price: 100, Currency: "SGD"},
	}

	ranked := s.Rank(quotes, &models.TripAttributes{Destination: "Japan"}, nil, nil)
	require.Len(t, ranked, 2)

	byCode := map[string]models.RankedQuote{}
	for _, r := range ranked {
		byCode[r.Quote.ProductCode] = r
	}

	// Cheapest is within 10% of the minimum: full boost to 100. The 100
	// quote lands exactly on the formula value.
	assert.Equal(t, 100.0, byCode["CHEAP"].FactorScores[FactorPriceValue])
	assert.Equal(t, 50.0, byCode["DEAR"].FactorScores[FactorPriceValue])
}

func TestRankPriceValueEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		quotes   []models.Quote
		code     string
		expected float64
	}{
		{
			name: "all prices equal",
			quotes: []models.Quote{
				{ProductCode: "X", Price: 55},
				{ProductCode: "Y", Price: 55},
			},
			code:     "X",
			expected: 100,
		},
		{
			name: "unknown price is neutral",
			quotes: []models.Quote{
				{ProductCode: "X", Price: 0},
				{ProductCode: "Y", Price: 80},
			},
			code:     "X",
			expected: 50,
		},
	}

	s := newTestScorer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := s.Rank(tt.quotes, nil, nil, nil)
			for _, r := range ranked {
				if r.Quote.ProductCode == tt.code {
					assert.Equal(t, tt.expected, r.FactorScores[FactorPriceValue])
					return
				}
			}
			t.Fatalf("quote %s not found", tt.code)
		})
	}
}

func TestRankRiskMatchTiers(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name     string
		category models.RiskCategory
		medical  float64
		expected float64
	}{
		{"high risk comprehensive", models.RiskHigh, 160000, 100},
		{"high risk adequate", models.RiskHigh, 100000, 85},
		{"high risk thin", models.RiskHigh, 50000, 60},
		{"medium risk strong", models.RiskMedium, 100000, 90},
		{"medium risk adequate", models.RiskMedium, 50000, 75},
		{"medium risk thin", models.RiskMedium, 20000, 60},
		{"low risk sufficient", models.RiskLow, 50000, 90},
		{"low risk basic", models.RiskLow, 10000, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := models.Quote{
				ProductCode: "X",
				Price:       50,
				Coverage:    map[string]float64{models.CoverageMedical: tt.medical},
			}
			risk := &models.RiskAssessment{RiskCategory: tt.category}

			ranked := s.Rank([]models.Quote{quote}, nil, nil, risk)
			require.Len(t, ranked, 1)
			assert.Equal(t, tt.expected, ranked[0].FactorScores[FactorRiskMatch])
		})
	}
}

func TestRankNoRiskAssessmentIsNeutral(t *testing.T) {
	s := newTestScorer(t)

	ranked := s.Rank([]models.Quote{{ProductCode: "X", Price: 50}}, nil, nil, nil)

	require.Len(t, ranked, 1)
	assert.Equal(t, 70.0, ranked[0].FactorScores[FactorRiskMatch])
}

func TestRankCoverageAdequacy(t *testing.T) {
	s := newTestScorer(t)

	risk := &models.RiskAssessment{
		RiskCategory: models.RiskMedium,
		RecommendedCoverage: models.RecommendedCoverage{
			MedicalMinimum: 50000,
		},
	}
	trip := &models.TripAttributes{Destination: "Japan", TripCost: 5000}

	quote := models.Quote{
		ProductCode: "X",
		Price:       60,
		Coverage: map[string]float64{
			models.CoverageMedical:          200000,
			models.CoverageTripCancellation: 10000,
			models.CoverageBaggage:          5000,
		},
	}

	ranked := s.Rank([]models.Quote{quote}, trip, nil, risk)
	require.Len(t, ranked, 1)
	// 60 base + 20 medical + 10 cancellation + 10 baggage.
	assert.Equal(t, 100.0, ranked[0].FactorScores[FactorCoverageAdequacy])
}

func TestCoverageAdequacyMonotonicInMedicalCoverage(t *testing.T) {
	risk := &models.RiskAssessment{
		RiskCategory: models.RiskMedium,
		RecommendedCoverage: models.RecommendedCoverage{
			MedicalMinimum: 50000,
		},
	}
	trip := &models.TripAttributes{Destination: "Japan"}

	// Sweeps across the 0.7x (35000) and 1.0x (50000) tier boundaries.
	medicalLevels := []float64{
		0, 10000, 34999, 35000, 40000, 49999, 50000, 60000, 100000, 200000,
	}

	prev := -1.0
	for _, medical := range medicalLevels {
		quote := models.Quote{
			ProductCode: "X",
			Coverage:    map[string]float64{models.CoverageMedical: medical},
		}
		score, _ := scoreCoverageAdequacy(quote, trip, risk)
		assert.GreaterOrEqual(t, score, prev, "medical %.0f", medical)
		prev = score
	}
}

func TestRankUserPreference(t *testing.T) {
	s := newTestScorer(t)

	profile := &models.TravelerProfile{
		Age: 40,
		TravelHistory: []models.PastTrip{
			{Destination: "Japan", PolicyUsed: "TravelEasy Policy QTD032212"},
		},
		Preferences: models.Preferences{
			PreferredCoverageTier: models.TierComprehensive,
			PriceSensitivity:      models.SensitivityLow,
		},
	}

	quote := models.Quote{
		ProductCode: "X",
		PlanName:    "TravelEasy Policy QTD032212",
		Price:       85,
		Coverage:    map[string]float64{models.CoverageMedical: 200000},
	}

	ranked := s.Rank([]models.Quote{quote}, nil, profile, nil)
	require.Len(t, ranked, 1)
	// 70 base + 20 familiarity + 10 tier match + 5 price alignment.
	assert.Equal(t, 100.0, ranked[0].FactorScores[FactorUserPreference])
}

func TestRankUserPreferenceWithoutProfile(t *testing.T) {
	s := newTestScorer(t)

	ranked := s.Rank([]models.Quote{{ProductCode: "X", Price: 50}}, nil, nil, nil)

	require.Len(t, ranked, 1)
	assert.Equal(t, 70.0, ranked[0].FactorScores[FactorUserPreference])
}

func TestRankReputation(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name     string
		quote    models.Quote
		expected float64
	}{
		{"marketplace", models.Quote{PlanName: "Anything", Source: models.SourceMarketplace}, 85},
		{"msig brand", models.Quote{PlanName: "MSIG TravelEasy Premier"}, 95},
		{"traveleasy brand", models.Quote{PlanName: "TravelEasy Policy"}, 90},
		{"scootsurance brand", models.Quote{PlanName: "Scootsurance QSR022206"}, 85},
		{"unknown brand", models.Quote{PlanName: "Acme Travel Cover"}, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := s.Rank([]models.Quote{tt.quote}, nil, nil, nil)
			require.Len(t, ranked, 1)
			assert.Equal(t, tt.expected, ranked[0].FactorScores[FactorReputation])
		})
	}
}

func TestRankAssignsRanksAfterSorting(t *testing.T) {
	s := newTestScorer(t)

	quotes := []models.Quote{
		{ProductCode: "PRICY", PlanName: "Plan A", Price: 300, Coverage: map[string]float64{models.CoverageMedical: 50000}},
		{ProductCode: "VALUE", PlanName: "TravelEasy", Price: 60, Coverage: map[string]float64{models.CoverageMedical: 200000, models.CoverageBaggage: 5000}},
	}

	ranked := s.Rank(quotes, &models.TripAttributes{Destination: "Japan"}, nil, nil)
	require.Len(t, ranked, 2)

	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "VALUE", ranked[0].Quote.ProductCode)
	assert.GreaterOrEqual(t, ranked[0].TotalScore, ranked[1].TotalScore)
}

func TestRankStableOnEqualTotals(t *testing.T) {
	s := newTestScorer(t)

	// Identical quotes score identically; input order must survive.
	quotes := []models.Quote{
		{ProductCode: "FIRST", PlanName: "Same Plan", Price: 50},
		{ProductCode: "SECOND", PlanName: "Same Plan", Price: 50},
	}

	ranked := s.Rank(quotes, nil, nil, nil)
	require.Len(t, ranked, 2)
	assert.Equal(t, "FIRST", ranked[0].Quote.ProductCode)
	assert.Equal(t, "SECOND", ranked[1].Quote.ProductCode)
}

func TestRankEmptyInput(t *testing.T) {
	s := newTestScorer(t)

	assert.Empty(t, s.Rank(nil, nil, nil, nil))
	assert.Empty(t, s.Rank([]models.Quote{}, nil, nil, nil))
}

func TestRankExplanationCoversEveryFactor(t *testing.T) {
	s := newTestScorer(t)

	ranked := s.Rank([]models.Quote{{ProductCode: "X", PlanName: "TravelEasy", Price: 60}}, nil, nil, nil)
	require.Len(t, ranked, 1)

	explanation := ranked[0].Explanation
	require.Len(t, explanation, 5)

	var weightSum float64
	for _, factor := range explanation {
		weightSum += factor.Weight
		assert.NotEmpty(t, factor.Reason)
		assert.Equal(t, ranked[0].FactorScores[factor.Factor], factor.Score)
		assert.GreaterOrEqual(t, factor.Score, 0.0)
		assert.LessOrEqual(t, factor.Score, 100.0)
	}
	assert.InDelta(t, 1.0, weightSum, 1e-9)
}

func TestRankTotalScoreIsWeightedSum(t *testing.T) {
	s := newTestScorer(t)

	ranked := s.Rank([]models.Quote{{ProductCode: "X", PlanName: "MSIG Plan", Price: 45}}, nil, nil, nil)
	require.Len(t, ranked, 1)

	var expected float64
	for _, factor := range ranked[0].Explanation {
		expected += factor.Score * factor.Weight
	}
	assert.InDelta(t, expected, ranked[0].TotalScore, 0.005)
}

func TestRankDeterministic(t *testing.T) {
	s := newTestScorer(t)

	quotes := []models.Quote{
		{ProductCode: "A", PlanName: "Scootsurance", Price: 40, Coverage: map[string]float64{models.CoverageMedical: 50000}},
		{ProductCode: "B", PlanName: "TravelEasy", Price: 70, Coverage: map[string]float64{models.CoverageMedical: 200000}},
	}
	trip := &models.TripAttributes{Destination: "Japan", TripCost: 4000}
	risk := &models.RiskAssessment{
		RiskCategory:        models.RiskMedium,
		RecommendedCoverage: models.RecommendedCoverage{MedicalMinimum: 50000},
	}

	first := s.Rank(quotes, trip, nil, risk)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Rank(quotes, trip, nil, risk))
	}
}
