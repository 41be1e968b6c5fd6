// Package scorer ranks priced quotes with an explainable multi-factor
// algorithm. Every factor yields a score in [0,100] and a human-readable
// reason; the weighted total decides the ranking.
package scorer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/common/metrics"
	"insurance-advisor/internal/models"
)

// Factor names as they appear in RankedQuote.FactorScores and explanations.
const (
	FactorPriceValue       = "priceValue"
	FactorCoverageAdequacy = "coverageAdequacy"
	FactorRiskMatch        = "riskMatch"
	FactorUserPreference   = "userPreference"
	FactorReputation       = "reputation"
)

// Weights sum to 1.0.
const (
	weightPriceValue       = 0.25
	weightCoverageAdequacy = 0.30
	weightRiskMatch        = 0.20
	weightUserPreference   = 0.15
	weightReputation       = 0.10
)

const neutralFactorScore = 70.0

// Scorer is stateless and safe for concurrent use.
type Scorer struct {
	logger logger.Logger
}

func New(log logger.Logger) *Scorer {
	return &Scorer{
		logger: log.WithFields(map[string]interface{}{"component": "policy-scorer"}),
	}
}

// Rank scores each quote against the candidate set and returns them sorted
// descending by total score, ranks assigned 1..N after sorting. Equal totals
// preserve input order. Profile and risk are optional; their absence yields
// neutral factor scores, never an error.
func (s *Scorer) Rank(quotes []models.Quote, trip *models.TripAttributes, profile *models.TravelerProfile, risk *models.RiskAssessment) []models.RankedQuote {
	ranked := make([]models.RankedQuote, 0, len(quotes))
	for _, quote := range quotes {
		ranked = append(ranked, s.scoreQuote(quote, quotes, trip, profile, risk))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// scoreQuote evaluates every factor for one quote. A panic while scoring
// substitutes neutral factor scores so one bad quote cannot abort ranking.
func (s *Scorer) scoreQuote(quote models.Quote, all []models.Quote, trip *models.TripAttributes, profile *models.TravelerProfile, risk *models.RiskAssessment) (out models.RankedQuote) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ScoringFaults.WithLabelValues("scorer").Inc()
			s.logger.Warn("quote scoring failed, using neutral scores", map[string]interface{}{
				"productCode": quote.ProductCode,
				"panic":       fmt.Sprintf("%v", r),
			})
			out = neutralRankedQuote(quote)
		}
	}()

	priceScore, priceReason := scorePriceValue(quote, all)
	coverageScore, coverageReason := scoreCoverageAdequacy(quote, trip, risk)
	riskScore, riskReason := scoreRiskMatch(quote, risk)
	prefScore, prefReason := scoreUserPreference(quote, profile)
	repScore, repReason := scoreReputation(quote)

	total := priceScore*weightPriceValue +
		coverageScore*weightCoverageAdequacy +
		riskScore*weightRiskMatch +
		prefScore*weightUserPreference +
		repScore*weightReputation

	return models.RankedQuote{
		Quote: quote,
		FactorScores: map[string]float64{
			FactorPriceValue:       priceScore,
			FactorCoverageAdequacy: coverageScore,
			FactorRiskMatch:        riskScore,
			FactorUserPreference:   prefScore,
			FactorReputation:       repScore,
		},
		TotalScore: math.Round(total*100) / 100,
		Explanation: []models.FactorExplanation{
			{Factor: FactorPriceValue, Weight: weightPriceValue, Score: priceScore, Reason: priceReason},
			{Factor: FactorCoverageAdequacy, Weight: weightCoverageAdequacy, Score: coverageScore, Reason: coverageReason},
			{Factor: FactorRiskMatch, Weight: weightRiskMatch, Score: riskScore, Reason: riskReason},
			{Factor: FactorUserPreference, Weight: weightUserPreference, Score: prefScore, Reason: prefReason},
			{Factor: FactorReputation, Weight: weightReputation, Score: repScore, Reason: repReason},
		},
	}
}

func neutralRankedQuote(quote models.Quote) models.RankedQuote {
	factors := map[string]float64{
		FactorPriceValue:       neutralFactorScore,
		FactorCoverageAdequacy: neutralFactorScore,
		FactorRiskMatch:        neutralFactorScore,
		FactorUserPreference:   neutralFactorScore,
		FactorReputation:       neutralFactorScore,
	}
	explanation := make([]models.FactorExplanation, 0, len(factors))
	for _, f := range []struct {
		name   string
		weight float64
	}{
		{FactorPriceValue, weightPriceValue},
		{FactorCoverageAdequacy, weightCoverageAdequacy},
		{FactorRiskMatch, weightRiskMatch},
		{FactorUserPreference, weightUserPreference},
		{FactorReputation, weightReputation},
	} {
		explanation = append(explanation, models.FactorExplanation{
			Factor: f.name,
			Weight: f.weight,
			Score:  neutralFactorScore,
			Reason: "Scoring unavailable for this quote",
		})
	}
	return models.RankedQuote{
		Quote:        quote,
		FactorScores: factors,
		TotalScore:   neutralFactorScore,
		Explanation:  explanation,
	}
}

// scorePriceValue is relative to the candidate set: 100 for the cheapest,
// up to 50 points of penalty at the most expensive, with a boost for prices
// within 10% or 20% of the minimum. Unknown prices score neutral.
func scorePriceValue(quote models.Quote, all []models.Quote) (float64, string) {
	if quote.Price <= 0 {
		return 50, "Price not available"
	}

	var prices []float64
	for _, q := range all {
		if q.Price > 0 {
			prices = append(prices, q.Price)
		}
	}
	if len(prices) == 0 {
		return 50, "Cannot compare prices"
	}

	minPrice, maxPrice := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}

	if maxPrice == minPrice {
		return 100, "Same price as all options"
	}

	score := 100 - (quote.Price-minPrice)/(maxPrice-minPrice)*50

	var reason string
	switch {
	case quote.Price <= minPrice*1.1:
		score = math.Min(100, score+20)
		reason = fmt.Sprintf("Competitive price at %.2f - only %.2f more than cheapest option", quote.Price, quote.Price-minPrice)
	case quote.Price <= minPrice*1.2:
		score = math.Min(90, score+10)
		reason = fmt.Sprintf("Good value at %.2f - reasonable premium for coverage", quote.Price)
	default:
		reason = fmt.Sprintf("Price: %.2f (higher than cheapest, but may offer better coverage)", quote.Price)
	}

	return clamp(score), reason
}

// scoreCoverageAdequacy starts at 60 and rewards coverage that meets the
// risk-recommended medical minimum, the trip cost, and a baggage floor.
func scoreCoverageAdequacy(quote models.Quote, trip *models.TripAttributes, risk *models.RiskAssessment) (float64, string) {
	score := 60.0
	var reasons []string

	recommendedMedical := 50000.0
	if risk != nil && risk.RecommendedCoverage.MedicalMinimum > 0 {
		recommendedMedical = risk.RecommendedCoverage.MedicalMinimum
	}

	medical := quote.MedicalCoverage()
	switch {
	case medical >= recommendedMedical:
		score += 20
		reasons = append(reasons, fmt.Sprintf("Medical coverage (%.0f) meets/exceeds recommendation (%.0f)", medical, recommendedMedical))
	case medical >= recommendedMedical*0.7:
		score += 10
		reasons = append(reasons, fmt.Sprintf("Medical coverage (%.0f) close to recommendation (%.0f)", medical, recommendedMedical))
	default:
		reasons = append(reasons, fmt.Sprintf("Medical coverage (%.0f) below recommendation (%.0f)", medical, recommendedMedical))
	}

	cancellation := quote.Coverage[models.CoverageTripCancellation]
	tripCost := 0.0
	if trip != nil {
		tripCost = trip.TripCost
	}
	if tripCost > 0 && cancellation >= tripCost*0.8 {
		score += 10
		reasons = append(reasons, fmt.Sprintf("Trip cancellation coverage (%.0f) adequate for trip cost", cancellation))
	} else if cancellation > 0 {
		reasons = append(reasons, fmt.Sprintf("Trip cancellation: %.0f (check if sufficient for your trip)", cancellation))
	}

	if quote.Coverage[models.CoverageBaggage] >= 2000 {
		score += 10
		reasons = append(reasons, fmt.Sprintf("Baggage coverage (%.0f) is adequate", quote.Coverage[models.CoverageBaggage]))
	}

	reason := "Standard coverage levels"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return clamp(score), reason
}

// scoreRiskMatch tiers the quote's medical coverage against the assessed
// risk category. No assessment means a neutral 70.
func scoreRiskMatch(quote models.Quote, risk *models.RiskAssessment) (float64, string) {
	if risk == nil {
		return 70, "Standard risk profile assumed"
	}

	medical := quote.MedicalCoverage()
	switch risk.RiskCategory {
	case models.RiskHigh:
		switch {
		case medical >= 150000:
			return 100, "Excellent match for high-risk trip - comprehensive medical coverage"
		case medical >= 100000:
			return 85, "Good match for high-risk trip - adequate medical coverage"
		default:
			return 60, "May not fully cover high-risk trip - consider higher coverage"
		}
	case models.RiskMedium:
		switch {
		case medical >= 100000:
			return 90, "Good coverage for medium-risk trip"
		case medical >= 50000:
			return 75, "Adequate coverage for medium-risk trip"
		default:
			return 60, "Consider if coverage is sufficient"
		}
	default:
		if medical >= 50000 {
			return 90, "Sufficient coverage for low-risk trip"
		}
		return 70, "Basic coverage may be sufficient for low-risk trip"
	}
}

// scoreUserPreference rewards familiarity (plan used before), a coverage
// tier that matches the stated preference, and price-sensitivity alignment.
func scoreUserPreference(quote models.Quote, profile *models.TravelerProfile) (float64, string) {
	if profile == nil {
		return 70, "No user history - neutral score"
	}

	score := 70.0
	var reasons []string

	planName := strings.ToLower(quote.PlanName)
	if planName != "" {
		for _, past := range profile.TravelHistory {
			if past.PolicyUsed != "" && strings.Contains(strings.ToLower(past.PolicyUsed), planName) {
				score += 20
				reasons = append(reasons, "You've used this policy before - familiarity bonus")
				break
			}
		}
	}

	medical := quote.MedicalCoverage()
	switch profile.Preferences.PreferredCoverageTier {
	case models.TierComprehensive:
		if medical >= 100000 {
			score += 10
			reasons = append(reasons, "Matches your preference for comprehensive coverage")
		}
	case models.TierPremium:
		if medical >= 150000 {
			score += 10
			reasons = append(reasons, "Matches your preference for premium coverage")
		}
	}

	switch profile.Preferences.PriceSensitivity {
	case models.SensitivityHigh:
		if quote.Price > 0 && quote.Price < 50 {
			score += 5
			reasons = append(reasons, "Budget-friendly option")
		}
	case models.SensitivityLow:
		if quote.Price >= 50 {
			score += 5
			reasons = append(reasons, "Premium option aligns with your preferences")
		}
	}

	reason := "No specific preferences matched"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return clamp(score), reason
}

// scoreReputation hand-assigns scores for known brands; marketplace quotes
// carry a verified-provider score.
func scoreReputation(quote models.Quote) (float64, string) {
	if quote.Source == models.SourceMarketplace {
		return 85, "Marketplace - verified providers with established reputation"
	}

	planName := strings.ToLower(quote.PlanName)
	switch {
	case strings.Contains(planName, "msig"):
		return 95, "MSIG - highly trusted insurance provider with excellent reputation"
	case strings.Contains(planName, "traveleasy"):
		return 90, "TravelEasy - well-established provider with strong reputation"
	case strings.Contains(planName, "scootsurance"):
		return 85, "Scootsurance - trusted provider for budget travelers"
	default:
		return 70, "Standard provider rating"
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
