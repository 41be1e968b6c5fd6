// Package risk converts historical claims statistics and trip attributes
// into a risk probability, category, and recommended coverage floors.
package risk

import (
	"fmt"
	"math"

	"insurance-advisor/internal/models"
)

const (
	baseRiskHighClaims = 0.6
	baseRiskLowClaims  = 0.4
	baseRiskNoStats    = 0.5
	baseRiskNoClaims   = 0.3

	highClaimAmountThreshold = 25000

	highActivityBonus   = 0.2
	mediumActivityBonus = 0.1

	seasonalMultiplier = 1.4
)

// CategoryFromScore buckets a [0,1] risk score. This is the single source
// of truth for category boundaries.
func CategoryFromScore(score float64) models.RiskCategory {
	switch {
	case score < 0.4:
		return models.RiskLow
	case score < 0.7:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// Assess produces a RiskAssessment from destination claims statistics and
// trip attributes. Missing optional inputs (nil stats, zero age, zero
// month, zero duration, no activities) contribute no adjustment; Assess
// never fails.
func Assess(stats *DestinationStats, activities []string, durationDays, age, travelMonth int) models.RiskAssessment {
	destination := ""
	if stats != nil {
		destination = stats.Destination
	}

	baseRisk := baseRiskNoStats
	switch {
	case stats == nil:
		baseRisk = baseRiskNoStats
	case stats.TotalClaims == 0:
		// Known destination with no claims history: fixed low default.
		baseRisk = baseRiskNoClaims
	case stats.AverageClaimAmount > highClaimAmountThreshold:
		baseRisk = baseRiskHighClaims
	default:
		baseRisk = baseRiskLowClaims
	}

	var matched []string
	for _, activity := range activities {
		switch ClassifyActivity(activity) {
		case ActivityRiskHigh:
			baseRisk += highActivityBonus
			matched = append(matched, activity)
		case ActivityRiskMedium:
			baseRisk += mediumActivityBonus
			matched = append(matched, activity)
		}
	}

	ageMultiplier := 1.0
	if age > 0 {
		switch {
		case age < 30:
			ageMultiplier = 1.0
		case age < 50:
			ageMultiplier = 1.1
		case age < 65:
			ageMultiplier = 1.3
		default:
			ageMultiplier = 1.8
		}
	}

	seasonal := 1.0
	if travelMonth > 0 && stats != nil {
		for _, m := range stats.HighRiskMonths {
			if m == travelMonth {
				seasonal = seasonalMultiplier
				break
			}
		}
	}

	duration := 1.0
	switch {
	case durationDays > 30:
		duration = 1.3
	case durationDays > 14:
		duration = 1.1
	}

	finalRisk := baseRisk * ageMultiplier * seasonal * duration
	if finalRisk > 1.0 {
		finalRisk = 1.0
	}

	medicalMinimum := 30000.0
	if finalRisk > 0.7 {
		medicalMinimum = 50000.0
	}

	assessment := models.RiskAssessment{
		Destination:        destination,
		RiskScore:          round2(finalRisk),
		RiskCategory:       CategoryFromScore(finalRisk),
		HighRiskActivities: matched,
		RecommendedCoverage: models.RecommendedCoverage{
			MedicalMinimum:          medicalMinimum,
			TripCancellationMinimum: 10000,
			BaggageMinimum:          2000,
		},
	}
	if stats != nil && stats.TotalClaims == 0 {
		assessment.Insights = fmt.Sprintf("No historical claims data found for %s", destination)
	}
	return assessment
}

// StatsFromSummary derives the risk model's input from a claims summary,
// attaching the destination's configured high-risk months.
func StatsFromSummary(summary *models.ClaimsSummary) *DestinationStats {
	if summary == nil {
		return nil
	}
	return &DestinationStats{
		Destination:        summary.Destination,
		TotalClaims:        summary.TotalClaims,
		AverageClaimAmount: summary.AverageClaimAmount,
		HighRiskMonths:     HighRiskMonthsFor(summary.Destination),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
