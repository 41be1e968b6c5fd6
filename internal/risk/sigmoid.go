package risk

import (
	"math"

	"insurance-advisor/internal/models"
)

// SigmoidAssess is the destination-analysis variant of the risk model. It
// maps claims volume and severity through a logistic curve instead of the
// threshold table used by Assess. The two variants are intentionally kept
// separate; Assess is the one the recommendation path uses.
//
// score = 1 / (1 + e^-k(x - x0)) where x blends normalized claim volume
// and average severity.
func SigmoidAssess(stats *DestinationStats) models.RiskAssessment {
	if stats == nil || stats.TotalClaims == 0 {
		destination := ""
		if stats != nil {
			destination = stats.Destination
		}
		return models.RiskAssessment{
			Destination:  destination,
			RiskScore:    baseRiskNoClaims,
			RiskCategory: CategoryFromScore(baseRiskNoClaims),
			RecommendedCoverage: models.RecommendedCoverage{
				MedicalMinimum:          30000,
				TripCancellationMinimum: 10000,
				BaggageMinimum:          2000,
			},
		}
	}

	// Claim volume saturates around 300 claims; severity around 50000.
	volume := math.Min(float64(stats.TotalClaims)/300.0, 1.0)
	severity := math.Min(stats.AverageClaimAmount/50000.0, 1.0)
	x := 0.4*volume + 0.6*severity

	const k, x0 = 6.0, 0.5
	score := 1.0 / (1.0 + math.Exp(-k*(x-x0)))

	medicalMinimum := 30000.0
	if score > 0.7 {
		medicalMinimum = 50000.0
	}

	return models.RiskAssessment{
		Destination:  stats.Destination,
		RiskScore:    round2(score),
		RiskCategory: CategoryFromScore(score),
		RecommendedCoverage: models.RecommendedCoverage{
			MedicalMinimum:          medicalMinimum,
			TripCancellationMinimum: 10000,
			BaggageMinimum:          2000,
		},
	}
}
