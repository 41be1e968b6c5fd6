package models

// RiskCategory buckets a continuous risk score.
type RiskCategory string

const (
	RiskLow    RiskCategory = "low"
	RiskMedium RiskCategory = "medium"
	RiskHigh   RiskCategory = "high"
)

// RecommendedCoverage is the floor the risk model suggests per benefit.
type RecommendedCoverage struct {
	MedicalMinimum          float64 `json:"medicalMinimum"`
	TripCancellationMinimum float64 `json:"tripCancellationMinimum"`
	BaggageMinimum          float64 `json:"baggageMinimum"`
}

// RiskAssessment is the risk model's verdict for one trip.
type RiskAssessment struct {
	Destination         string              `json:"destination"`
	RiskScore           float64             `json:"riskScore"`
	RiskCategory        RiskCategory        `json:"riskCategory"`
	RecommendedCoverage RecommendedCoverage `json:"recommendedCoverage"`
	HighRiskActivities  []string            `json:"highRiskActivities,omitempty"`
	Insights            string              `json:"insights,omitempty"`
}
