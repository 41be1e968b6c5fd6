package models

// ClaimRecord is one raw historical claim as supplied by the
// claims-database collaborator.
type ClaimRecord struct {
	ClaimNumber    string  `json:"claimNumber,omitempty"`
	Destination    string  `json:"destination,omitempty"`
	ClaimType      string  `json:"claimType"`
	CauseOfLoss    string  `json:"causeOfLoss"`
	LossType       string  `json:"lossType,omitempty"`
	IncurredAmount float64 `json:"incurredAmount"`
	AccidentDate   string  `json:"accidentDate,omitempty"`
}

// ClaimTypeStats is the per-claim-type slice of a ClaimsSummary.
type ClaimTypeStats struct {
	Count             int     `json:"count"`
	PercentageOfTotal float64 `json:"percentageOfTotal"`
	AverageAmount     float64 `json:"averageAmount"`
}

// Incident is one ranked common-incident entry.
type Incident struct {
	Incident    string  `json:"incident"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	AverageCost float64 `json:"averageCost"`
}

// ClaimsSummary is the aggregator's reduction of a destination's raw claims.
type ClaimsSummary struct {
	Destination            string                    `json:"destination"`
	TotalClaims            int                       `json:"totalClaims"`
	ClaimTypeDistribution  map[string]ClaimTypeStats `json:"claimTypeDistribution"`
	CommonIncidents        []Incident                `json:"commonIncidents"`
	AverageClaimAmount     float64                   `json:"averageClaimAmount"`
	Message                string                    `json:"message,omitempty"`
}

// HasData reports whether the summary is backed by at least one claim.
// The core never distinguishes "no data" from "database unreachable."
func (s *ClaimsSummary) HasData() bool {
	return s != nil && s.TotalClaims > 0
}
