package models

import "strings"

// CoverageTier is the coverage level a traveler says they prefer.
type CoverageTier string

const (
	TierBasic         CoverageTier = "basic"
	TierComprehensive CoverageTier = "comprehensive"
	TierPremium       CoverageTier = "premium"
)

// PriceSensitivity expresses how much price drives the traveler's choice.
type PriceSensitivity string

const (
	SensitivityLow    PriceSensitivity = "low"
	SensitivityMedium PriceSensitivity = "medium"
	SensitivityHigh   PriceSensitivity = "high"
)

// PastTrip is one entry of a traveler's history.
type PastTrip struct {
	Destination string `json:"destination"`
	PolicyUsed  string `json:"policyUsed"`
	ClaimFiled  bool   `json:"claimFiled"`
}

// Preferences holds the traveler's stated insurance preferences.
type Preferences struct {
	PreferredCoverageTier CoverageTier     `json:"preferredCoverageTier,omitempty"`
	PriceSensitivity      PriceSensitivity `json:"priceSensitivity,omitempty"`
}

// TravelerProfile is owned by the profile-management collaborator; the
// decision core only reads it.
type TravelerProfile struct {
	Age               int         `json:"age"`
	MedicalConditions []string    `json:"medicalConditions,omitempty"`
	Interests         []string    `json:"interests,omitempty"`
	TravelHistory     []PastTrip  `json:"travelHistory,omitempty"`
	Preferences       Preferences `json:"preferences"`
}

// HasMedicalConditions reports whether the traveler declared any real
// pre-existing condition. "none"/"no" entries count as no condition.
func (p *TravelerProfile) HasMedicalConditions() bool {
	if p == nil || len(p.MedicalConditions) == 0 {
		return false
	}
	for _, c := range p.MedicalConditions {
		switch strings.ToLower(strings.TrimSpace(c)) {
		case "", "none", "no":
		default:
			return true
		}
	}
	return false
}
