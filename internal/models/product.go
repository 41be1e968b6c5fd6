package models

// ProductClass tags the hand-authored differentiator behavior of a catalog
// entry. Matching on class instead of display-name substrings keeps the
// per-product bonuses stable when plans are renamed.
type ProductClass string

const (
	ClassBudget   ProductClass = "budget"
	ClassStandard ProductClass = "standard"
	ClassPreEx    ProductClass = "pre_existing_friendly"
)

// AgeEligibility bounds; a nil bound means no limit on that side.
type AgeEligibility struct {
	MinAge *int `json:"minAge,omitempty"`
	MaxAge *int `json:"maxAge,omitempty"`
}

// Benefit is one covered benefit of a product with its coverage amount.
type Benefit struct {
	Covered       bool                   `json:"covered"`
	Amount        float64                `json:"amount"`
	RawParameters map[string]interface{} `json:"rawParameters,omitempty"`
}

// InsuranceProduct is one taxonomy entry. Immutable once loaded; shared
// read-only by the matcher and the scorer.
type InsuranceProduct struct {
	ProductCode                  string             `json:"productCode"`
	DisplayName                  string             `json:"displayName"`
	Class                        ProductClass       `json:"class"`
	AgeEligibility               AgeEligibility     `json:"ageEligibility"`
	PreExistingConditionsCovered bool               `json:"preExistingConditionsCovered"`
	AdventureActivitiesCovered   bool               `json:"adventureActivitiesCovered"`
	ExcludedDestinations         []string           `json:"excludedDestinations,omitempty"`
	MaxTripDurationDays          *int               `json:"maxTripDurationDays,omitempty"`
	Benefits                     map[string]Benefit `json:"benefits,omitempty"`
}
