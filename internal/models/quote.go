package models

// QuoteSource says where a priced quote came from.
type QuoteSource string

const (
	SourceTaxonomyMatch QuoteSource = "taxonomy_match"
	SourceMarketplace   QuoteSource = "external_marketplace"
)

// Coverage keys used by the scorer. The marketplace may send more; only
// these three feed the adequacy and risk-match factors.
const (
	CoverageMedical          = "medical"
	CoverageTripCancellation = "trip_cancellation"
	CoverageBaggage          = "baggage"
)

// Quote is a priced instance of a product for a specific trip. Quotes are
// created per request and owned by the caller; the scorer never mutates them.
type Quote struct {
	ProductCode string             `json:"productCode"`
	PlanName    string             `json:"planName"`
	Price       float64            `json:"price"`
	Currency    string             `json:"currency"`
	Coverage    map[string]float64 `json:"coverage,omitempty"`
	Source      QuoteSource        `json:"source"`
}

// MedicalCoverage returns the quote's medical coverage amount, 0 if absent.
func (q *Quote) MedicalCoverage() float64 {
	if q.Coverage == nil {
		return 0
	}
	return q.Coverage[CoverageMedical]
}

// ScoredMatch is the matcher's verdict on a single product, price not yet
// attached.
type ScoredMatch struct {
	ProductCode      string   `json:"productCode"`
	DisplayName      string   `json:"displayName"`
	EligibilityScore float64  `json:"eligibilityScore"`
	Benefits         []string `json:"benefits"`
	Reasons          []string `json:"reasons"`
}

// FactorExplanation is one line of the scorer's user-facing breakdown.
type FactorExplanation struct {
	Factor string  `json:"factor"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// RankedQuote is the scorer's output for one quote. Rank is assigned only
// after the full candidate set is sorted.
type RankedQuote struct {
	Quote        Quote               `json:"quote"`
	FactorScores map[string]float64  `json:"factorScores"`
	TotalScore   float64             `json:"totalScore"`
	Rank         int                 `json:"rank"`
	Explanation  []FactorExplanation `json:"explanation"`
}
