package risk

import "strings"

// ActivityRiskLevel classifies an activity for the additive risk bonus.
type ActivityRiskLevel string

const (
	ActivityRiskHigh         ActivityRiskLevel = "high"
	ActivityRiskMedium       ActivityRiskLevel = "medium"
	ActivityRiskUnclassified ActivityRiskLevel = "unclassified"
)

// activityTable maps activity keywords to risk levels. Keyword order sets
// precedence when an activity mentions more than one.
var activityTable = []struct {
	keyword string
	level   ActivityRiskLevel
}{
	{"skiing", ActivityRiskHigh},
	{"snowboarding", ActivityRiskHigh},
	{"scuba", ActivityRiskHigh},
	{"diving", ActivityRiskHigh},
	{"hiking", ActivityRiskMedium},
	{"trekking", ActivityRiskMedium},
	{"water_sports", ActivityRiskMedium},
	{"water sports", ActivityRiskMedium},
}

// ClassifyActivity returns the risk level for a free-form activity string.
// Each activity classifies once, at the highest-precedence keyword it
// contains. Unknown activities are a no-op for scoring.
func ClassifyActivity(activity string) ActivityRiskLevel {
	lower := strings.ToLower(activity)
	for _, e := range activityTable {
		if strings.Contains(lower, e.keyword) {
			return e.level
		}
	}
	return ActivityRiskUnclassified
}

// DestinationStats is the slice of claims history the risk model consumes,
// produced from a ClaimsSummary plus the destination's configured
// high-risk months.
type DestinationStats struct {
	Destination        string
	TotalClaims        int
	AverageClaimAmount float64
	HighRiskMonths     []int
}

// highRiskMonths carries the seasonal claim patterns per region observed in
// the historical data set.
var highRiskMonths = map[string][]int{
	"japan":     {1, 2, 12},
	"thailand":  {7, 8, 12, 1},
	"australia": {6, 7, 8},
	"usa":       {3, 4, 5, 6, 7, 8},
	"europe":    {12, 1, 2, 7, 8},
}

// HighRiskMonthsFor returns the configured high-risk months for a
// destination, nil when none are known.
func HighRiskMonthsFor(destination string) []int {
	return highRiskMonths[strings.ToLower(strings.TrimSpace(destination))]
}
