// Package claims reduces raw historical claim records into the statistics
// the risk model and matcher consume, and provides the claims-database
// collaborators (Postgres, Elasticsearch) and summary cache.
package claims

import (
	"fmt"
	"math"
	"sort"

	"insurance-advisor/internal/models"
)

const maxCommonIncidents = 10

// unknownLabel marks records with no usable cause or type. Unknown
// incidents are kept out of the common-incident ranking.
const unknownLabel = "Unknown"

// Summarize is a pure reduction of raw claims for one destination. An
// empty input yields a zero summary with an explanatory message; it never
// fails.
func Summarize(destination string, records []models.ClaimRecord) models.ClaimsSummary {
	if len(records) == 0 {
		return models.ClaimsSummary{
			Destination:           destination,
			TotalClaims:           0,
			ClaimTypeDistribution: map[string]models.ClaimTypeStats{},
			CommonIncidents:       []models.Incident{},
			AverageClaimAmount:    0,
			Message:               fmt.Sprintf("No historical claims data found for %s", destination),
		}
	}

	total := len(records)

	typeAcc := make(map[string]*acc)
	var typeOrder []string

	incidentAcc := make(map[string]*acc)
	var incidentOrder []string

	var totalAmount float64

	for _, r := range records {
		amount := r.IncurredAmount // missing amounts arrive as 0
		totalAmount += amount

		claimType := r.ClaimType
		if claimType == "" {
			claimType = unknownLabel
		}
		if _, ok := typeAcc[claimType]; !ok {
			typeAcc[claimType] = &acc{}
			typeOrder = append(typeOrder, claimType)
		}
		typeAcc[claimType].count++
		typeAcc[claimType].amount += amount

		incident := incidentLabel(r)
		if _, ok := incidentAcc[incident]; !ok {
			incidentAcc[incident] = &acc{}
			incidentOrder = append(incidentOrder, incident)
		}
		incidentAcc[incident].count++
		incidentAcc[incident].amount += amount
	}

	distribution := make(map[string]models.ClaimTypeStats, len(typeAcc))
	for _, claimType := range typeOrder {
		a := typeAcc[claimType]
		distribution[claimType] = models.ClaimTypeStats{
			Count:             a.count,
			PercentageOfTotal: round1(float64(a.count) / float64(total) * 100),
			AverageAmount:     round2(a.amount / float64(a.count)),
		}
	}

	incidents := rankIncidents(incidentOrder, incidentAcc, total)

	return models.ClaimsSummary{
		Destination:           destination,
		TotalClaims:           total,
		ClaimTypeDistribution: distribution,
		CommonIncidents:       incidents,
		AverageClaimAmount:    round2(totalAmount / float64(total)),
	}
}

// incidentLabel combines cause and loss type for more detail, e.g.
// "Slip and fall (Injury)".
func incidentLabel(r models.ClaimRecord) string {
	cause := r.CauseOfLoss
	if cause == "" {
		cause = unknownLabel
	}
	if r.LossType != "" && r.LossType != cause {
		return fmt.Sprintf("%s (%s)", cause, r.LossType)
	}
	return cause
}

type acc struct {
	count  int
	amount float64
}

// rankIncidents sorts by count descending, first-seen order on ties, drops
// the Unknown bucket, and caps the list at maxCommonIncidents.
func rankIncidents(order []string, byLabel map[string]*acc, total int) []models.Incident {
	ranked := make([]models.Incident, 0, len(order))
	for _, label := range order {
		if label == unknownLabel {
			continue
		}
		a := byLabel[label]
		ranked = append(ranked, models.Incident{
			Incident:    label,
			Count:       a.count,
			Percentage:  round1(float64(a.count) / float64(total) * 100),
			AverageCost: round2(a.amount / float64(a.count)),
		})
	}

	// Stable sort over the first-seen ordering built above keeps
	// equal-count incidents in insertion order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > maxCommonIncidents {
		ranked = ranked[:maxCommonIncidents]
	}
	return ranked
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
