// Package matcher scores every catalog product against a traveler profile
// and trip, producing the reason-annotated eligibility list the scorer and
// pricing collaborators consume.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/common/metrics"
	"insurance-advisor/internal/models"
	"insurance-advisor/internal/taxonomy"
)

const (
	baseScore = 50.0

	// Substituted when scoring a single product panics. One bad catalog
	// entry must never abort matching for the others.
	neutralScore = 70.0
)

// adventureInterests is the fixed list of interest phrases that count as an
// adventure signal. Matching is case-insensitive on phrase fragments.
var adventureInterests = []string{
	"skiing", "snowboarding", "scuba", "diving",
	"hiking", "trekking", "adventure",
}

// Matcher scores products from an immutable taxonomy store. Safe for
// concurrent use.
type Matcher struct {
	store  *taxonomy.Store
	logger logger.Logger
}

func New(store *taxonomy.Store, log logger.Logger) *Matcher {
	return &Matcher{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "policy-matcher"}),
	}
}

// Match scores every product in the catalog, highest first. The result
// always has exactly one entry per catalog product; thresholding on score
// is the caller's job, not the matcher's.
func (m *Matcher) Match(profile *models.TravelerProfile, trip *models.TripAttributes) ([]models.ScoredMatch, error) {
	if trip == nil {
		return nil, &models.MalformedTripError{Reason: "trip attributes missing"}
	}
	if err := trip.Validate(); err != nil {
		return nil, err
	}

	products := m.store.Products()
	matches := make([]models.ScoredMatch, 0, len(products))
	for _, product := range products {
		matches = append(matches, m.scoreProduct(product, profile, trip))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].EligibilityScore > matches[j].EligibilityScore
	})
	return matches, nil
}

// scoreProduct evaluates one product. A panic inside scoring substitutes
// the neutral fallback instead of propagating.
func (m *Matcher) scoreProduct(product models.InsuranceProduct, profile *models.TravelerProfile, trip *models.TripAttributes) (match models.ScoredMatch) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ScoringFaults.WithLabelValues("matcher").Inc()
			m.logger.Warn("product scoring failed, using neutral score", map[string]interface{}{
				"productCode": product.ProductCode,
				"panic":       fmt.Sprintf("%v", r),
			})
			match = models.ScoredMatch{
				ProductCode:      product.ProductCode,
				DisplayName:      product.DisplayName,
				EligibilityScore: neutralScore,
				Benefits:         []string{fmt.Sprintf("Coverage from %s", product.DisplayName)},
				Reasons:          []string{"Policy available from catalog"},
			}
		}
	}()

	score := baseScore
	var benefits, reasons []string

	age := 0
	if profile != nil {
		age = profile.Age
	}
	hasMedical := profile.HasMedicalConditions()
	hasAdventure := hasAdventureInterest(profile)
	duration := trip.DurationDays()

	if ageEligible(product.AgeEligibility, age) {
		score += 15
		reasons = append(reasons, fmt.Sprintf("Age %d is eligible", age))
	} else {
		score -= 20
		reasons = append(reasons, fmt.Sprintf("Age %d may not be eligible", age))
	}

	if hasMedical {
		if product.PreExistingConditionsCovered {
			score += 25
			benefits = append(benefits, "Pre-existing conditions covered")
			reasons = append(reasons, "Pre-existing conditions coverage available")
		} else {
			score -= 15
			reasons = append(reasons, "Pre-existing conditions may not be covered")
		}
	} else {
		score += 5
		reasons = append(reasons, "No pre-existing conditions - standard coverage sufficient")
	}

	if hasAdventure {
		if product.AdventureActivitiesCovered {
			score += 20
			benefits = append(benefits, "Adventure activities covered")
			reasons = append(reasons, "Adventure sports coverage available")
		} else {
			score -= 10
			reasons = append(reasons, "Adventure activities may not be covered")
		}
	}

	if destinationCovered(product, trip.Destination) {
		score += 10
		reasons = append(reasons, fmt.Sprintf("Destination %s is covered", trip.Destination))
	} else {
		score -= 5
		reasons = append(reasons, fmt.Sprintf("Destination %s coverage may be limited", trip.Destination))
	}

	if withinDurationLimit(product.MaxTripDurationDays, duration) {
		score += 5
		reasons = append(reasons, fmt.Sprintf("Trip duration (%d days) is within limits", duration))
	} else {
		score -= 10
		reasons = append(reasons, "Trip duration may exceed policy limits")
	}

	// Hand-authored per-class differentiators keep the small fixed catalog
	// visibly distinct in recommendations.
	switch product.Class {
	case models.ClassBudget:
		if !hasMedical && age < 65 {
			score += 10
			benefits = append(benefits, "Best value for basic coverage")
			reasons = append(reasons, "Ideal for budget-conscious travelers")
		} else {
			score -= 5
		}
	case models.ClassStandard:
		score += 5
		benefits = append(benefits, "Comprehensive standard coverage")
		reasons = append(reasons, "Balanced coverage and price")
	case models.ClassPreEx:
		switch {
		case hasMedical || age >= 65:
			score += 15
			benefits = append(benefits, "Pre-existing conditions covered")
			reasons = append(reasons, "Best for travelers with medical conditions")
		case hasAdventure:
			score += 8
			benefits = append(benefits, "Enhanced coverage for adventures")
			reasons = append(reasons, "Great for adventure activities")
		default:
			score -= 5
		}
	}

	if duration > 14 && product.Class == models.ClassPreEx {
		score += 5
		benefits = append(benefits, "Extended coverage benefits")
	} else if duration > 0 && duration < 7 && product.Class == models.ClassBudget {
		score += 3
	}
	if trip.TravelerCount > 2 && product.Class == models.ClassStandard {
		score += 3
	}

	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return models.ScoredMatch{
		ProductCode:      product.ProductCode,
		DisplayName:      product.DisplayName,
		EligibilityScore: score,
		Benefits:         benefits,
		Reasons:          reasons,
	}
}

// ageEligible checks the product's age bounds. A missing bound or zero age
// is permissive.
func ageEligible(bounds models.AgeEligibility, age int) bool {
	if age <= 0 {
		return true
	}
	if bounds.MinAge != nil && age < *bounds.MinAge {
		return false
	}
	if bounds.MaxAge != nil && age > *bounds.MaxAge {
		return false
	}
	return true
}

func destinationCovered(product models.InsuranceProduct, destination string) bool {
	d := strings.ToLower(strings.TrimSpace(destination))
	for _, excluded := range product.ExcludedDestinations {
		if strings.ToLower(strings.TrimSpace(excluded)) == d {
			return false
		}
	}
	return true
}

// withinDurationLimit treats an absent limit or unknown duration as within.
func withinDurationLimit(maxDays *int, duration int) bool {
	if maxDays == nil || duration <= 0 {
		return true
	}
	return duration <= *maxDays
}

func hasAdventureInterest(profile *models.TravelerProfile) bool {
	if profile == nil {
		return false
	}
	for _, interest := range profile.Interests {
		lower := strings.ToLower(interest)
		for _, keyword := range adventureInterests {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
	}
	return false
}
