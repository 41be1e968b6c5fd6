package taxonomy

import "insurance-advisor/internal/models"

func intPtr(v int) *int { return &v }

// DefaultCatalog is the built-in three-product catalog used whenever the
// configured taxonomy source cannot be loaded. Guarantees the matcher always
// has candidates, so a taxonomy outage never produces an empty result set.
func DefaultCatalog() []models.InsuranceProduct {
	return []models.InsuranceProduct{
		{
			ProductCode:                  "PROD-A",
			DisplayName:                  "Scootsurance QSR022206",
			Class:                        models.ClassBudget,
			AgeEligibility:               models.AgeEligibility{MaxAge: intPtr(65)},
			PreExistingConditionsCovered: false,
			AdventureActivitiesCovered:   false,
			MaxTripDurationDays:          intPtr(30),
			Benefits: map[string]models.Benefit{
				models.CoverageMedical:          {Covered: true, Amount: 50000},
				models.CoverageTripCancellation: {Covered: true, Amount: 5000},
				models.CoverageBaggage:          {Covered: true, Amount: 3000},
			},
		},
		{
			ProductCode:                  "PROD-B",
			DisplayName:                  "TravelEasy Policy QTD032212",
			Class:                        models.ClassStandard,
			AgeEligibility:               models.AgeEligibility{MaxAge: intPtr(85)},
			PreExistingConditionsCovered: false,
			AdventureActivitiesCovered:   true,
			MaxTripDurationDays:          intPtr(90),
			Benefits: map[string]models.Benefit{
				models.CoverageMedical:          {Covered: true, Amount: 200000},
				models.CoverageTripCancellation: {Covered: true, Amount: 10000},
				models.CoverageBaggage:          {Covered: true, Amount: 5000},
			},
		},
		{
			ProductCode:                  "PROD-C",
			DisplayName:                  "TravelEasy Pre-Ex Policy QTD032212-PX",
			Class:                        models.ClassPreEx,
			PreExistingConditionsCovered: true,
			AdventureActivitiesCovered:   true,
			MaxTripDurationDays:          intPtr(180),
			Benefits: map[string]models.Benefit{
				models.CoverageMedical:          {Covered: true, Amount: 300000},
				models.CoverageTripCancellation: {Covered: true, Amount: 12000},
				models.CoverageBaggage:          {Covered: true, Amount: 7500},
			},
		},
	}
}
