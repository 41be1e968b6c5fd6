// Package taxonomy loads and serves the product rule table. The store is
// read-only after load and safe to share across goroutines.
package taxonomy

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	errs "insurance-advisor/internal/common/errors"
	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/common/validation"
	"insurance-advisor/internal/models"
)

// document is the on-disk taxonomy shape. Coverage flags are pointers so a
// missing rule can be told apart from an explicit denial: absence of a rule
// is not a denial and resolves to the permissive default.
type document struct {
	Products []entry `json:"products"`
}

type entry struct {
	ProductCode                  string                    `json:"productCode"`
	DisplayName                  string                    `json:"displayName"`
	Class                        models.ProductClass       `json:"class"`
	AgeEligibility               models.AgeEligibility     `json:"ageEligibility"`
	PreExistingConditionsCovered *bool                     `json:"preExistingConditionsCovered"`
	AdventureActivitiesCovered   *bool                     `json:"adventureActivitiesCovered"`
	ExcludedDestinations         []string                  `json:"excludedDestinations"`
	MaxTripDurationDays          *int                      `json:"maxTripDurationDays"`
	Benefits                     map[string]models.Benefit `json:"benefits"`
}

// Store holds the loaded product catalog.
type Store struct {
	products []models.InsuranceProduct
	byCode   map[string]models.InsuranceProduct
	fallback bool
}

// Load reads the taxonomy document at path. Any failure (missing file,
// invalid JSON, schema violation) falls back to the default catalog so
// downstream matching always has candidates.
func Load(path string, log logger.Logger) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("taxonomy source unreadable, using default catalog", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return fallbackStore()
	}

	store, err := LoadBytes(data)
	if err != nil {
		log.Warn("taxonomy source rejected, using default catalog", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return fallbackStore()
	}

	log.Info("taxonomy loaded", map[string]interface{}{
		"path":     path,
		"products": len(store.products),
	})
	return store
}

// LoadBytes parses and validates a taxonomy document.
func LoadBytes(data []byte) (*Store, error) {
	result, err := validation.ValidateDocument(data, []byte(validation.TaxonomySchema))
	if err != nil {
		return nil, errs.NewTaxonomyLoadError(err.Error())
	}
	if !result.Valid {
		return nil, errs.NewTaxonomyInvalidError(fmt.Sprintf("%+v", result.Errors))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.NewTaxonomyLoadError(err.Error())
	}
	if len(doc.Products) == 0 {
		return nil, errs.NewTaxonomyInvalidError("taxonomy has no products")
	}

	products := make([]models.InsuranceProduct, 0, len(doc.Products))
	for _, e := range doc.Products {
		products = append(products, resolve(e))
	}
	return NewStore(products), nil
}

// resolve applies permissive defaults for absent rules.
func resolve(e entry) models.InsuranceProduct {
	p := models.InsuranceProduct{
		ProductCode:          e.ProductCode,
		DisplayName:          e.DisplayName,
		Class:                e.Class,
		AgeEligibility:       e.AgeEligibility,
		ExcludedDestinations: e.ExcludedDestinations,
		MaxTripDurationDays:  e.MaxTripDurationDays,
		Benefits:             e.Benefits,
	}
	if e.Class == "" {
		p.Class = models.ClassStandard
	}
	// Absent coverage rules resolve to covered.
	p.PreExistingConditionsCovered = e.PreExistingConditionsCovered == nil || *e.PreExistingConditionsCovered
	p.AdventureActivitiesCovered = e.AdventureActivitiesCovered == nil || *e.AdventureActivitiesCovered
	return p
}

// NewStore builds a store from an explicit product list, preserving order.
func NewStore(products []models.InsuranceProduct) *Store {
	byCode := make(map[string]models.InsuranceProduct, len(products))
	for _, p := range products {
		byCode[p.ProductCode] = p
	}
	return &Store{products: products, byCode: byCode}
}

func fallbackStore() *Store {
	s := NewStore(DefaultCatalog())
	s.fallback = true
	return s
}

// UsedFallback reports whether the store was built from the default catalog
// because the configured source could not be used.
func (s *Store) UsedFallback() bool {
	return s.fallback
}

// Product returns the catalog entry for code.
func (s *Store) Product(code string) (models.InsuranceProduct, bool) {
	p, ok := s.byCode[code]
	return p, ok
}

// ListProducts returns product codes in catalog order.
func (s *Store) ListProducts() []string {
	codes := make([]string, 0, len(s.products))
	for _, p := range s.products {
		codes = append(codes, p.ProductCode)
	}
	return codes
}

// Products returns the full catalog in order.
func (s *Store) Products() []models.InsuranceProduct {
	out := make([]models.InsuranceProduct, len(s.products))
	copy(out, s.products)
	return out
}
