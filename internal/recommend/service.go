// Package recommend orchestrates the decision core: claims history is
// reduced to a summary, the summary feeds the risk model, the matcher and
// pricer produce candidate quotes, and the scorer ranks them. Every step
// degrades instead of failing so a request always yields recommendations.
package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"

	"insurance-advisor/internal/claims"
	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/common/metrics"
	"insurance-advisor/internal/matcher"
	"insurance-advisor/internal/models"
	"insurance-advisor/internal/pricing"
	"insurance-advisor/internal/risk"
	"insurance-advisor/internal/scorer"
	"insurance-advisor/internal/taxonomy"
)

// ClaimsSource abstracts where raw claim records come from (Postgres or
// Elasticsearch). Both implementations degrade to empty on failure.
type ClaimsSource interface {
	ClaimsByDestination(ctx context.Context, destination string) ([]models.ClaimRecord, error)
}

// Request is one recommendation invocation.
type Request struct {
	Profile *models.TravelerProfile `json:"profile,omitempty"`
	Trip    models.TripAttributes   `json:"trip"`
}

// Response carries everything the conversational layer needs to narrate a
// recommendation without recomputation.
type Response struct {
	RequestID       string                `json:"requestId"`
	Matches         []models.ScoredMatch  `json:"matches"`
	Risk            models.RiskAssessment `json:"risk"`
	ClaimsSummary   models.ClaimsSummary  `json:"claimsSummary"`
	Recommendations []models.RankedQuote  `json:"recommendations"`
}

// Service wires the decision core to its collaborators.
type Service struct {
	store       *taxonomy.Store
	matcher     *matcher.Matcher
	scorer      *scorer.Scorer
	calculator  *pricing.Calculator
	marketplace pricing.Marketplace
	source      ClaimsSource
	cache       *claims.SummaryCache
	logger      logger.Logger
}

func NewService(
	store *taxonomy.Store,
	m *matcher.Matcher,
	sc *scorer.Scorer,
	calc *pricing.Calculator,
	marketplace pricing.Marketplace,
	source ClaimsSource,
	cache *claims.SummaryCache,
	log logger.Logger,
) *Service {
	return &Service{
		store:       store,
		matcher:     m,
		scorer:      sc,
		calculator:  calc,
		marketplace: marketplace,
		source:      source,
		cache:       cache,
		logger:      log.WithFields(map[string]interface{}{"component": "recommend-service"}),
	}
}

// ClaimsSummary returns the (possibly cached) claims summary for a
// destination. It never fails: no source or an unreachable one yields the
// empty summary.
func (s *Service) ClaimsSummary(ctx context.Context, destination string) models.ClaimsSummary {
	start := time.Now()
	defer func() {
		metrics.DecisionDuration.WithLabelValues("claims_summary").Observe(time.Since(start).Seconds())
	}()

	if cached := s.cache.Get(ctx, destination); cached != nil {
		return *cached
	}

	var records []models.ClaimRecord
	if s.source != nil {
		records, _ = s.source.ClaimsByDestination(ctx, destination)
	}
	summary := claims.Summarize(destination, records)

	if summary.HasData() {
		s.cache.Set(ctx, summary)
	}
	return summary
}

// AssessRisk runs the risk model for a trip using the traveler's age and the
// destination's claims history.
func (s *Service) AssessRisk(ctx context.Context, profile *models.TravelerProfile, trip *models.TripAttributes) models.RiskAssessment {
	start := time.Now()
	defer func() {
		metrics.DecisionDuration.WithLabelValues("risk_assessment").Observe(time.Since(start).Seconds())
	}()

	summary := s.ClaimsSummary(ctx, trip.Destination)
	age := 0
	if profile != nil {
		age = profile.Age
	}
	s.logUnclassifiedActivities(trip.Activities)
	return risk.Assess(risk.StatsFromSummary(&summary), trip.Activities, trip.DurationDays(), age, trip.DepartureMonth())
}

// Recommend runs the full pipeline. The only error it returns is a
// malformed trip; every collaborator failure degrades to neutral data.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	requestID := uuid.New().String()
	log := s.logger.WithFields(map[string]interface{}{
		"requestId":   requestID,
		"destination": req.Trip.Destination,
	})

	if err := req.Trip.Validate(); err != nil {
		metrics.RecommendationsServed.WithLabelValues("rejected").Inc()
		log.Warn("trip rejected", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	summary := s.ClaimsSummary(ctx, req.Trip.Destination)

	age := 0
	if req.Profile != nil {
		age = req.Profile.Age
	}
	s.logUnclassifiedActivities(req.Trip.Activities)
	assessment := risk.Assess(
		risk.StatsFromSummary(&summary),
		req.Trip.Activities,
		req.Trip.DurationDays(),
		age,
		req.Trip.DepartureMonth(),
	)

	matches, err := s.matcher.Match(req.Profile, &req.Trip)
	if err != nil {
		metrics.RecommendationsServed.WithLabelValues("rejected").Inc()
		return nil, err
	}

	quotes := s.collectQuotes(ctx, matches, &req.Trip, log)
	ranked := s.scorer.Rank(quotes, &req.Trip, req.Profile, &assessment)

	metrics.RecommendationsServed.WithLabelValues("served").Inc()
	metrics.DecisionDuration.WithLabelValues("recommend").Observe(time.Since(start).Seconds())
	log.Info("recommendations served", map[string]interface{}{
		"matches":         len(matches),
		"recommendations": len(ranked),
		"riskCategory":    string(assessment.RiskCategory),
	})

	return &Response{
		RequestID:       requestID,
		Matches:         matches,
		Risk:            assessment,
		ClaimsSummary:   summary,
		Recommendations: ranked,
	}, nil
}

// logUnclassifiedActivities notes activities the risk table does not know.
// They contribute no risk adjustment.
func (s *Service) logUnclassifiedActivities(activities []string) {
	for _, activity := range activities {
		if risk.ClassifyActivity(activity) == risk.ActivityRiskUnclassified {
			s.logger.Debug("activity not in risk table, ignored", map[string]interface{}{
				"activity": activity,
			})
		}
	}
}

// collectQuotes prices every matched catalog product locally and merges in
// marketplace quotes when a marketplace is wired. A marketplace failure
// leaves the local quotes intact.
func (s *Service) collectQuotes(ctx context.Context, matches []models.ScoredMatch, trip *models.TripAttributes, log logger.Logger) []models.Quote {
	quotes := make([]models.Quote, 0, len(matches))
	for _, match := range matches {
		product, ok := s.store.Product(match.ProductCode)
		if !ok {
			continue
		}
		quotes = append(quotes, s.calculator.QuoteFor(product, trip))
	}

	if s.marketplace != nil {
		external, err := s.marketplace.Quotes(ctx, trip)
		if err != nil {
			log.Warn("marketplace quotes unavailable, using local pricing only", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			quotes = append(quotes, external...)
		}
	}
	return quotes
}
