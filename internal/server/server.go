// Package server is the thin HTTP binding over the recommendation service.
// Handlers only marshal core types; no business logic lives here.
package server

import (
	"errors"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	errs "insurance-advisor/internal/common/errors"
	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/common/observability"
	"insurance-advisor/internal/models"
	"insurance-advisor/internal/recommend"
)

type Server struct {
	service *recommend.Service
	obs     *observability.Observability
	logger  logger.Logger
}

func New(service *recommend.Service, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		service: service,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "http-server"}),
	}
}

// Handler routes requests. fasthttp runs this concurrently per connection;
// all downstream state is read-only or request-scoped.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case "/v1/recommendations":
		s.requirePost(ctx, s.handleRecommendations)
	case "/v1/risk-assessment":
		s.requirePost(ctx, s.handleRiskAssessment)
	case "/v1/claims-summary":
		s.requirePost(ctx, s.handleClaimsSummary)
	case "/healthz":
		s.handleHealth(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}

	s.obs.RecordRequest(ctx, path, strconv.Itoa(ctx.Response.StatusCode()))
	s.obs.RecordDuration(ctx, path, time.Since(start))
}

func (s *Server) requirePost(ctx *fasthttp.RequestCtx, next func(*fasthttp.RequestCtx)) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	next(ctx)
}

func (s *Server) handleRecommendations(ctx *fasthttp.RequestCtx) {
	var req recommend.Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.service.Recommend(ctx, req)
	if err != nil {
		var malformed *models.MalformedTripError
		if errors.As(err, &malformed) {
			writeError(ctx, fasthttp.StatusBadRequest, malformed.Error())
			return
		}
		s.logger.Error("recommendation failed", map[string]interface{}{"error": err.Error()})
		writeError(ctx, errs.HTTPStatus(err), "internal error")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

type riskRequest struct {
	Profile *models.TravelerProfile `json:"profile,omitempty"`
	Trip    models.TripAttributes   `json:"trip"`
}

func (s *Server) handleRiskAssessment(ctx *fasthttp.RequestCtx) {
	var req riskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Trip.Validate(); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	assessment := s.service.AssessRisk(ctx, req.Profile, &req.Trip)
	writeJSON(ctx, fasthttp.StatusOK, assessment)
}

type claimsSummaryRequest struct {
	Destination string `json:"destination"`
}

func (s *Server) handleClaimsSummary(ctx *fasthttp.RequestCtx) {
	var req claimsSummaryRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Destination == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "destination is required")
		return
	}

	summary := s.service.ClaimsSummary(ctx, req.Destination)
	writeJSON(ctx, fasthttp.StatusOK, summary)
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(body); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}
