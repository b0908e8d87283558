package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ctxtier/ctxtier/pkg/tier"
)

// version is set via -ldflags at build time
var version = "dev"

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
}

// Response types

// HealthResponse is the response for /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionResponse is the response for /version.
type VersionResponse struct {
	Version string `json:"version"`
	Service string `json:"service"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ClassifyRequest is the request body for /classify.
type ClassifyRequest struct {
	EntityCount      int    `json:"entity_count"`
	IntegrationCount int    `json:"integration_count"`
	Scale            string `json:"scale"`
	HasCompliance    bool   `json:"has_compliance"`
	IsMultiRegion    bool   `json:"is_multi_region"`
	HasRealTime      bool   `json:"has_real_time"`
}

// ClassifyResponse is the response for /classify.
type ClassifyResponse struct {
	Tier      tier.Tier           `json:"tier"`
	Score     int                 `json:"score"`
	Breakdown []tier.Contribution `json:"breakdown"`
	Modules   []string            `json:"modules"`
}

// ThresholdsResponse describes the score boundaries between tiers.
type ThresholdsResponse struct {
	Tier2 int `json:"tier_2"`
	Tier3 int `json:"tier_3"`
}

// TierPlanResponse is one tier with its context-module load plan.
type TierPlanResponse struct {
	Tier    tier.Tier `json:"tier"`
	Modules []string  `json:"modules"`
}

// TiersResponse is the response for /tiers.
type TiersResponse struct {
	Thresholds ThresholdsResponse `json:"thresholds"`
	Tiers      []TierPlanResponse `json:"tiers"`
}

// ModuleResponse represents a context module in API responses.
type ModuleResponse struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// TierModulesResponse is the response for /tiers/{tier}/modules.
type TierModulesResponse struct {
	Tier    tier.Tier        `json:"tier"`
	Modules []ModuleResponse `json:"modules"`
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version: version,
		Service: "ctxtier-service",
	})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Scale == "" {
		writeError(w, http.StatusBadRequest, "scale is required")
		return
	}

	scale, err := tier.ParseScale(req.Scale)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inputs, err := tier.NewInputs(
		req.EntityCount,
		req.IntegrationCount,
		scale,
		req.HasCompliance,
		req.IsMultiRegion,
		req.HasRealTime,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := tier.Classify(inputs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ClassifyResponse{
		Tier:      result.Tier,
		Score:     result.Score,
		Breakdown: result.Breakdown,
		Modules:   s.catalog.ModulesFor(result.Tier),
	})
}

func (s *Server) handleListTiers(w http.ResponseWriter, r *http.Request) {
	response := TiersResponse{
		Thresholds: ThresholdsResponse{
			Tier2: tier.Tier2Threshold,
			Tier3: tier.Tier3Threshold,
		},
	}

	for _, t := range tier.Tiers() {
		response.Tiers = append(response.Tiers, TierPlanResponse{
			Tier:    t,
			Modules: s.catalog.ModulesFor(t),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTierModules(w http.ResponseWriter, r *http.Request) {
	t, err := tier.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	modules := s.catalog.Modules(t)
	response := TierModulesResponse{
		Tier:    t,
		Modules: make([]ModuleResponse, 0, len(modules)),
	}
	for _, m := range modules {
		response.Modules = append(response.Modules, ModuleResponse{
			ID:          m.ID,
			Description: m.Description,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
