package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxtier/ctxtier/internal/config"
	"github.com/ctxtier/ctxtier/pkg/catalog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	return NewServer(cfg, catalog.Default(), nil)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleVersion(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/version", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ctxtier-service", resp.Service)
}

func TestHandleClassify(t *testing.T) {
	body := `{
		"entity_count": 6,
		"integration_count": 3,
		"scale": "MEDIUM"
	}`
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/classify", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClassifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "TIER_2", resp.Tier.String())
	assert.Equal(t, 3, resp.Score)
	assert.Len(t, resp.Breakdown, 3)
	require.NotEmpty(t, resp.Modules)
	assert.Equal(t, catalog.CoreModule, resp.Modules[0])
}

func TestHandleClassify_Tier3(t *testing.T) {
	body := `{
		"entity_count": 12,
		"integration_count": 6,
		"scale": "ENTERPRISE",
		"has_compliance": true,
		"is_multi_region": true,
		"has_real_time": true
	}`
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/classify", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClassifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Score)
	assert.Contains(t, resp.Modules, "deployment-patterns")
}

func TestHandleClassify_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "invalid json",
			body:    `{`,
			wantErr: "Invalid request body",
		},
		{
			name:    "missing scale",
			body:    `{"entity_count": 3}`,
			wantErr: "scale is required",
		},
		{
			name:    "unknown scale",
			body:    `{"entity_count": 3, "scale": "GIGANTIC"}`,
			wantErr: "GIGANTIC",
		},
		{
			name:    "negative entities",
			body:    `{"entity_count": -2, "scale": "SMALL"}`,
			wantErr: "entity_count",
		},
		{
			name:    "negative integrations",
			body:    `{"integration_count": -1, "scale": "SMALL"}`,
			wantErr: "integration_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestServer(t), http.MethodPost, "/classify", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}
}

func TestHandleListTiers(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/tiers", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TiersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Thresholds.Tier2)
	assert.Equal(t, 7, resp.Thresholds.Tier3)
	require.Len(t, resp.Tiers, 3)
	for _, tp := range resp.Tiers {
		assert.Equal(t, catalog.CoreModule, tp.Modules[0])
	}
}

func TestHandleTierModules(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/tiers/tier_2/modules", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TierModulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "TIER_2", resp.Tier.String())
	require.Len(t, resp.Modules, 7)
	assert.Equal(t, catalog.CoreModule, resp.Modules[0].ID)
	assert.NotEmpty(t, resp.Modules[0].Description)
}

func TestHandleTierModules_UnknownTier(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/tiers/tier_9/modules", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIKeyAuth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.API.APIKey = "secret"
	s := NewServer(cfg, catalog.Default(), nil)

	// Health is exempt from auth
	rec := doRequest(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Missing key rejected
	rec = doRequest(t, s, http.MethodGet, "/tiers", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid key accepted
	req := httptest.NewRequest(http.MethodGet, "/tiers", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
