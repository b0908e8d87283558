// Package mcp implements the Model Context Protocol (MCP) for
// ctxtier-service. MCP lets AI assistants call the tier classifier and the
// context-module catalog as tools, over HTTP (this handler) or stdio
// (Server).
package mcp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ctxtier/ctxtier/pkg/catalog"
	"github.com/ctxtier/ctxtier/pkg/tier"
)

// JSON-RPC message types
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCP Protocol types
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

type ServerCapabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type ToolsListResult struct {
	Tools []Tool `json:"tools"`
}

type CallToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Handler handles MCP protocol requests over HTTP.
type Handler struct {
	catalog *catalog.Catalog
	version string
}

// NewHandler creates a new MCP handler.
func NewHandler(cat *catalog.Catalog, version string) *Handler {
	return &Handler{
		catalog: cat,
		version: version,
	}
}

// ServeHTTP handles HTTP requests for MCP.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Handle SSE endpoint
	if strings.HasSuffix(r.URL.Path, "/sse") {
		h.handleSSE(w, r)
		return
	}

	// Handle JSON-RPC over HTTP POST
	if r.Method == http.MethodPost {
		h.handleJSONRPC(w, r)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// handleJSONRPC handles JSON-RPC requests over HTTP POST.
func (h *Handler) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, nil, -32700, "Parse error", nil)
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, nil, -32700, "Parse error", nil)
		return
	}

	response := h.handleRequest(&req)
	h.writeResponse(w, response)
}

// handleSSE handles Server-Sent Events for MCP streaming.
// Per MCP spec: GET /sse returns endpoint event, then client POSTs to that endpoint.
func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.handleSSEConnect(w, r)
		return
	}
	if r.Method == http.MethodPost {
		h.handleSSEMessage(w, r)
		return
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// handleSSEConnect handles the initial SSE connection (GET /mcp/sse).
func (h *Handler) handleSSEConnect(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Send endpoint event - client should POST messages here
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	endpoint := fmt.Sprintf("%s://%s/mcp/sse", scheme, r.Host)
	fmt.Fprintf(w, "event: endpoint\ndata: %s\n\n", endpoint)
	flusher.Flush()

	// Keep the connection alive with periodic pings
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

// handleSSEMessage handles POST requests with JSON-RPC messages.
func (h *Handler) handleSSEMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, nil, -32700, "Parse error", nil)
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, nil, -32700, "Parse error", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	response := h.handleRequest(&req)
	data, _ := json.Marshal(response)

	fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
}

// handleRequest processes a single JSON-RPC request.
func (h *Handler) handleRequest(req *Request) *Response {
	switch req.Method {
	case "initialize":
		return h.handleInitialize(req)
	case "initialized":
		return h.handleInitialized(req)
	case "tools/list":
		return h.handleToolsList(req)
	case "tools/call":
		return h.handleToolsCall(req)
	case "ping":
		return h.handlePing(req)
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &RPCError{
				Code:    -32601,
				Message: "Method not found",
			},
		}
	}
}

func (h *Handler) handleInitialize(req *Request) *Response {
	result := InitializeResult{
		ProtocolVersion: "2024-11-05",
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{
				ListChanged: false,
			},
		},
		ServerInfo: ServerInfo{
			Name:    "ctxtier-service",
			Version: h.version,
		},
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func (h *Handler) handleInitialized(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{},
	}
}

func (h *Handler) handlePing(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{},
	}
}

func (h *Handler) handleToolsList(req *Request) *Response {
	tools := []Tool{
		{
			Name:        "classify_project",
			Description: "Classify a planned application into a complexity tier and return the context modules to load",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"entity_count": {
						"type": "integer",
						"description": "Number of domain entities the application will have"
					},
					"integration_count": {
						"type": "integer",
						"description": "Number of external systems to integrate"
					},
					"scale": {
						"type": "string",
						"description": "Deployment scale: SMALL, MEDIUM, or ENTERPRISE"
					},
					"has_compliance": {
						"type": "boolean",
						"description": "Regulatory requirements apply"
					},
					"is_multi_region": {
						"type": "boolean",
						"description": "Deployment spans more than one region"
					},
					"has_real_time": {
						"type": "boolean",
						"description": "Push or streaming features required"
					}
				},
				"required": ["scale"]
			}`),
		},
		{
			Name:        "context_modules",
			Description: "List the context modules loaded for a complexity tier, in load order",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"tier": {
						"type": "string",
						"description": "Tier name: TIER_1, TIER_2, or TIER_3"
					}
				},
				"required": ["tier"]
			}`),
		},
		{
			Name:        "tier_thresholds",
			Description: "Show the scoring rubric and the score thresholds between tiers",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {},
				"required": []
			}`),
		},
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  ToolsListResult{Tools: tools},
	}
}

func (h *Handler) handleToolsCall(req *Request) *Response {
	var params CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &RPCError{
				Code:    -32602,
				Message: "Invalid params",
			},
		}
	}

	var result ToolResult
	switch params.Name {
	case "classify_project":
		result = h.toolClassify(params.Arguments)
	case "context_modules":
		result = h.toolContextModules(params.Arguments)
	case "tier_thresholds":
		result = textResult(formatThresholds())
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &RPCError{
				Code:    -32602,
				Message: fmt.Sprintf("Unknown tool: %s", params.Name),
			},
		}
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func (h *Handler) toolClassify(args map[string]interface{}) ToolResult {
	scale, err := tier.ParseScale(argString(args, "scale"))
	if err != nil {
		return errorResult(err.Error())
	}

	inputs, err := tier.NewInputs(
		argInt(args, "entity_count"),
		argInt(args, "integration_count"),
		scale,
		argBool(args, "has_compliance"),
		argBool(args, "is_multi_region"),
		argBool(args, "has_real_time"),
	)
	if err != nil {
		return errorResult(err.Error())
	}

	result, err := tier.Classify(inputs)
	if err != nil {
		return errorResult(err.Error())
	}

	return textResult(formatClassification(result, h.catalog.ModulesFor(result.Tier)))
}

func (h *Handler) toolContextModules(args map[string]interface{}) ToolResult {
	t, err := tier.ParseTier(argString(args, "tier"))
	if err != nil {
		return errorResult(err.Error())
	}

	return textResult(formatModules(t, h.catalog.Modules(t)))
}

// Argument helpers. JSON numbers decode as float64 in a generic map.

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

func argBool(args map[string]interface{}, key string) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}

func textResult(text string) ToolResult {
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

func errorResult(text string) ToolResult {
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
		IsError: true,
	}
}

func (h *Handler) writeResponse(w http.ResponseWriter, response *Response) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) writeError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	h.writeResponse(w, &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	})
}
