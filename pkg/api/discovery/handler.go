// Package discovery exposes the document discovery pipeline over HTTP.
package discovery

import (
	"encoding/json"
	"net/http"

	core "reportfinder/pkg/core/discovery"
	"reportfinder/pkg/core/queryparse"
)

// SearchRequest is the JSON body of POST /api/discovery/search. Either a
// free-form query or a structured company request is accepted.
type SearchRequest struct {
	Query      string   `json:"query,omitempty"`
	Company    string   `json:"company,omitempty"`
	DocTypes   []string `json:"doc_types,omitempty"`
	StartYear  int      `json:"start_year,omitempty"`
	EndYear    int      `json:"end_year,omitempty"`
	Quarters   []string `json:"quarters,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
	SourceURL  string   `json:"source_url,omitempty"`
}

// Handler holds dependencies for discovery endpoints
type Handler struct {
	Agent  *core.Agent
	Parser *queryparse.Parser
}

// NewHandler creates a new discovery handler
func NewHandler(agent *core.Agent, parser *queryparse.Parser) *Handler {
	return &Handler{Agent: agent, Parser: parser}
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	discReq, ok := h.buildRequest(r, req)
	if !ok {
		http.Error(w, "Request must name a company or carry a query", http.StatusBadRequest)
		return
	}

	result, err := h.Agent.Discover(r.Context(), discReq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Ambiguity and empty results are successful outcomes with structured
	// payloads, not errors.
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) buildRequest(r *http.Request, req SearchRequest) (core.Request, bool) {
	if req.Query != "" {
		parsed := h.Parser.Parse(r.Context(), req.Query)
		if parsed.Company == "" && parsed.UserURL == "" {
			return core.Request{}, false
		}
		return core.Request{
			Company:    parsed.Company,
			DocTypes:   parsed.DocTypes,
			StartYear:  parsed.StartYear,
			EndYear:    parsed.EndYear,
			Quarters:   parsed.Quarters,
			MaxResults: req.MaxResults,
			SourceURL:  parsed.UserURL,
		}, true
	}

	if req.Company == "" {
		return core.Request{}, false
	}
	return core.Request{
		Company:    req.Company,
		DocTypes:   req.DocTypes,
		StartYear:  req.StartYear,
		EndYear:    req.EndYear,
		Quarters:   req.Quarters,
		MaxResults: req.MaxResults,
		SourceURL:  req.SourceURL,
	}, true
}
