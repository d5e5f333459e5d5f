package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/streetsweeper/internal/address"
	"github.com/streetsweeper/internal/cache"
	"github.com/streetsweeper/internal/normalize"
	"github.com/streetsweeper/internal/parser"
)

// DefaultMaxBatch caps the number of addresses in one batch request.
const DefaultMaxBatch = 1000

// ParseObserver is told about every parse the handler performs.
type ParseObserver interface {
	ObserveParse(shape, outcome string)
}

// ParseHandler serves the parse endpoints.
type ParseHandler struct {
	Parser   *parser.Parser
	Cache    cache.Cache
	Defaults normalize.Options
	Metrics  ParseObserver
	MaxBatch int
}

// ParseResult is the parsed form of one input plus its display lines.
type ParseResult struct {
	Input             string           `json:"input"`
	Matched           bool             `json:"matched"`
	Cached            bool             `json:"cached"`
	Intersection      bool             `json:"intersection,omitempty"`
	Address           *address.Address `json:"address,omitempty"`
	Line1             string           `json:"line1,omitempty"`
	Line2             string           `json:"line2,omitempty"`
	StreetAddress1    string           `json:"street_address_1,omitempty"`
	StreetAddress2    string           `json:"street_address_2,omitempty"`
	FullStreetAddress string           `json:"full_street_address,omitempty"`
	FullPostalCode    string           `json:"full_postal_code,omitempty"`
	StateName         string           `json:"state_name,omitempty"`
	StateFIPS         string           `json:"state_fips,omitempty"`
}

// BatchRequest is the body of POST /api/parse/batch.
type BatchRequest struct {
	Addresses                []string `json:"addresses"`
	Shape                    string   `json:"shape,omitempty"`
	AvoidRedundantStreetType *bool    `json:"avoid_redundant_street_type,omitempty"`
}

// BatchResponse lists results in request order.
type BatchResponse struct {
	Total   int           `json:"total"`
	Matched int           `json:"matched"`
	Results []ParseResult `json:"results"`
}

// Parse handles GET /api/parse?q=...&shape=...&avoid_redundant_street_type=...
func (h *ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	text := strings.TrimSpace(query.Get("q"))
	if text == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "query parameter q is required")
		return
	}

	shape, err := parser.ShapeByName(query.Get("shape"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	opts := h.Defaults
	if v := query.Get("avoid_redundant_street_type"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidRequest, "avoid_redundant_street_type must be a boolean")
			return
		}
		opts.AvoidRedundantStreetType = b
	}

	result, err := h.resolve(r.Context(), text, shape, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}
	if !result.Matched {
		writeError(w, http.StatusUnprocessableEntity, CodeNoMatch, fmt.Sprintf("no %s address found in %q", shape, text))
		return
	}
	writeData(w, http.StatusOK, result)
}

// ParseBatch handles POST /api/parse/batch.
func (h *ParseHandler) ParseBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid JSON body")
		return
	}

	limit := h.MaxBatch
	if limit <= 0 {
		limit = DefaultMaxBatch
	}
	if len(req.Addresses) == 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "addresses must not be empty")
		return
	}
	if len(req.Addresses) > limit {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, fmt.Sprintf("at most %d addresses per request", limit))
		return
	}

	shape, err := parser.ShapeByName(req.Shape)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	opts := h.Defaults
	if req.AvoidRedundantStreetType != nil {
		opts.AvoidRedundantStreetType = *req.AvoidRedundantStreetType
	}

	resp := BatchResponse{Results: make([]ParseResult, 0, len(req.Addresses))}
	for _, text := range req.Addresses {
		result, err := h.resolve(r.Context(), strings.TrimSpace(text), shape, opts)
		if err != nil {
			writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
			return
		}
		result.Input = text
		if result.Matched {
			resp.Matched++
		}
		resp.Results = append(resp.Results, result)
	}
	resp.Total = len(resp.Results)

	writeData(w, http.StatusOK, resp)
}

// resolve consults the cache, parses on a miss and stores the outcome.
// Cache failures are logged and otherwise ignored.
func (h *ParseHandler) resolve(ctx context.Context, text string, shape parser.Shape, opts normalize.Options) (ParseResult, error) {
	key := cache.Key{Shape: shape.String(), AvoidRedundantStreetType: opts.AvoidRedundantStreetType, Text: text}

	if h.Cache != nil {
		entry, found, err := h.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("parse cache get failed: %v", err)
		} else if found {
			h.observe(shape, "cached")
			result := h.result(text, entry)
			result.Cached = true
			return result, nil
		}
	}

	a, err := h.Parser.ParseShape(text, shape, opts)
	entry := cache.Entry{Matched: err == nil, Address: a}
	switch {
	case err == nil:
		h.observe(shape, "matched")
	case errors.Is(err, parser.ErrNoMatch):
		h.observe(shape, "no_match")
	default:
		return ParseResult{}, err
	}

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, key, entry); err != nil {
			log.Printf("parse cache set failed: %v", err)
		}
	}
	return h.result(text, entry), nil
}

func (h *ParseHandler) result(text string, e cache.Entry) ParseResult {
	result := ParseResult{Input: text, Matched: e.Matched}
	if !e.Matched {
		return result
	}

	a := e.Address
	result.Address = &a
	result.Intersection = a.IsIntersection()
	result.Line1 = a.Line1()
	result.Line2 = a.Line2()
	result.StreetAddress1 = a.StreetAddress1()
	result.StreetAddress2 = a.StreetAddress2()
	result.FullStreetAddress = a.FullStreetAddress()
	result.FullPostalCode = a.FullPostalCode()
	if a.State != "" {
		tables := h.Parser.Tables()
		result.StateName, _ = tables.StateName(a.State)
		result.StateFIPS, _ = tables.StateFIPS(a.State)
	}
	return result
}

func (h *ParseHandler) observe(shape parser.Shape, outcome string) {
	if h.Metrics != nil {
		h.Metrics.ObserveParse(shape.String(), outcome)
	}
}
