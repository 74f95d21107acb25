// Package api provides the sanad REST API server: quote validation and
// document processing over HTTP, with a WebSocket stream of validation
// events.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tartil-labs/sanad/core/errors"
	"github.com/tartil-labs/sanad/core/llm"
	"github.com/tartil-labs/sanad/internal/logging"
)

// maxBodySize bounds request bodies; documents are text, not uploads.
const maxBodySize = 1 << 20

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// TextRequest is the body for validate, detect, and process calls.
type TextRequest struct {
	Text string `json:"text"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Verses  int    `json:"verses"`
	Surahs  int    `json:"surahs"`
}

var startTime = time.Now()

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"name":    "sanad API",
		"version": Version,
		"endpoints": []string{
			"GET /health",
			"POST /v1/validate",
			"POST /v1/detect",
			"POST /v1/process",
			"GET /v1/search?q=...&limit=10",
			"GET /v1/verses/{surah}/{ayah}[-{end}]",
			"GET /v1/surahs",
			"GET /v1/surahs/{number}",
			"GET /v1/prompt?format=xml",
			"WS /v1/stream",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	respond(w, http.StatusOK, HealthInfo{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(startTime).String(),
		Verses:  len(s.matcher.Index().Verses()),
		Surahs:  len(s.matcher.Surahs()),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeText(w, r)
	if !ok {
		return
	}

	res := s.matcher.Validate(req.Text)
	logging.QuoteValidated(string(res.MatchType), res.Confidence, res.Reference())
	s.hub.Broadcast(Event{
		Type:       "quote",
		ID:         NewEventID(),
		Reference:  res.Reference(),
		MatchType:  string(res.MatchType),
		Confidence: res.Confidence,
		Valid:      res.IsValid,
	})
	respond(w, http.StatusOK, res)
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeText(w, r)
	if !ok {
		return
	}
	res := s.processor.DetectAndValidate(req.Text)
	s.broadcastResult(res)
	respond(w, http.StatusOK, res)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeText(w, r)
	if !ok {
		return
	}

	res := s.processor.Process(req.Text)
	corrected := 0
	for _, q := range res.Quotes {
		if q.WasCorrected {
			corrected++
		}
	}
	logging.DocumentProcessed(len(res.Quotes), corrected, res.AllValid)
	s.broadcastResult(res)
	respond(w, http.StatusOK, res)
}

func (s *Server) broadcastResult(res llm.Result) {
	id := NewEventID()
	for _, q := range res.Quotes {
		s.hub.Broadcast(Event{
			Type:       "quote",
			ID:         id,
			Reference:  q.Validation.Reference(),
			MatchType:  string(q.Validation.MatchType),
			Confidence: q.Validation.Confidence,
			Valid:      q.IsValid,
		})
	}
	s.hub.Broadcast(Event{
		Type:    "document",
		ID:      id,
		Valid:   res.AllValid,
		Message: fmt.Sprintf("%d quotes", len(res.Quotes)),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing q parameter")
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "limit must be 1-100")
			return
		}
		limit = n
	}

	results := s.matcher.Search(q, limit)
	respondList(w, results, len(results))
}

// handleVerses serves /v1/verses/{surah}/{ayah} and
// /v1/verses/{surah}/{start}-{end}.
func (s *Server) handleVerses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/v1/verses/"), "/")
	if len(parts) != 2 {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Expected /v1/verses/{surah}/{ayah}")
		return
	}
	surah, err := strconv.Atoi(parts[0])
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Bad surah number")
		return
	}

	if start, end, ok := strings.Cut(parts[1], "-"); ok {
		s.serveVerseRange(w, surah, start, end)
		return
	}
	ayah, err := strconv.Atoi(parts[1])
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Bad ayah number")
		return
	}

	v, err := s.matcher.GetVerse(surah, ayah)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	respond(w, http.StatusOK, v)
}

func (s *Server) serveVerseRange(w http.ResponseWriter, surah int, startRaw, endRaw string) {
	start, err1 := strconv.Atoi(startRaw)
	end, err2 := strconv.Atoi(endRaw)
	if err1 != nil || err2 != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Bad ayah range")
		return
	}
	verses, err := s.matcher.GetVerseRange(surah, start, end)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	respondList(w, verses, len(verses))
}

// handleSurahs serves /v1/surahs and /v1/surahs/{number}.
func (s *Server) handleSurahs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/v1/surahs")
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		surahs := s.matcher.Surahs()
		respondList(w, surahs, len(surahs))
		return
	}

	number, err := strconv.Atoi(rest)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Bad surah number")
		return
	}
	surah, err := s.matcher.Surah(number)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"surah":  surah,
		"verses": s.matcher.SurahVerses(number),
	})
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}
	format := llm.TagFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = llm.TagXML
	}
	if !format.IsValid() {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Unknown tag format")
		return
	}
	respond(w, http.StatusOK, map[string]string{
		"format": string(format),
		"prompt": llm.SystemPrompt(format),
	})
}

func decodeText(w http.ResponseWriter, r *http.Request) (TextRequest, bool) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return TextRequest{}, false
	}
	var req TextRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Malformed JSON body")
		return TextRequest{}, false
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing text field")
		return TextRequest{}, false
	}
	return req, true
}

func respondLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, errors.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	writeResponse(w, status, APIResponse{
		Success: true,
		Data:    data,
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}

func respondList(w http.ResponseWriter, data interface{}, total int) {
	writeResponse(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeResponse(w, status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}

func writeResponse(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}
