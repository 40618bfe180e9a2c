package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/inquiry"
	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/search"
)

const maxFormBytes = 64 << 10

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Mode    search.Mode     `json:"mode"`
	Summary string          `json:"summary"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results"`
}

// RouteInfo is one entry of GET /api/routes.
type RouteInfo struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	OGType      string   `json:"ogType"`
	Canonical   string   `json:"canonical"`
	NoIndex     bool     `json:"noindex,omitempty"`
}

// ValidationResponse is returned with 422 for rejected forms.
type ValidationResponse struct {
	Error  string               `json:"error"`
	Fields []inquiry.FieldError `json:"fields"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := search.Query{Text: q.Get("q"), Mode: search.ParseMode(q.Get("mode"))}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError("limit must be a non-negative integer").
				WithContext("limit", raw).Build())
			return
		}
		query.Limit = n
	}

	var results []search.Result
	if idx := s.content.Load().Index; idx != nil {
		results = idx.Search(query)
	}
	if results == nil {
		results = []search.Result{}
	}
	s.recorder.IncSearchQuery(string(query.Mode), len(results))

	text := strings.TrimSpace(query.Text)
	_ = writeJSONPretty(w, r, http.StatusOK, SearchResponse{
		Query:   text,
		Mode:    query.Mode,
		Summary: search.Summary(text, len(results)),
		Count:   len(results),
		Results: results,
	})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	table := s.content.Load().Table
	out := []RouteInfo{}
	if table != nil {
		for _, rt := range table.Routes() {
			out = append(out, routeInfo(rt))
		}
	}
	_ = writeJSONPretty(w, r, http.StatusOK, out)
}

func routeInfo(rt routes.Route) RouteInfo {
	return RouteInfo{
		Path:        rt.Path,
		Title:       rt.Title,
		Description: rt.Description,
		Keywords:    rt.Keywords,
		OGType:      string(rt.OGType),
		Canonical:   rt.Canonical(),
		NoIndex:     rt.NoIndex,
	}
}

func (s *Server) handleInquiryOptions(w http.ResponseWriter, r *http.Request) {
	if s.inquiries == nil {
		s.writeInquiriesDisabled(w, r)
		return
	}
	_ = writeJSONPretty(w, r, http.StatusOK, s.inquiries.Catalog())
}

func (s *Server) handleSubmitInquiry(w http.ResponseWriter, r *http.Request) {
	if s.inquiries == nil {
		s.writeInquiriesDisabled(w, r)
		return
	}
	kind, err := inquiry.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, ferrors.NotFoundError("unknown inquiry form").
			WithContext("kind", chi.URLParam(r, "kind")).Build())
		return
	}
	form, err := inquiry.NewForm(kind)
	if err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to create form").Build())
		return
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxFormBytes))
	if err := dec.Decode(form); err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid JSON body").Build())
		return
	}

	receipt, err := s.inquiries.Submit(r.Context(), form)
	if err != nil {
		var verrs inquiry.ValidationErrors
		if errors.As(err, &verrs) {
			_ = writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Error: "validation failed", Fields: verrs})
			return
		}
		s.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusCreated, receipt)
}

func (s *Server) handleListInquiries(w http.ResponseWriter, r *http.Request) {
	if s.inquiries == nil {
		s.writeInquiriesDisabled(w, r)
		return
	}
	var kind inquiry.Kind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k, err := inquiry.ParseKind(raw)
		if err != nil {
			s.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError("unknown inquiry kind").WithContext("kind", raw).Build())
			return
		}
		kind = k
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	list, err := s.inquiries.List(r.Context(), kind, limit)
	if err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if list == nil {
		list = []inquiry.Inquiry{}
	}
	_ = writeJSONPretty(w, r, http.StatusOK, list)
}

func (s *Server) writeInquiriesDisabled(w http.ResponseWriter, r *http.Request) {
	s.errorAdapter.WriteErrorResponse(w, r, ferrors.RuntimeError("inquiries are not available").Build())
}
