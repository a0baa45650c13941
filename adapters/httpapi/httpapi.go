// Package httpapi exposes parse, validate, render, and document-store
// operations over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/artpar/authorkit/adapters/store"
	"github.com/artpar/authorkit/app"
	"github.com/artpar/authorkit/core/parser"
	"github.com/artpar/authorkit/core/plugin"
)

// maxBodySize caps request bodies at 1 MiB; author files are small.
const maxBodySize = 1 << 20

// Handler provides the HTTP API endpoints.
type Handler struct {
	svc      *app.Service
	logger   zerolog.Logger
	gatherer prometheus.Gatherer
}

// New creates a handler. A nil gatherer disables the /metrics endpoint.
func New(svc *app.Service, logger zerolog.Logger, gatherer prometheus.Gatherer) *Handler {
	return &Handler{svc: svc, logger: logger, gatherer: gatherer}
}

// Router builds the API route tree.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if h.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", h.handleParse)
		r.Post("/validate", h.handleValidate)
		r.Post("/render/{format}", h.handleRender)
		r.Post("/documents", h.handleCreateDocument)
		r.Get("/documents", h.handleListDocuments)
		r.Get("/documents/{id}", h.handleGetDocument)
		r.Delete("/documents/{id}", h.handleDeleteDocument)
	})

	return r
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	source, ok := h.readBody(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.Parse(source)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": doc})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	source, ok := h.readBody(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.Parse(source)
	if err != nil {
		h.writeError(w, err)
		return
	}
	warnings, err := h.svc.Validate(doc)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	source, ok := h.readBody(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.Parse(source)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out, err := h.svc.Render(doc, format, nil)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if h.svc.Store() == nil {
		h.writeErrorMsg(w, http.StatusNotImplemented, "internal", "document store not configured")
		return
	}
	source, ok := h.readBody(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "author.txt"
	}
	rec, err := h.svc.ParseAndStore(r.Context(), name, source)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if h.svc.Store() == nil {
		h.writeErrorMsg(w, http.StatusNotImplemented, "internal", "document store not configured")
		return
	}
	records, err := h.svc.Store().List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if records == nil {
		records = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": records})
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if h.svc.Store() == nil {
		h.writeErrorMsg(w, http.StatusNotImplemented, "internal", "document store not configured")
		return
	}
	rec, err := h.svc.Store().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if h.svc.Store() == nil {
		h.writeErrorMsg(w, http.StatusNotImplemented, "internal", "document store not configured")
		return
	}
	if err := h.svc.Store().Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBody reads the raw author-file text from the request.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.writeErrorMsg(w, http.StatusBadRequest, "internal", "read request body")
		return "", false
	}
	if len(data) == 0 {
		h.writeErrorMsg(w, http.StatusBadRequest, "internal", "empty request body")
		return "", false
	}
	return string(data), true
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
	Text  string `json:"text,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var serr *parser.StructuralError
	if errors.As(err, &serr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Kind:  "structural",
			Error: err.Error(),
			Line:  serr.Line,
			Text:  serr.Text,
		})
		return
	}

	var ferr *plugin.FormatUnavailableError
	if errors.As(err, &ferr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "format-unavailable", Error: err.Error()})
		return
	}

	var perr *plugin.Error
	if errors.As(err, &perr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "plugin", Error: err.Error()})
		return
	}

	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Kind: "not-found", Error: err.Error()})
		return
	}

	h.logger.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Error: err.Error()})
}

func (h *Handler) writeErrorMsg(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Kind: kind, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
