package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/artpar/authorkit/adapters/store"
	"github.com/artpar/authorkit/app"
	"github.com/artpar/authorkit/core/plugin"
	"github.com/artpar/authorkit/plugins"
)

func newTestHandler(t *testing.T, withStore bool) *Handler {
	t.Helper()

	reg := plugin.NewRegistry(zerolog.Nop())
	if err := plugins.RegisterDefaults(reg); err != nil {
		t.Fatalf("RegisterDefaults() error = %v", err)
	}

	opts := app.Options{Logger: zerolog.Nop(), Registry: reg}
	if withStore {
		docs, err := store.Open(":memory:")
		if err != nil {
			t.Fatalf("store.Open() error = %v", err)
		}
		t.Cleanup(func() { docs.Close() })
		if err := docs.Init(context.Background()); err != nil {
			t.Fatalf("store.Init() error = %v", err)
		}
		opts.Store = docs
	}

	return New(app.New(opts), zerolog.Nop(), nil)
}

func doRequest(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandler_Parse(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, false), http.MethodPost, "/v1/parse", "Name: Ada\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Document map[string]any `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Document["Name"] != "Ada" {
		t.Errorf("Name = %v", resp.Document["Name"])
	}
}

func TestHandler_Parse_StructuralError(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, false), http.MethodPost, "/v1/parse", "no colon here\n")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Kind != "structural" || resp.Line != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandler_Parse_EmptyBody(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, false), http.MethodPost, "/v1/parse", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_Validate(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, false), http.MethodPost, "/v1/validate", "Name: Ada\nBio:\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("warnings = %v, want empty-value warning for Bio", resp.Warnings)
	}
}

func TestHandler_Render(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, false), http.MethodPost, "/v1/render/yaml", "Name: Ada\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Name: Ada") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandler_Render_UnknownFormat(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, false), http.MethodPost, "/v1/render/csv", "Name: Ada\n")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "csv") {
		t.Error("error must name the requested format")
	}
}

func TestHandler_Documents(t *testing.T) {
	h := newTestHandler(t, true)

	rec := doRequest(t, h, http.MethodPost, "/v1/documents?name=ada.txt", "Name: Ada\n")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/documents/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/documents", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodDelete, "/v1/documents/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/documents/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestHandler_Documents_NoStore(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, false), http.MethodPost, "/v1/documents", "Name: Ada\n")
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestHandler_Healthz(t *testing.T) {
	rec := doRequest(t, newTestHandler(t, false), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
