package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lexbrit/traduko/internal/history"
	"github.com/lexbrit/traduko/internal/service"
	"github.com/lexbrit/traduko/internal/translation"
)

type fakeProvider struct {
	text string
	err  error
}

func (p *fakeProvider) Translate(_ context.Context, req translation.TranslateRequest) (*translation.TranslateResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &translation.TranslateResponse{
		Text:         p.text,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: "fake",
	}, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) SupportedLanguages() []string {
	return translation.SupportedLanguageCodes()
}

func newTestEcho(t *testing.T, provider *fakeProvider) (*echo.Echo, history.Store) {
	t.Helper()

	registry := translation.NewRegistry("fake")
	if err := registry.Register(provider); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	store := history.NewMemoryStore()
	translator := service.NewTranslator(registry, store, zerolog.Nop(), nil)

	srv := NewServer(translator, zerolog.Nop(), Options{})
	e := echo.New()
	e.HTTPErrorHandler = srv.httpErrorHandler
	srv.registerRoutes(e)
	return e, store
}

func decodeJSend(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	return resp
}

func TestHandleTranslate_Success(t *testing.T) {
	t.Parallel()

	e, _ := newTestEcho(t, &fakeProvider{text: "hola"})

	req := httptest.NewRequest(http.MethodPost, "/api/translate",
		strings.NewReader(`{"text":"hello","source_lang":"en","target_lang":"es"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	resp := decodeJSend(t, rec)
	if resp["status"] != "success" {
		t.Fatalf("expected jsend success, got %v", resp)
	}
	data := resp["data"].(map[string]any)
	if data["translated_text"] != "hola" {
		t.Fatalf("expected translated text hola, got %v", data["translated_text"])
	}
	records := data["history"].([]any)
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
}

func TestHandleTranslate_ValidationFailure(t *testing.T) {
	t.Parallel()

	e, _ := newTestEcho(t, &fakeProvider{text: "hola"})

	cases := []string{
		`{"target_lang":"es"}`,
		`{"text":"hello","target_lang":"pt"}`,
		`{"text":`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestHandleTranslate_ProviderFailure(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{err: fmt.Errorf("%w: connection refused", translation.ErrNetwork)}
	e, store := newTestEcho(t, provider)

	req := httptest.NewRequest(http.MethodPost, "/api/translate",
		strings.NewReader(`{"text":"hello","source_lang":"en","target_lang":"es"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	records, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list store: %v", err)
	}
	if len(records) != 0 {
		t.Fatal("failed translation must not be persisted")
	}
}

func TestHandleHistoryAndClear(t *testing.T) {
	t.Parallel()

	e, store := newTestEcho(t, &fakeProvider{text: "hola"})
	ctx := context.Background()

	if err := store.Append(ctx, "a", "x"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if err := store.Append(ctx, "b", "y"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", rec.Code)
	}
	data := decodeJSend(t, rec)["data"].(map[string]any)
	records := data["history"].([]any)
	if len(records) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(records))
	}
	first := records[0].(map[string]any)
	if first["original"] != "b" {
		t.Fatalf("expected newest record first, got %v", first)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/history", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", rec.Code)
	}
	data = decodeJSend(t, rec)["data"].(map[string]any)
	if len(data["history"].([]any)) != 0 {
		t.Fatal("expected empty history after clear")
	}
}

func TestHandleLanguages(t *testing.T) {
	t.Parallel()

	e, _ := newTestEcho(t, &fakeProvider{text: "hola"})

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeJSend(t, rec)["data"].(map[string]any)
	languages := data["languages"].([]any)
	if len(languages) != 5 {
		t.Fatalf("expected the 5-language set, got %d entries", len(languages))
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	e, _ := newTestEcho(t, &fakeProvider{text: "hola"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
