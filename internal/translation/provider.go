package translation

import (
	"context"
	"errors"
)

// Provider translates free-form text between languages.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
	SupportedLanguages() []string
}

// TranslateRequest describes one translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string // ISO 639-1 (for example: "en", "es")
	TargetLang string
}

// TranslateResponse contains translated text and provider metadata.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderName string
	LatencyMs    int64
}

// Failure classes surfaced by providers. Callers distinguish them with
// errors.Is; neither is retried automatically.
var (
	// ErrNetwork marks transport-level failures reaching the endpoint.
	ErrNetwork = errors.New("translation endpoint unreachable")
	// ErrDecode marks responses that are empty or not in the expected shape.
	ErrDecode = errors.New("translation response malformed")
)
