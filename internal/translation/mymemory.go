package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMyMemoryEndpoint points to the public MyMemory lookup API.
const DefaultMyMemoryEndpoint = "https://api.mymemory.translated.net/get"

// MyMemoryProvider translates text with a single GET against a MyMemory-style
// lookup endpoint. One failed attempt surfaces immediately; no retries.
type MyMemoryProvider struct {
	endpoint string
	client   *http.Client
}

// NewMyMemoryProvider builds a provider for the given endpoint. An empty
// endpoint selects the public API.
func NewMyMemoryProvider(endpoint string) *MyMemoryProvider {
	resolved := strings.TrimSpace(endpoint)
	if resolved == "" {
		resolved = DefaultMyMemoryEndpoint
	}
	return &MyMemoryProvider{
		endpoint: resolved,
		client:   &http.Client{},
	}
}

func (p *MyMemoryProvider) Name() string {
	return "mymemory"
}

func (p *MyMemoryProvider) SupportedLanguages() []string {
	return SupportedLanguageCodes()
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText *string `json:"translatedText"`
	} `json:"responseData"`
}

func (p *MyMemoryProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("mymemory provider is nil")
	}
	sourceLang := normalizeLangCode(req.SourceLang)
	targetLang := normalizeLangCode(req.TargetLang)
	if err := ValidatePair(sourceLang, targetLang); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("q", req.Text)
	query.Set("langpair", sourceLang+"|"+targetLang)
	requestURL := p.endpoint + "?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}

	started := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: endpoint status %d", ErrNetwork, resp.StatusCode)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty response body", ErrDecode)
	}

	var parsed myMemoryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if parsed.ResponseData.TranslatedText == nil {
		return nil, fmt.Errorf("%w: response missing translatedText", ErrDecode)
	}

	// The provider result is returned verbatim, no trimming or normalization.
	return &TranslateResponse{
		Text:         *parsed.ResponseData.TranslatedText,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}
