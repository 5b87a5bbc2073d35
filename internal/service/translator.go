// Package service orchestrates the translate-and-history flow: provider
// call, history persistence, then a history re-read that refreshes the view.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lexbrit/traduko/internal/history"
	"github.com/lexbrit/traduko/internal/langdetect"
	"github.com/lexbrit/traduko/internal/observability"
	"github.com/lexbrit/traduko/internal/translation"
)

// ViewState holds the UI-bound fields published by the service. It is
// mutated only through the service; callers get copies via Snapshot.
type ViewState struct {
	TranslatedText string           `json:"translated_text"`
	History        []history.Record `json:"history"`
	LastError      string           `json:"last_error,omitempty"`
}

// TranslateResult is the outcome of one translate request.
type TranslateResult struct {
	TranslatedText string           `json:"translated_text"`
	SourceLang     string           `json:"source_lang"`
	TargetLang     string           `json:"target_lang"`
	Provider       string           `json:"provider"`
	History        []history.Record `json:"history"`
}

// Translator coordinates the translation provider and the history store.
//
// Within one translate request the provider call strictly precedes the
// history append, which strictly precedes the history re-read. Across
// concurrent requests no mutual exclusion is enforced; the last re-read to
// complete wins the view.
type Translator struct {
	registry *translation.Registry
	store    history.Store
	logger   zerolog.Logger
	metrics  *observability.Metrics

	mu         sync.RWMutex
	view       ViewState
	subscriber func(ViewState)
}

func NewTranslator(registry *translation.Registry, store history.Store, logger zerolog.Logger, metrics *observability.Metrics) *Translator {
	return &Translator{
		registry: registry,
		store:    store,
		logger:   logger,
		metrics:  metrics,
	}
}

// Subscribe registers a callback invoked after every view publication.
// The callback receives a copy and must not block for long.
func (t *Translator) Subscribe(fn func(ViewState)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscriber = fn
}

// Snapshot returns a copy of the current view state.
func (t *Translator) Snapshot() ViewState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.copyViewLocked()
}

// Failed reports whether the most recent operation left a failure signal.
func (t *Translator) Failed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.view.LastError != ""
}

// Translate runs one translate request: provider call, then append, then a
// history re-read. The translated text is published as soon as the provider
// succeeds, independent of persistence. A provider failure leaves the view's
// translated text unchanged and skips persistence entirely.
func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang, providerName string) (*TranslateResult, error) {
	if t == nil || t.store == nil {
		return nil, fmt.Errorf("translator is not initialized")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}

	requestID := uuid.NewString()
	logger := t.logger.With().Str("request_id", requestID).Logger()

	resolvedSource, err := t.resolveSourceLang(text, sourceLang)
	if err != nil {
		t.publishFailure(err)
		return nil, err
	}

	provider, err := t.registry.Provider(providerName)
	if err != nil {
		t.publishFailure(err)
		return nil, err
	}

	started := time.Now()
	resp, err := provider.Translate(ctx, translation.TranslateRequest{
		Text:       text,
		SourceLang: resolvedSource,
		TargetLang: targetLang,
	})
	if err != nil {
		logger.Warn().Err(err).
			Str("provider", provider.Name()).
			Str("source_lang", resolvedSource).
			Str("target_lang", targetLang).
			Msg("translation failed")
		t.countTranslationError(err)
		t.publishFailure(err)
		return nil, err
	}

	if t.metrics != nil {
		t.metrics.Translations.WithLabelValues(resp.ProviderName).Inc()
		t.metrics.ObserveTranslationLatency(time.Since(started))
	}

	// Publish the result immediately, before persistence.
	t.publishTranslated(resp.Text)

	if err := t.store.Append(ctx, text, resp.Text); err != nil {
		// Append failure is reported but does not break the chain; the
		// re-read below reconciles the view with what the store accepted.
		logger.Error().Err(err).Msg("history append failed")
		t.countStoreError("append")
	} else {
		t.countStoreOp("append")
	}

	records := t.refreshHistory(ctx, logger)

	return &TranslateResult{
		TranslatedText: resp.Text,
		SourceLang:     resp.SourceLang,
		TargetLang:     resp.TargetLang,
		Provider:       resp.ProviderName,
		History:        records,
	}, nil
}

// History re-reads the store and publishes the result on success.
func (t *Translator) History(ctx context.Context) ([]history.Record, error) {
	if t == nil || t.store == nil {
		return nil, fmt.Errorf("translator is not initialized")
	}

	records, err := t.store.ListAll(ctx)
	if err != nil {
		t.countStoreError("list")
		t.publishFailure(err)
		return nil, fmt.Errorf("list history: %w", err)
	}
	t.countStoreOp("list")
	t.publishHistory(records)
	return records, nil
}

// Clear removes all visible history records. Whether or not the delete
// succeeds, the view is reconciled through a fresh read rather than being
// emptied optimistically.
func (t *Translator) Clear(ctx context.Context) ([]history.Record, error) {
	if t == nil || t.store == nil {
		return nil, fmt.Errorf("translator is not initialized")
	}

	clearErr := t.store.ClearAll(ctx)
	if clearErr != nil {
		t.logger.Error().Err(clearErr).Msg("history clear failed")
		t.countStoreError("clear")
		t.publishFailure(clearErr)
	} else {
		t.countStoreOp("clear")
	}

	records := t.refreshHistory(ctx, t.logger)
	if clearErr != nil {
		return records, fmt.Errorf("clear history: %w", clearErr)
	}
	return records, nil
}

func (t *Translator) resolveSourceLang(text, sourceLang string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(sourceLang))
	if code != "" && code != "auto" {
		return code, nil
	}

	detected := langdetect.DetectISO6391(text)
	if detected == "" || !translation.IsSupportedLanguage(detected) {
		return "", fmt.Errorf("could not detect a supported source language, specify one of %s",
			strings.Join(translation.SupportedLanguageCodes(), ", "))
	}
	return detected, nil
}

// refreshHistory re-reads the store. On failure the previous history stays
// in the view (stale but not corrupted) and the current snapshot is returned.
func (t *Translator) refreshHistory(ctx context.Context, logger zerolog.Logger) []history.Record {
	records, err := t.store.ListAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("history refresh failed")
		t.countStoreError("list")
		return t.Snapshot().History
	}
	t.countStoreOp("list")
	t.publishHistory(records)
	return records
}

func (t *Translator) publishTranslated(text string) {
	t.mu.Lock()
	t.view.TranslatedText = text
	t.view.LastError = ""
	view := t.copyViewLocked()
	subscriber := t.subscriber
	t.mu.Unlock()

	if subscriber != nil {
		subscriber(view)
	}
}

func (t *Translator) publishHistory(records []history.Record) {
	t.mu.Lock()
	t.view.History = records
	view := t.copyViewLocked()
	subscriber := t.subscriber
	t.mu.Unlock()

	if subscriber != nil {
		subscriber(view)
	}
}

func (t *Translator) publishFailure(err error) {
	t.mu.Lock()
	t.view.LastError = err.Error()
	view := t.copyViewLocked()
	subscriber := t.subscriber
	t.mu.Unlock()

	if subscriber != nil {
		subscriber(view)
	}
}

func (t *Translator) copyViewLocked() ViewState {
	view := t.view
	view.History = append([]history.Record(nil), t.view.History...)
	return view
}

func (t *Translator) countTranslationError(err error) {
	if t.metrics == nil {
		return
	}
	class := "other"
	switch {
	case errors.Is(err, translation.ErrNetwork):
		class = "network"
	case errors.Is(err, translation.ErrDecode):
		class = "decode"
	}
	t.metrics.TranslationErrors.WithLabelValues(class).Inc()
}

func (t *Translator) countStoreOp(op string) {
	if t.metrics == nil {
		return
	}
	t.metrics.StoreOperations.WithLabelValues(op).Inc()
}

func (t *Translator) countStoreError(op string) {
	if t.metrics == nil {
		return
	}
	t.metrics.StoreErrors.WithLabelValues(op).Inc()
}
