package translation

import (
	"context"
	"testing"
)

type stubProvider struct {
	name string
}

func (p *stubProvider) Translate(_ context.Context, req TranslateRequest) (*TranslateResponse, error) {
	return &TranslateResponse{
		Text:         req.Text,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.name,
	}, nil
}

func (p *stubProvider) Name() string {
	return p.name
}

func (p *stubProvider) SupportedLanguages() []string {
	return SupportedLanguageCodes()
}

func TestRegistry_ResolvesDefault(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("stub")
	if err := registry.Register(&stubProvider{name: "stub"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	provider, err := registry.Provider("")
	if err != nil {
		t.Fatalf("resolve default provider: %v", err)
	}
	if provider.Name() != "stub" {
		t.Fatalf("expected default provider stub, got %q", provider.Name())
	}
}

func TestRegistry_UnknownProvider(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("stub")
	if err := registry.Register(&stubProvider{name: "stub"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := registry.Provider("missing"); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}

func TestNewRegistryFromConfig_FallsBackToMyMemory(t *testing.T) {
	t.Parallel()

	registry := NewRegistryFromConfig(RegistryOptions{DefaultProvider: "nonexistent"})
	if registry.DefaultProvider() != DefaultProviderName {
		t.Fatalf("expected default %q, got %q", DefaultProviderName, registry.DefaultProvider())
	}

	names := registry.ProviderNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 registered providers, got %v", names)
	}
}
