package provider_test

import (
	"testing"

	"memchat/internal/provider"
)

func TestNew_UnknownKind(t *testing.T) {
	if _, err := provider.New(provider.Config{Kind: "gemini"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNew_OpenAIRequiresKey(t *testing.T) {
	if _, err := provider.New(provider.Config{Kind: provider.KindOpenAI}); err == nil {
		t.Fatal("expected error without API key")
	}
	if _, err := provider.New(provider.Config{Kind: provider.KindOpenAI, APIKey: "sk-test"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestNew_AnthropicRequiresKey(t *testing.T) {
	if _, err := provider.New(provider.Config{Kind: provider.KindAnthropic}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNew_OllamaDefaultsURL(t *testing.T) {
	b, err := provider.New(provider.Config{Kind: provider.KindOllama})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b == nil {
		t.Fatal("nil backend")
	}
}

func TestKindForModel_CoversAllSupportedModels(t *testing.T) {
	for _, m := range provider.SupportedModels() {
		if _, ok := provider.KindForModel(m); !ok {
			t.Fatalf("no provider for supported model %q", m)
		}
	}
	if _, ok := provider.KindForModel("made-up-model"); ok {
		t.Fatal("unexpected mapping for unsupported model")
	}
}

func TestDefaultModel_IsSupported(t *testing.T) {
	kind, ok := provider.KindForModel(provider.DefaultModel)
	if !ok || kind != provider.KindOpenAI {
		t.Fatalf("default model must map to openai, got %q ok=%v", kind, ok)
	}
}
