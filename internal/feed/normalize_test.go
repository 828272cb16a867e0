package feed

import (
	"math"
	"testing"

	"modelboard/internal/core"
)

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func approx(got *float64, want float64) bool {
	return got != nil && math.Abs(*got-want) < 1e-9
}

func TestNormalizeFullRecord(t *testing.T) {
	raw := Record{
		ID:            "anthropic/claude-sonnet-4",
		Name:          "Anthropic: Claude Sonnet 4",
		ContextLength: intPtr(200000),
		Pricing:       &Pricing{Prompt: "0.000003", Completion: "0.000015"},
		Created:       int64Ptr(1716163200), // 5/20/2024 UTC
		Architecture: &Architecture{
			InputModalities:  []string{"text", "image"},
			OutputModalities: []string{"text"},
		},
		SupportedParameters: []string{"temperature", "reasoning"},
	}

	m := Normalize(raw)
	if m == nil {
		t.Fatal("expected a model")
	}
	if m.ID != "anthropic-claude-sonnet-4" {
		t.Errorf("ID = %q", m.ID)
	}
	if m.Provider != "Anthropic" {
		t.Errorf("Provider = %q", m.Provider)
	}
	if m.Name != "Claude Sonnet 4" {
		t.Errorf("Name = %q, provider prefix should be stripped", m.Name)
	}
	if m.ContextWindow != "200k" {
		t.Errorf("ContextWindow = %q", m.ContextWindow)
	}
	if !approx(m.InputPrice, 3.0) {
		t.Errorf("InputPrice = %v, want 3.0 per million", m.InputPrice)
	}
	if !approx(m.OutputPrice, 15.0) {
		t.Errorf("OutputPrice = %v, want 15.0 per million", m.OutputPrice)
	}
	if m.ReleaseDate != "5/20/2024" {
		t.Errorf("ReleaseDate = %q", m.ReleaseDate)
	}
	if len(m.InputModalities) != 2 || m.InputModalities[1] != "image" {
		t.Errorf("InputModalities = %v", m.InputModalities)
	}
	if !m.SupportsReasoning {
		t.Error("expected SupportsReasoning")
	}
	if m.Logo != "anthropic.png" {
		t.Errorf("Logo = %q", m.Logo)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	m := Normalize(Record{ID: "someorg/bare-model", Name: "Bare Model"})
	if m == nil {
		t.Fatal("expected a model")
	}
	if m.ContextWindow != "N/A" {
		t.Errorf("ContextWindow = %q, want N/A", m.ContextWindow)
	}
	if m.InputPrice != nil || m.OutputPrice != nil {
		t.Error("missing pricing must stay nil, not zero")
	}
	if m.ReleaseDate != "" {
		t.Errorf("ReleaseDate = %q, want empty", m.ReleaseDate)
	}
	if len(m.InputModalities) != 1 || m.InputModalities[0] != core.ModalityText {
		t.Errorf("InputModalities = %v, want [text]", m.InputModalities)
	}
	if m.SupportsReasoning {
		t.Error("reasoning must default to false")
	}
}

func TestNormalizeNoIdentifier(t *testing.T) {
	if m := Normalize(Record{Name: "Nameless"}); m != nil {
		t.Errorf("expected nil for record without ID, got %+v", m)
	}
	if m := Normalize(Record{ID: "   "}); m != nil {
		t.Error("whitespace-only ID must be treated as missing")
	}
}

func TestNormalizeColonPrefixProvider(t *testing.T) {
	// No slash in the ID: the provider comes from the name's colon prefix.
	m := Normalize(Record{ID: "gpt-4o", Name: "OpenAI: GPT-4o"})
	if m == nil {
		t.Fatal("expected a model")
	}
	if m.Provider != "OpenAI" {
		t.Errorf("Provider = %q", m.Provider)
	}
	if m.Name != "GPT-4o" {
		t.Errorf("Name = %q", m.Name)
	}
}

func TestNormalizeNameFallsBackToID(t *testing.T) {
	m := Normalize(Record{ID: "mistralai/mistral-large"})
	if m == nil {
		t.Fatal("expected a model")
	}
	if m.Name != "mistralai/mistral-large" {
		t.Errorf("Name = %q, want raw ID fallback", m.Name)
	}
}

func TestNormalizeZeroPriceIsFree(t *testing.T) {
	m := Normalize(Record{
		ID:      "meta-llama/llama-free",
		Name:    "Llama Free",
		Pricing: &Pricing{Prompt: "0", Completion: ""},
	})
	if m.InputPrice == nil || *m.InputPrice != 0 {
		t.Errorf("InputPrice = %v, explicit zero must survive", m.InputPrice)
	}
	if m.OutputPrice != nil {
		t.Error("empty price string must stay nil")
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := Record{
		ID:            "google/gemini-2.5-pro",
		Name:          "Google: Gemini 2.5 Pro",
		ContextLength: intPtr(1_048_576),
		Pricing:       &Pricing{Prompt: "0.00000125"},
	}
	a, b := Normalize(raw), Normalize(raw)
	if a.ID != b.ID || a.Name != b.Name || a.ContextWindow != b.ContextWindow {
		t.Error("normalizing the same record twice must agree")
	}
	if *a.InputPrice != *b.InputPrice {
		t.Error("prices must agree across runs")
	}
}

func TestNormalizeAllDeduplicates(t *testing.T) {
	raws := []Record{
		{ID: "openai/gpt-4o", Name: "GPT-4o", ContextLength: intPtr(128000)},
		{ID: "OpenAI/GPT-4o", Name: "GPT-4o Duplicate"}, // same derived id
		{ID: "", Name: "dropped"},
		{ID: "anthropic/claude-opus-4", Name: "Claude Opus 4"},
	}
	models := NormalizeAll(raws)
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2", len(models))
	}
	// First record wins on ID collision.
	if models[0].ContextWindow != "128k" {
		t.Errorf("first record must win the collision, got %q", models[0].ContextWindow)
	}
}

func TestPerMillion(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"garbage", nil},
		{"-0.001", nil},
		{"0", core.Float(0)},
		{"0.000002", core.Float(2)},
	}
	for _, tt := range tests {
		got := perMillion(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("perMillion(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && !approx(got, *tt.want):
			t.Errorf("perMillion(%q) = %v, want %v", tt.in, got, *tt.want)
		}
	}
}
