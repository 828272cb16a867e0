package feed

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"modelboard/internal/core"
	"modelboard/internal/providers"
)

// reasoningFlags are the capability-flag names that mark reasoning
// support in the raw feed.
var reasoningFlags = []string{"reasoning", "include_reasoning"}

// Normalize transforms one raw feed record into a canonical model.
// Returns nil only when the record has no derivable identifier; every
// other missing field degrades to its documented default. Normalizing
// the same record twice yields identical results.
func Normalize(raw Record) *core.Model {
	if strings.TrimSpace(raw.ID) == "" {
		return nil
	}

	provider, name := classifyAndStrip(raw)

	m := &core.Model{
		ID:                strings.ToLower(strings.ReplaceAll(raw.ID, "/", "-")),
		Provider:          provider,
		Name:              name,
		ContextWindow:     "N/A",
		InputModalities:   []string{core.ModalityText},
		OutputModalities:  []string{core.ModalityText},
		SupportsReasoning: false,
		Logo:              providers.LogoFilename(provider),
		LogoURL:           providers.LogoURL(provider),
	}

	if raw.ContextLength != nil && *raw.ContextLength > 0 {
		m.ContextWindow = core.FormatTokenCount(*raw.ContextLength)
	}

	if raw.Pricing != nil {
		m.InputPrice = perMillion(raw.Pricing.Prompt)
		m.OutputPrice = perMillion(raw.Pricing.Completion)
	}

	if raw.Created != nil && *raw.Created > 0 {
		m.ReleaseDate = core.FormatReleaseDate(time.Unix(*raw.Created, 0).UTC())
	}

	if raw.Architecture != nil {
		if len(raw.Architecture.InputModalities) > 0 {
			m.InputModalities = raw.Architecture.InputModalities
		}
		if len(raw.Architecture.OutputModalities) > 0 {
			m.OutputModalities = raw.Architecture.OutputModalities
		}
	}

	for _, flag := range reasoningFlags {
		if slices.Contains(raw.SupportedParameters, flag) {
			m.SupportsReasoning = true
			break
		}
	}

	return m
}

// NormalizeAll normalizes a batch, silently dropping records without a
// derivable identifier and deduplicating derived IDs (first record wins,
// so the result is collision-free within one load).
func NormalizeAll(raws []Record) []core.Model {
	out := make([]core.Model, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	var dropped int
	for _, raw := range raws {
		m := Normalize(raw)
		if m == nil {
			dropped++
			continue
		}
		if _, dup := seen[m.ID]; dup {
			slog.Debug("dropping duplicate model id", "id", m.ID)
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, *m)
	}
	if dropped > 0 {
		slog.Debug("dropped records without identifier", "count", dropped)
	}
	return out
}

// classifyAndStrip derives the canonical provider and the display name
// with any redundant provider prefix removed. The provider comes from the
// id's slash prefix when present, else from a colon prefix in the name.
func classifyAndStrip(raw Record) (provider, name string) {
	provider = "Other"
	name = raw.Name

	switch {
	case strings.Contains(raw.ID, "/"):
		slug, _, _ := strings.Cut(raw.ID, "/")
		provider = providers.Classify(slug)
	case strings.Contains(raw.Name, ":"):
		prefix, rest, _ := strings.Cut(raw.Name, ":")
		provider = providers.Classify(strings.TrimSpace(prefix))
		name = strings.TrimSpace(rest)
	}

	name = stripProviderPrefix(name, provider)
	if name == "" {
		name = raw.ID
	}
	return provider, name
}

// stripProviderPrefix removes a leading "Provider:" or "Provider " from a
// display name, case-insensitively, so "OpenAI: GPT-4o" does not render
// as "OpenAI GPT-4o" under the OpenAI group.
func stripProviderPrefix(name, provider string) string {
	lower := strings.ToLower(name)
	prefix := strings.ToLower(provider)
	if strings.HasPrefix(lower, prefix+":") || strings.HasPrefix(lower, prefix+" ") {
		return strings.TrimSpace(name[len(provider)+1:])
	}
	return name
}

// perMillion converts a per-token price string to USD per million
// tokens. Empty or unparseable input means unknown (nil); an explicit
// "0" survives as a real zero price.
func perMillion(perToken string) *float64 {
	if perToken == "" {
		return nil
	}
	f, err := strconv.ParseFloat(perToken, 64)
	if err != nil || f < 0 {
		return nil
	}
	v := f * 1_000_000
	return &v
}
