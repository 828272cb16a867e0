// Package derive computes display-ready attributes (price tier, license,
// aggregate benchmark score) from a canonical model and its resolved
// auxiliary entries.
package derive

import (
	"strings"

	"modelboard/internal/core"
	"modelboard/internal/leaderboard"
)

// PriceTier is the tier of the model's input price.
func PriceTier(m core.Model) core.PriceTier {
	return core.TierForPrice(m.InputPrice)
}

// familyRule maps a model-name substring to a license label. Rules are
// checked in order; the first hit wins, so more specific family names
// (codestral, pixtral) come before their vendor's generic rule.
type familyRule struct {
	substr  string
	license string
}

var familyRules = []familyRule{
	{"oss", "MIT"},
	{"gemma", "Gemma Terms"},
	{"phi", "MIT"},
	{"llama", "Llama Community"},
	{"codestral", "MNPL"},
	{"pixtral", "Apache 2.0"},
	{"mistral", "Apache 2.0"},
	{"qwen", "Apache 2.0"},
	{"yi-", "Apache 2.0"},
	{"deepseek", "MIT"},
	{"dbrx", "Open License"},
	{"olmo", "Apache 2.0"},
	{"granite", "Apache 2.0"},
	{"nemotron", "NVIDIA Open"},
	{"falcon", "Apache 2.0"},
}

// proprietaryProviders are providers whose unmatched models default to a
// proprietary license.
var proprietaryProviders = map[string]struct{}{
	"OpenAI":         {},
	"Anthropic":      {},
	"Google":         {},
	"Cohere":         {},
	"AI21 Labs":      {},
	"Amazon Bedrock": {},
	"Perplexity AI":  {},
	"xAI":            {},
	"Microsoft":      {},
	"Inflection":     {},
	"Reka":           {},
	"EssentialAI":    {},
	"MiniMax":        {},
	"Moonshot AI":    {},
	"Baidu":          {},
	"ByteDance":      {},
	"Tencent":        {},
	"Huawei":         {},
	"Liquid AI":      {},
}

// License resolves a model's license label by priority: the leaderboard's
// reported license, then model-family name rules, then the provider's
// proprietary/open default. Returns "N/A" only when the model has no
// provider at all.
func License(m core.Model, lb *leaderboard.Entry) string {
	if lb != nil && lb.License != "" && lb.License != "N/A" {
		return lb.License
	}

	lowerName := strings.ToLower(m.Name)
	for _, rule := range familyRules {
		if strings.Contains(lowerName, rule.substr) {
			return rule.license
		}
	}

	if m.Provider == "" {
		return "N/A"
	}
	if _, ok := proprietaryProviders[m.Provider]; ok {
		return "Proprietary"
	}
	return "Apache 2.0"
}

// AverageScore returns the leaderboard entry's aggregate score: the
// precomputed average when present, else the arithmetic mean of the
// sub-scores that exist. nil when the entry is nil or carries no scores,
// never a fabricated zero.
func AverageScore(lb *leaderboard.Entry) *float64 {
	if lb == nil {
		return nil
	}
	if lb.Average != nil {
		return lb.Average
	}

	subs := []*float64{lb.IFEval, lb.BBH, lb.MathLvl5, lb.GPQA, lb.MUSR, lb.MMLUPro}
	var sum float64
	var n int
	for _, s := range subs {
		if s != nil {
			sum += *s
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
