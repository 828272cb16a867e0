// Package providers maps raw vendor slugs from the primary feed to
// canonical provider names and decides which providers are retained in
// the aggregated output.
package providers

import (
	"strings"
	"unicode"
)

// slugNames maps known feed vendor slugs (lowercase) to canonical
// provider names. Aliases for the same vendor all map to one name.
var slugNames = map[string]string{
	"openai":                "OpenAI",
	"anthropic":             "Anthropic",
	"google":                "Google",
	"meta-llama":            "Meta",
	"meta":                  "Meta",
	"mistralai":             "Mistral",
	"mistral":               "Mistral",
	"cohere":                "Cohere",
	"perplexity":            "Perplexity AI",
	"deepseek":              "DeepSeek",
	"x-ai":                  "xAI",
	"alibaba":               "Alibaba",
	"ai21":                  "AI21 Labs",
	"amazon":                "Amazon Bedrock",
	"minimax":               "MiniMax",
	"moonshot":              "Moonshot AI",
	"moonshotai":            "Moonshot AI",
	"nvidia":                "NVIDIA",
	"zhipu":                 "Zhipu AI",
	"z-ai":                  "Zhipu AI",
	"microsoft":             "Microsoft",
	"01-ai":                 "01.AI",
	"databricks":            "Databricks",
	"together":              "Together AI",
	"gryphe":                "Gryphe",
	"nousresearch":          "Nous Research",
	"openchat":              "OpenChat",
	"cognitivecomputations": "Cognitive Computations",
	"pygmalionai":           "PygmalionAI",
	"sao10k":                "Sao10K",
	"teknium":               "Teknium",
	"alpindale":             "Alpindale",
	"austism":               "Austism",
	"rwkv":                  "RWKV",
	"recursal":              "Recursal",
	"phind":                 "Phind",
	"neversleep":            "NeverSleep",
	"allenai":               "AllenAI",
	"deepinfra":             "DeepInfra",
	"fireworks":             "Fireworks AI",
	"liquid":                "Liquid AI",
	"mancer":                "Mancer",
	"nebius":                "Nebius",
	"novita":                "Novita",
	"raenonx":               "RaenonX",
	"sfcompute":             "SF Compute",
	"sophosympatheia":       "Sophosympatheia",
	"undi95":                "Undi95",
	"jondurbin":             "Jon Durbin",
	"haotian":               "Haotian",
	"huggingface":           "Hugging Face",
	"relace":                "Relace",
	"nex-agi":               "Nex AGI",
	"essentialai":           "EssentialAI",
	"prime-intellect":       "Prime Intellect",
	"tngtech":               "TNG Technology Consulting",
	"kwaipilot":             "KwaiPilot",
	"ibm-granite":           "IBM",
	"openrouter":            "OpenRouter",
	"arcee-ai":              "Arcee AI",
	"deepcogito":            "DeepCogito",
}

// Classify resolves a raw vendor identifier to a canonical provider name.
// Unknown slugs fall back to the raw slug with its first letter upper-cased
// so downstream grouping always has a usable, non-empty name. Classify
// never fails.
func Classify(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Other"
	}
	if name, ok := slugNames[strings.ToLower(raw)]; ok {
		return name
	}
	r := []rune(raw)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// defaultAllowed is the fixed set of providers retained in the aggregated
// output. Applied against canonical names, never raw slugs.
var defaultAllowed = []string{
	"AI21 Labs",
	"Alibaba",
	"Amazon Bedrock",
	"Anthropic",
	"Arcee AI",
	"Cohere",
	"DeepSeek",
	"EssentialAI",
	"Google",
	"Meta",
	"MiniMax",
	"Mistral",
	"Moonshot AI",
	"NVIDIA",
	"OpenAI",
	"Perplexity AI",
	"xAI",
	"Zhipu AI",
}

// DefaultAllowed returns a copy of the built-in provider allow-list.
func DefaultAllowed() []string {
	out := make([]string, len(defaultAllowed))
	copy(out, defaultAllowed)
	return out
}

// AllowSet is a set of canonical provider names eligible for the final
// output.
type AllowSet map[string]struct{}

// NewAllowSet builds an AllowSet from the given names; an empty or nil
// list yields the default allow-list.
func NewAllowSet(names []string) AllowSet {
	if len(names) == 0 {
		names = defaultAllowed
	}
	set := make(AllowSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Allowed reports whether a canonical provider name passes the filter.
func (s AllowSet) Allowed(provider string) bool {
	_, ok := s[provider]
	return ok
}
