package providers

import (
	"net/url"
	"strings"
)

// providerSites maps canonical provider names to their primary websites,
// used for favicon-based logo URLs.
var providerSites = map[string]string{
	"OpenAI":                    "https://openai.com",
	"Anthropic":                 "https://www.anthropic.com",
	"Google":                    "https://deepmind.google",
	"Meta":                      "https://ai.meta.com",
	"Mistral":                   "https://mistral.ai",
	"Cohere":                    "https://cohere.com",
	"DeepSeek":                  "https://www.deepseek.com",
	"AI21 Labs":                 "https://www.ai21.com",
	"Alibaba":                   "https://www.alibabacloud.com/en/solutions/generative-ai",
	"Amazon Bedrock":            "https://aws.amazon.com/bedrock",
	"MiniMax":                   "https://www.minimaxi.com",
	"Moonshot AI":               "https://www.moonshot.cn",
	"NVIDIA":                    "https://www.nvidia.com/en-us/ai-data-science",
	"Perplexity AI":             "https://www.perplexity.ai",
	"xAI":                       "https://x.ai",
	"Zhipu AI":                  "https://www.zhipuai.cn/en",
	"Microsoft":                 "https://www.microsoft.com",
	"01.AI":                     "https://www.01.ai",
	"Databricks":                "https://www.databricks.com",
	"Together AI":               "https://www.together.ai",
	"Nous Research":             "https://nousresearch.com",
	"Phind":                     "https://www.phind.com",
	"DeepInfra":                 "https://deepinfra.com",
	"Fireworks AI":              "https://fireworks.ai",
	"Liquid AI":                 "https://www.liquid.ai",
	"Nebius":                    "https://nebius.com",
	"Novita":                    "https://novita.ai",
	"Hugging Face":              "https://huggingface.co",
	"AllenAI":                   "https://allenai.org",
	"EssentialAI":               "https://essential.ai",
	"Prime Intellect":           "https://primeintellect.ai",
	"TNG Technology Consulting": "https://www.tngtech.com",
	"IBM":                       "https://www.ibm.com",
	"Arcee AI":                  "https://www.arcee.ai",
	"DeepCogito":                "https://deepcogito.com",
	"OpenRouter":                "https://openrouter.ai",
}

// SiteURL returns the provider's primary website, if known.
func SiteURL(provider string) (string, bool) {
	u, ok := providerSites[provider]
	return u, ok
}

// LogoFilename derives a deterministic local logo filename from a
// provider name: lowercase, parentheticals and non-alphanumerics
// stripped, ".png" appended. "xAI (Grok)" -> "xai.png". Empty input
// yields "other.png".
func LogoFilename(provider string) string {
	if provider == "" {
		return "other.png"
	}
	s := strings.ToLower(provider)
	if open := strings.Index(s, "("); open >= 0 {
		if end := strings.LastIndex(s, ")"); end > open {
			s = s[:open] + s[end+1:]
		}
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String() + ".png"
}

// LogoURL returns a favicon URL for the provider's website, or "" when
// the provider has no known site.
func LogoURL(provider string) string {
	site, ok := providerSites[provider]
	if !ok {
		return ""
	}
	u, err := url.Parse(site)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return "https://www.google.com/s2/favicons?domain=" + u.Hostname() + "&sz=64"
}
