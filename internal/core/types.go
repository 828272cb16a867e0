// Package core defines the canonical model representation shared by the
// feed normalizer, the resolvers, and the aggregation layer.
package core

// Model is the reconciled representation of one AI model, independent of
// any single source's schema. A Model always carries a non-empty ID and
// Provider; records that cannot satisfy that are dropped at the
// normalization boundary and never reach this type.
type Model struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Name     string `json:"name"`

	// ContextWindow is the formatted token count ("128k", "1M") or "N/A".
	// The numeric value is recoverable via ParseTokenCount.
	ContextWindow string `json:"contextWindow"`

	// InputPrice and OutputPrice are USD per million tokens. nil means
	// unknown; 0 is a valid (free) price and is distinct from nil.
	InputPrice  *float64 `json:"inputPrice"`
	OutputPrice *float64 `json:"outputPrice"`

	// ReleaseDate is a M/D/YYYY string, or "" when the source gave none.
	ReleaseDate string `json:"releaseDate"`

	InputModalities  []string `json:"inputModalities"`
	OutputModalities []string `json:"outputModalities"`

	SupportsReasoning bool `json:"supportsReasoning"`

	// Logo is the derived local logo filename; LogoURL is the remote
	// favicon URL for the provider's site, empty when unknown.
	Logo    string `json:"logo,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// Modality vocabulary for InputModalities/OutputModalities.
const (
	ModalityText  = "text"
	ModalityImage = "image"
	ModalityAudio = "audio"
	ModalityFile  = "file"
)

// PriceTier buckets a model by its input price.
type PriceTier string

const (
	TierLow     PriceTier = "Low"
	TierMedium  PriceTier = "Medium"
	TierHigh    PriceTier = "High"
	TierUnknown PriceTier = "Unknown"
)

// TierForPrice maps an input price (USD per million tokens) to its tier.
// Thresholds: <1.0 Low, [1.0, 5.0) Medium, >=5.0 High. nil is Unknown,
// never Low: a missing price and a free price must stay distinguishable.
func TierForPrice(price *float64) PriceTier {
	if price == nil {
		return TierUnknown
	}
	switch {
	case *price < 1.0:
		return TierLow
	case *price < 5.0:
		return TierMedium
	default:
		return TierHigh
	}
}

// Float returns a pointer to v. Convenience for building optional fields.
func Float(v float64) *float64 { return &v }
