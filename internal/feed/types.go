// Package feed fetches the primary model-listing feed and normalizes its
// raw records into canonical models.
package feed

// listResponse is the feed's top-level envelope.
type listResponse struct {
	Data []Record `json:"data"`
}

// Record is one raw model entry as the feed returns it. Every field
// beyond the identifier is optional; absence of any of them must not
// fail parsing, so optional scalars are pointers and nested objects are
// nullable.
type Record struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	ContextLength       *int          `json:"context_length"`
	Pricing             *Pricing      `json:"pricing"`
	Created             *int64        `json:"created"`
	Architecture        *Architecture `json:"architecture"`
	SupportedParameters []string      `json:"supported_parameters"`
}

// Pricing carries per-token prices as decimal strings, the feed's wire
// format. An empty string means the price is unknown; "0" is an explicit
// free price.
type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Architecture describes a record's modality support.
type Architecture struct {
	InputModalities  []string `json:"input_modalities"`
	OutputModalities []string `json:"output_modalities"`
}
