// Package benchmark integrates the credentialed benchmark-scores API.
// The upstream payload is loosely shaped: the model array may sit at the
// document root or under "models"/"data"/"items", and metric fields may
// appear at the row's top level or nested under "evaluations". Rows are
// extracted with gjson so both locations are probed explicitly; the
// top-level value wins over the nested one, uniformly.
package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Entry is one model's benchmark scores. All metrics are optional.
type Entry struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Creator string `json:"creator,omitempty"`

	IntelligenceIndex *float64 `json:"intelligenceIndex"`
	SpeedTPS          *float64 `json:"speedTps"`
	LatencyMS         *float64 `json:"latencyMs"`
	GPQA              *float64 `json:"gpqa"`
	MMLUPro           *float64 `json:"mmluPro"`
	HumanEval         *float64 `json:"humaneval"`
	ContextWindow     *int     `json:"contextWindow,omitempty"`
}

// KeySpace indexes entries under every lookup string they are known by,
// all lowercased. Rebuilt wholesale on each fresh fetch, never patched.
type KeySpace map[string]*Entry

func (ks KeySpace) add(key string, e *Entry) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	ks[key] = e
}

// Client fetches the benchmark dataset. A Client without an API key is
// valid: the integration is skipped entirely and callers see an empty
// key space, not an error.
type Client struct {
	http   *http.Client
	url    string
	apiKey string
}

func NewClient(httpClient *http.Client, url, apiKey string) *Client {
	return &Client{http: httpClient, url: url, apiKey: apiKey}
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

const maxBodySize = 10 * 1024 * 1024 // 10 MB

// Fetch downloads the dataset and builds its key space. Returns
// (nil, nil) when no API key is configured.
func (c *Client) Fetch(ctx context.Context) (KeySpace, error) {
	if !c.Enabled() {
		slog.Debug("benchmark integration disabled: no API key configured")
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching benchmark data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from benchmark API", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, maxBodySize+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(raw) > maxBodySize {
		return nil, fmt.Errorf("response body too large (exceeds %d bytes)", maxBodySize)
	}

	ks := Parse(raw)
	slog.Info("loaded benchmark data", "entries", len(ks))
	return ks, nil
}

// Parse extracts benchmark rows from the raw payload and indexes each
// entry by its slug and display name.
func Parse(raw []byte) KeySpace {
	rows := rowsArray(raw)
	ks := make(KeySpace, len(rows)*2)

	for _, row := range rows {
		e := &Entry{
			Slug:    row.Get("slug").String(),
			Name:    row.Get("name").String(),
			Creator: firstString(row, "model_creators.name", "creator.name"),

			IntelligenceIndex: firstNumber(row,
				"intelligence_index",
				"evaluations.intelligence_index",
				"evaluations.artificial_analysis_intelligence_index",
				"evaluations.quality_index"),
			SpeedTPS:  firstNumber(row, "median_output_tokens_per_second", "evaluations.median_output_tokens_per_second"),
			LatencyMS: firstNumber(row, "median_latency_ms", "evaluations.median_latency_ms"),
			GPQA:      firstNumber(row, "gpqa", "evaluations.gpqa"),
			MMLUPro:   firstNumber(row, "mmlu_pro", "evaluations.mmlu_pro"),
			HumanEval: firstNumber(row, "humaneval", "evaluations.humaneval"),
		}
		if cw := row.Get("context_window_tokens"); cw.Exists() && cw.Type == gjson.Number {
			v := int(cw.Int())
			e.ContextWindow = &v
		}

		if e.Slug == "" && e.Name == "" {
			continue // no usable key, drop the row
		}
		ks.add(e.Slug, e)
		ks.add(e.Name, e)
	}
	return ks
}

// rowsArray locates the model array within the payload envelope.
func rowsArray(raw []byte) []gjson.Result {
	root := gjson.ParseBytes(raw)
	if root.IsArray() {
		return root.Array()
	}
	for _, key := range []string{"models", "data", "items"} {
		if arr := root.Get(key); arr.IsArray() {
			return arr.Array()
		}
	}
	return nil
}

// firstNumber returns the first numeric value among the given paths.
// Paths are listed top-level-first, which fixes the nested-vs-top-level
// precedence in one place.
func firstNumber(row gjson.Result, paths ...string) *float64 {
	for _, p := range paths {
		if v := row.Get(p); v.Exists() && v.Type == gjson.Number {
			f := v.Float()
			return &f
		}
	}
	return nil
}

func firstString(row gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := row.Get(p); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}
