// Package leaderboard integrates the community leaderboard dataset via a
// paginated rows API. Column names are fixed by the dataset schema
// (including the decorated "Average ⬆️" header), so rows map onto typed
// structs rather than dynamic lookups.
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"modelboard/internal/match"
)

// Entry is one leaderboard row after extraction. Score fields are
// percentages; nil means the benchmark was not run for this model.
type Entry struct {
	FullName  string `json:"fullName"`
	ModelName string `json:"modelName"`

	Average  *float64 `json:"average"`
	IFEval   *float64 `json:"ifeval"`
	BBH      *float64 `json:"bbh"`
	MathLvl5 *float64 `json:"mathLvl5"`
	GPQA     *float64 `json:"gpqa"`
	MUSR     *float64 `json:"musr"`
	MMLUPro  *float64 `json:"mmluPro"`

	License      string   `json:"license,omitempty"`
	Precision    string   `json:"precision,omitempty"`
	Type         string   `json:"type,omitempty"`
	Architecture string   `json:"architecture,omitempty"`
	Params       *float64 `json:"params,omitempty"`
}

// KeySpace indexes entries under every lookup string they are known by.
// Rebuilt wholesale on each fresh fetch, never patched.
type KeySpace map[string]*Entry

// row mirrors the dataset's v2 column names on the wire.
type row struct {
	FullName     string   `json:"fullname"`
	Model        string   `json:"Model"`
	Average      *float64 `json:"Average ⬆️"`
	IFEval       *float64 `json:"IFEval"`
	BBH          *float64 `json:"BBH"`
	MathLvl5     *float64 `json:"MATH Lvl 5"`
	GPQA         *float64 `json:"GPQA"`
	MUSR         *float64 `json:"MUSR"`
	MMLUPro      *float64 `json:"MMLU-PRO"`
	License      string   `json:"Hub License"`
	Precision    string   `json:"Precision"`
	Type         string   `json:"Type"`
	Architecture string   `json:"Architecture"`
	Params       *float64 `json:"#Params (B)"`
}

type rowsResponse struct {
	Rows []struct {
		Row row `json:"row"`
	} `json:"rows"`
}

// Client fetches the leaderboard dataset in pages, bounded by a total
// row cap to limit upstream calls.
type Client struct {
	http     *http.Client
	baseURL  string
	dataset  string
	pageSize int
	maxRows  int
}

func NewClient(httpClient *http.Client, baseURL, dataset string, pageSize, maxRows int) *Client {
	if pageSize <= 0 {
		pageSize = 100
	}
	if maxRows <= 0 {
		maxRows = 500
	}
	return &Client{http: httpClient, baseURL: baseURL, dataset: dataset, pageSize: pageSize, maxRows: maxRows}
}

// Fetch pages through the dataset until the row cap, a short page, or an
// upstream error. Rows gathered before a mid-pagination error are kept;
// the error aborts only when the very first page fails.
func (c *Client) Fetch(ctx context.Context) (KeySpace, error) {
	var rows []row
	for offset := 0; offset < c.maxRows; offset += c.pageSize {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			if len(rows) == 0 {
				return nil, err
			}
			slog.Warn("leaderboard pagination aborted, keeping partial rows", "offset", offset, "rows", len(rows), "error", err)
			break
		}
		if len(page) == 0 {
			break
		}
		rows = append(rows, page...)
		if len(page) < c.pageSize {
			break // short page: end of dataset
		}
	}

	ks := buildKeySpace(rows)
	slog.Info("loaded leaderboard data", "rows", len(rows), "keys", len(ks))
	return ks, nil
}

const maxBodySize = 10 * 1024 * 1024 // 10 MB

func (c *Client) fetchPage(ctx context.Context, offset int) ([]row, error) {
	q := url.Values{}
	q.Set("dataset", c.dataset)
	q.Set("config", "default")
	q.Set("split", "train")
	q.Set("offset", strconv.Itoa(offset))
	q.Set("length", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching leaderboard page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d at offset %d", resp.StatusCode, offset)
	}

	limited := io.LimitReader(resp.Body, maxBodySize+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(raw) > maxBodySize {
		return nil, fmt.Errorf("response body too large (exceeds %d bytes)", maxBodySize)
	}

	var parsed rowsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing leaderboard JSON: %w", err)
	}

	page := make([]row, 0, len(parsed.Rows))
	for _, r := range parsed.Rows {
		page = append(page, r.Row)
	}
	return page, nil
}

// buildKeySpace indexes rows under their model name, full "org/model"
// name, normalized variants, the delimiter-stripped form, and a
// suffix-stripped base form, all lowercased, all pointing at the same
// entry.
func buildKeySpace(rows []row) KeySpace {
	ks := make(KeySpace, len(rows)*5)
	for i := range rows {
		r := rows[i]
		fullName := r.FullName
		if fullName == "" {
			fullName = r.Model
		}
		if fullName == "" {
			continue
		}
		modelName := fullName
		if idx := strings.LastIndex(fullName, "/"); idx >= 0 && idx+1 < len(fullName) {
			modelName = fullName[idx+1:]
		}

		e := &Entry{
			FullName:     fullName,
			ModelName:    modelName,
			Average:      r.Average,
			IFEval:       r.IFEval,
			BBH:          r.BBH,
			MathLvl5:     r.MathLvl5,
			GPQA:         r.GPQA,
			MUSR:         r.MUSR,
			MMLUPro:      r.MMLUPro,
			License:      r.License,
			Precision:    r.Precision,
			Type:         r.Type,
			Architecture: r.Architecture,
			Params:       r.Params,
		}

		nameLower := strings.ToLower(modelName)
		fullLower := strings.ToLower(fullName)
		normName := match.NormalizeKey(modelName)
		normFull := match.NormalizeKey(fullName)

		ks[nameLower] = e
		ks[fullLower] = e
		ks[normName] = e
		ks[normFull] = e

		// Delimiter-free form: "llama-3" also answers to "llama3".
		stripped := strings.NewReplacer("-", "", " ", "").Replace(nameLower)
		ks[stripped] = e

		if base := match.StripSuffixes(normName); base != normName && base != "" {
			ks[base] = e
		}
	}
	return ks
}
