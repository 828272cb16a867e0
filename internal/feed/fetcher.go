package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxBodySize = 20 * 1024 * 1024 // 20 MB; the full feed runs to several MB

// Fetch downloads and parses the primary model feed from the given URL.
func Fetch(ctx context.Context, client *http.Client, url string) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching model feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	limited := io.LimitReader(resp.Body, maxBodySize+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(raw) > maxBodySize {
		return nil, fmt.Errorf("response body too large (exceeds %d bytes)", maxBodySize)
	}

	return Parse(raw)
}

// Parse deserializes the raw feed JSON into records.
func Parse(raw []byte) ([]Record, error) {
	var list listResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parsing model feed JSON: %w", err)
	}
	return list.Data, nil
}
