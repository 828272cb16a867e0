// Package aggregate reconciles the three upstream sources into one
// coherent model listing. The primary feed is authoritative for which
// models exist; benchmark and leaderboard data only enrich, and their
// failures degrade the output instead of failing it.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"modelboard/internal/benchmark"
	"modelboard/internal/cache"
	"modelboard/internal/core"
	"modelboard/internal/derive"
	"modelboard/internal/feed"
	"modelboard/internal/leaderboard"
	"modelboard/internal/match"
	"modelboard/internal/metrics"
	"modelboard/internal/providers"
)

// ErrPrimaryUnavailable reports that no model listing could be produced:
// the primary feed failed with nothing cached, or filtering left zero
// models. Enrichment-source failures never raise it.
var ErrPrimaryUnavailable = errors.New("primary model feed unavailable")

// ModelView is one aggregated model: the canonical record plus derived
// attributes and whatever auxiliary data resolved for it.
type ModelView struct {
	core.Model

	PriceTier core.PriceTier `json:"priceTier"`
	License   string         `json:"license"`

	Benchmark    *benchmark.Entry   `json:"benchmark,omitempty"`
	Leaderboard  *leaderboard.Entry `json:"leaderboard,omitempty"`
	AverageScore *float64           `json:"averageScore,omitempty"`
}

// SourceStatus reports how one source contributed to a Result.
type SourceStatus struct {
	Status cache.Status `json:"status"`
	Error  string       `json:"error,omitempty"`
}

// Stats summarizes an aggregation pass.
type Stats struct {
	TotalModels        int    `json:"totalModels"`
	Providers          int    `json:"providers"`
	BenchmarkMatched   int    `json:"benchmarkMatched"`
	LeaderboardMatched int    `json:"leaderboardMatched"`
	LatestRelease      string `json:"latestRelease,omitempty"`
}

// Result is one full aggregation pass over all sources.
type Result struct {
	Models      []ModelView             `json:"models"`
	Sources     map[string]SourceStatus `json:"sources"`
	Stats       Stats                   `json:"stats"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

// Config wires an Orchestrator.
type Config struct {
	FeedURL     string
	Benchmark   *benchmark.Client
	Leaderboard *leaderboard.Client
	CacheTTL    time.Duration
	Allowed     []string
}

// Orchestrator owns one cache per source and produces aggregated model
// listings on demand.
type Orchestrator struct {
	http        *http.Client
	feedURL     string
	benchmark   *benchmark.Client
	leaderboard *leaderboard.Client
	allow       providers.AllowSet

	feedCache  *cache.Source[[]core.Model]
	benchCache *cache.Source[benchmark.KeySpace]
	lbCache    *cache.Source[leaderboard.KeySpace]
}

// New builds an Orchestrator from the given clients and config.
func New(httpClient *http.Client, cfg Config) *Orchestrator {
	return &Orchestrator{
		http:        httpClient,
		feedURL:     cfg.FeedURL,
		benchmark:   cfg.Benchmark,
		leaderboard: cfg.Leaderboard,
		allow:       providers.NewAllowSet(cfg.Allowed),
		feedCache:   cache.New[[]core.Model](cfg.CacheTTL),
		benchCache:  cache.New[benchmark.KeySpace](cfg.CacheTTL),
		lbCache:     cache.New[leaderboard.KeySpace](cfg.CacheTTL),
	}
}

// Models runs one aggregation pass: the three sources load concurrently
// through their caches, then every allow-listed model is enriched and
// the whole set sorted by provider and name.
func (o *Orchestrator) Models(ctx context.Context) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		models      []core.Model
		feedStatus  cache.Status
		feedErr     error
		benchKeys   benchmark.KeySpace
		benchStatus cache.Status
		benchErr    error
		lbKeys      leaderboard.KeySpace
		lbStatus    cache.Status
		lbErr       error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		models, feedStatus, feedErr = o.feedCache.GetOrFetch(ctx, o.fetchFeed)
		observeSource("feed", feedStatus, feedErr)
	}()
	go func() {
		defer wg.Done()
		benchKeys, benchStatus, benchErr = o.benchCache.GetOrFetch(ctx, o.benchmark.Fetch)
		observeSource("benchmark", benchStatus, benchErr)
	}()
	go func() {
		defer wg.Done()
		lbKeys, lbStatus, lbErr = o.lbCache.GetOrFetch(ctx, o.leaderboard.Fetch)
		observeSource("leaderboard", lbStatus, lbErr)
	}()
	wg.Wait()

	if feedErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrimaryUnavailable, feedErr)
	}

	result := &Result{
		Sources: map[string]SourceStatus{
			"feed":        sourceStatus(feedStatus, feedErr),
			"benchmark":   sourceStatus(benchStatus, benchErr),
			"leaderboard": sourceStatus(lbStatus, lbErr),
		},
		GeneratedAt: time.Now().UTC(),
	}

	views := make([]ModelView, 0, len(models))
	providerSet := make(map[string]struct{})
	var latest time.Time

	for _, m := range models {
		if !o.allow.Allowed(m.Provider) {
			continue
		}

		v := ModelView{Model: m}

		if be, strategy, ok := match.Resolve(m.Name, m.Provider, benchKeys, false); ok {
			v.Benchmark = be
			metrics.Resolutions.WithLabelValues("benchmark", string(strategy)).Inc()
			result.Stats.BenchmarkMatched++
		} else {
			metrics.Resolutions.WithLabelValues("benchmark", "none").Inc()
		}

		if le, strategy, ok := match.Resolve(m.Name, m.Provider, lbKeys, true); ok {
			v.Leaderboard = le
			metrics.Resolutions.WithLabelValues("leaderboard", string(strategy)).Inc()
			result.Stats.LeaderboardMatched++
		} else {
			metrics.Resolutions.WithLabelValues("leaderboard", "none").Inc()
		}

		v.PriceTier = derive.PriceTier(m)
		v.License = derive.License(m, v.Leaderboard)
		v.AverageScore = derive.AverageScore(v.Leaderboard)

		providerSet[m.Provider] = struct{}{}
		if d := core.DateSortKey(m.ReleaseDate); d.After(latest) {
			latest = d
		}
		views = append(views, v)
	}

	if len(views) == 0 {
		return nil, fmt.Errorf("%w: no models passed the provider filter", ErrPrimaryUnavailable)
	}

	sort.SliceStable(views, func(i, j int) bool {
		pi, pj := strings.ToLower(views[i].Provider), strings.ToLower(views[j].Provider)
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(views[i].Name) < strings.ToLower(views[j].Name)
	})

	result.Models = views
	result.Stats.TotalModels = len(views)
	result.Stats.Providers = len(providerSet)
	if !latest.IsZero() {
		result.Stats.LatestRelease = core.FormatReleaseDate(latest)
	}

	slog.Info("aggregation pass complete",
		"models", result.Stats.TotalModels,
		"providers", result.Stats.Providers,
		"benchmark_matched", result.Stats.BenchmarkMatched,
		"leaderboard_matched", result.Stats.LeaderboardMatched,
		"elapsed", time.Since(start))
	return result, nil
}

// Refresh discards all cached source payloads.
func (o *Orchestrator) Refresh() {
	o.feedCache.Reset()
	o.benchCache.Reset()
	o.lbCache.Reset()
}

func (o *Orchestrator) fetchFeed(ctx context.Context) ([]core.Model, error) {
	raws, err := feed.Fetch(ctx, o.http, o.feedURL)
	if err != nil {
		return nil, err
	}
	return feed.NormalizeAll(raws), nil
}

// FilterByTier returns the views whose price tier equals tier. An empty
// tier returns the input unchanged.
func FilterByTier(views []ModelView, tier core.PriceTier) []ModelView {
	if tier == "" {
		return views
	}
	out := make([]ModelView, 0, len(views))
	for _, v := range views {
		if v.PriceTier == tier {
			out = append(out, v)
		}
	}
	return out
}

func observeSource(name string, status cache.Status, err error) {
	metrics.CacheRequests.WithLabelValues(name, string(status)).Inc()
	switch status {
	case cache.StatusFetched:
		metrics.SourceFetches.WithLabelValues(name, "ok").Inc()
	case cache.StatusStale, cache.StatusError:
		metrics.SourceFetches.WithLabelValues(name, "error").Inc()
	}
	if err != nil {
		slog.Warn("source load failed", "source", name, "error", err)
	} else if status == cache.StatusStale {
		slog.Warn("serving stale data after refetch failure", "source", name)
	}
}

func sourceStatus(status cache.Status, err error) SourceStatus {
	s := SourceStatus{Status: status}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}
