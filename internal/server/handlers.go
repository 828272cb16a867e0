package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"modelboard/internal/aggregate"
	"modelboard/internal/core"
)

// ModelSource produces aggregated model listings. Satisfied by
// aggregate.Orchestrator; narrowed to an interface so handlers are
// testable without network sources.
type ModelSource interface {
	Models(ctx context.Context) (*aggregate.Result, error)
	Refresh()
}

// Handler holds the HTTP handlers.
type Handler struct {
	source ModelSource
}

// NewHandler creates a handler backed by the given model source.
func NewHandler(source ModelSource) *Handler {
	return &Handler{source: source}
}

// Health handles GET /healthz.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ListModels handles GET /api/v1/models. The optional ?tier= query
// restricts the listing to one price tier.
func (h *Handler) ListModels(c echo.Context) error {
	result, err := h.source.Models(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}

	if tier := c.QueryParam("tier"); tier != "" {
		pt, ok := parseTier(tier)
		if !ok {
			return c.JSON(http.StatusBadRequest, errorBody("unknown tier: "+tier))
		}
		filtered := *result
		filtered.Models = aggregate.FilterByTier(result.Models, pt)
		filtered.Stats.TotalModels = len(filtered.Models)
		return c.JSON(http.StatusOK, &filtered)
	}

	return c.JSON(http.StatusOK, result)
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(c echo.Context) error {
	result, err := h.source.Models(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"stats":       result.Stats,
		"sources":     result.Sources,
		"generatedAt": result.GeneratedAt,
	})
}

// Refresh handles POST /api/v1/refresh, discarding all cached source
// payloads so the next listing refetches.
func (h *Handler) Refresh(c echo.Context) error {
	h.source.Refresh()
	return c.JSON(http.StatusAccepted, map[string]string{"status": "refreshing"})
}

func handleError(c echo.Context, err error) error {
	if errors.Is(err, aggregate.ErrPrimaryUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, errorBody(err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
}

func errorBody(msg string) map[string]any {
	return map[string]any{"error": map[string]string{"message": msg}}
}

func parseTier(s string) (core.PriceTier, bool) {
	switch s {
	case "low", "Low":
		return core.TierLow, true
	case "medium", "Medium":
		return core.TierMedium, true
	case "high", "High":
		return core.TierHigh, true
	case "unknown", "Unknown":
		return core.TierUnknown, true
	default:
		return "", false
	}
}
