package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"popdash/internal/engine"
	"popdash/internal/models"
)

// Handler serves the dashboard views. Every request reads the dataset
// through the cache, so only the first request (or a changed source file)
// pays the parse cost.
type Handler struct {
	cache *engine.Cache
	path  string
}

func NewHandler(cache *engine.Cache, dataFile string) *Handler {
	return &Handler{cache: cache, path: dataFile}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/meta", h.GetMeta)
	api.GET("/overview", h.GetOverview)
	api.GET("/deepdive", h.GetDeepDive)
	// Without a name the profile falls back to the first offered country,
	// optionally narrowed by ?continent=.
	api.GET("/country", h.GetCountry)
	api.GET("/country/:name", h.GetCountry)
	api.GET("/compare", h.GetCompare)
}

// dataset loads through the cache. A load failure is reported as 503 with
// the underlying message; per-row drops never surface here. On failure the
// response is already written and the dataset is nil, so callers must
// return immediately when ds is nil.
func (h *Handler) dataset(c echo.Context) (*models.Dataset, error) {
	ds, err := h.cache.Load(h.path)
	if err != nil {
		return nil, c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": err.Error(),
		})
	}
	return ds, nil
}

// GetMeta reports the snapshot plus the selection lists the UI builds its
// widgets from. An optional ?continent= narrows the country list.
func (h *Handler) GetMeta(c echo.Context) error {
	ds, err := h.dataset(c)
	if ds == nil {
		return err
	}

	continent := c.QueryParam("continent")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"snapshot_id":  ds.SnapshotID,
		"source":       ds.Source,
		"loaded_at":    ds.LoadedAt,
		"rows":         ds.Len(),
		"dropped_rows": ds.Dropped,
		"metrics":      engine.MetricKeys(),
		"core_metrics": engine.CoreMetrics,
		"continents":   engine.Continents(ds),
		"countries":    engine.Countries(engine.ByContinent(ds, continent)),
	})
}

func (h *Handler) GetOverview(c echo.Context) error {
	ds, err := h.dataset(c)
	if ds == nil {
		return err
	}

	spec, err := engine.BuildOverview(ds, c.QueryParam("metric"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, spec)
}

func (h *Handler) GetDeepDive(c echo.Context) error {
	ds, err := h.dataset(c)
	if ds == nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildDeepDive(ds))
}

func (h *Handler) GetCountry(c echo.Context) error {
	ds, err := h.dataset(c)
	if ds == nil {
		return err
	}

	spec, err := engine.BuildCountryProfile(ds, c.QueryParam("continent"), c.Param("name"))
	if err != nil {
		if errors.Is(err, engine.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, spec)
}

// GetCompare serves the multi-country comparison. Absent ?countries= uses
// the default selection; an explicitly empty selection yields the
// pick-a-country notice rather than an error.
func (h *Handler) GetCompare(c echo.Context) error {
	ds, err := h.dataset(c)
	if ds == nil {
		return err
	}

	countries := engine.DefaultComparison
	if c.QueryParams().Has("countries") {
		countries = splitList(c.QueryParam("countries"))
	}
	return c.JSON(http.StatusOK, engine.BuildComparison(ds, countries))
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
