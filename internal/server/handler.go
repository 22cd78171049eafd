package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"destpick/internal/domain"
)

// Handler serves the catalog endpoints
type Handler struct {
	dests  []domain.Destination
	bySlug map[string]domain.Destination
}

// NewHandler indexes dests by slug. Later duplicates are ignored; the seed
// loader rejects them before they get here.
func NewHandler(dests []domain.Destination) *Handler {
	h := &Handler{
		dests:  append([]domain.Destination{}, dests...),
		bySlug: make(map[string]domain.Destination, len(dests)),
	}
	for _, d := range dests {
		if _, ok := h.bySlug[d.Slug]; !ok {
			h.bySlug[d.Slug] = d
		}
	}
	return h
}

// Len returns the number of destinations served
func (h *Handler) Len() int {
	return len(h.dests)
}

// RegisterRoutes wires the handler into e
func RegisterRoutes(e *echo.Echo, h *Handler, catalogPath, routePrefix string) {
	if catalogPath == "" {
		catalogPath = "/api/destinations"
	}
	if routePrefix == "" {
		routePrefix = domain.DefaultRoutePrefix
	}

	e.GET("/health", h.Health)
	e.GET(catalogPath, h.List)
	e.GET(strings.TrimRight(routePrefix, "/")+"/:slug", h.Get)
}

// Health reports liveness
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// List returns the whole catalog
func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.CatalogResponse{
		Success: true,
		Data:    h.dests,
	})
}

// Get returns one destination by slug
func (h *Handler) Get(c echo.Context) error {
	slug := c.Param("slug")
	d, ok := h.bySlug[slug]
	if !ok {
		return c.JSON(http.StatusNotFound, domain.DestinationResponse{
			Success: false,
			Error:   "destination not found: " + slug,
		})
	}
	return c.JSON(http.StatusOK, domain.DestinationResponse{
		Success: true,
		Data:    &d,
	})
}
