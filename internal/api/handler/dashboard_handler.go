package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/api/metrics"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// DashboardHandler serves the back-office landing page aggregates.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Snapshot handles GET /dashboard. Every call recomputes the aggregates;
// nothing is cached.
//
// @Summary      Dashboard snapshot
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardSnapshot
// @Failure      401  {object}  errorResponse
// @Router       / [get]
func (h *DashboardHandler) Snapshot(c echo.Context) error {
	start := time.Now()
	snapshot, err := h.dashboard.Snapshot(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	metrics.DashboardDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, snapshot)
}
