package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/gradebook-server/internal/logger"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the dataset backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves the liveness probe.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

// Check handles GET /healthz.
func (h *Health) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error("Health handler: store unavailable",
			"error", err.Error())
		return c.JSON(http.StatusServiceUnavailable, MessageResponse{Message: "unavailable"})
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}
