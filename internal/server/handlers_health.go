package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/1dinos/desafio-cronometro/internal/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

// handleReadiness checks the durable store. The sync channel is reported but
// does not fail readiness: the participant stays useful while disconnected,
// it just can't hear other participants.
func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := s.db.HealthCheck(ctx); err != nil {
		return c.JSON(503, map[string]any{
			"status":       "unhealthy",
			"failed_check": "postgres",
			"error":        err.Error(),
		})
	}

	return c.JSON(200, map[string]any{
		"status":            "ready",
		"channel_connected": s.channel.Connected(),
	})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
