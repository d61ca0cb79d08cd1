package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Read surface
	s.echo.GET("/timers", s.handleGetTimers)
	s.echo.GET("/status", s.handleStatus)
	s.echo.GET("/ws", s.handleWebSocket)

	// Mutation surface (unauthenticated: the shared set has no owner)
	s.echo.POST("/timers", s.handleAddTimer)
	s.echo.POST("/timers/reset", s.handleResetAll)
	s.echo.POST("/timers/pause", s.handlePauseAll)
	s.echo.DELETE("/timers/:id", s.handleRemoveTimer)
	s.echo.POST("/timers/:id/start", s.handleStartTimer)
	s.echo.POST("/timers/:id/pause", s.handlePauseTimer)
	s.echo.POST("/timers/:id/reset", s.handleResetTimer)
	s.echo.PUT("/timers/:id/name", s.handleRenameTimer)
	s.echo.PUT("/timers/:id/duration", s.handleRetimeTimer)
}
