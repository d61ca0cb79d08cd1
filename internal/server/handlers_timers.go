package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/1dinos/desafio-cronometro/internal/domain"
)

// timersResponse is the body of every read and mutation route. Mutations
// rejected by an invariant (removing the last timer, starting a timer with
// nothing remaining) come back with applied=false and the unchanged set;
// they are not errors.
type timersResponse struct {
	Timers  domain.TimerSet `json:"timers"`
	Applied bool            `json:"applied,omitempty"`
}

func (s *Server) handleGetTimers(c echo.Context) error {
	return c.JSON(200, timersResponse{Timers: s.engine.Snapshot()})
}

func (s *Server) handleStatus(c echo.Context) error {
	role := "follower"
	if s.engine.IsLeader() {
		role = "leader"
	}
	return c.JSON(200, map[string]any{
		"role":              role,
		"channel_connected": s.channel.Connected(),
		"views":             s.hub.ClientCount(),
	})
}

func (s *Server) handleAddTimer(c echo.Context) error {
	timers, applied := s.controller.AddTimer()
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handleRemoveTimer(c echo.Context) error {
	timers, applied := s.controller.RemoveTimer(c.Param("id"))
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handleStartTimer(c echo.Context) error {
	timers, applied := s.controller.StartTimer(c.Param("id"))
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handlePauseTimer(c echo.Context) error {
	timers, applied := s.controller.PauseTimer(c.Param("id"))
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handleResetTimer(c echo.Context) error {
	timers, applied := s.controller.ResetTimer(c.Param("id"))
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handleResetAll(c echo.Context) error {
	timers, applied := s.controller.ResetAll()
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handlePauseAll(c echo.Context) error {
	timers, applied := s.controller.PauseAll()
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handleRenameTimer(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid body"})
	}
	timers, applied := s.controller.RenameTimer(c.Param("id"), body.Name)
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handleRetimeTimer(c echo.Context) error {
	var body struct {
		Minutes int `json:"minutes"`
		Seconds int `json:"seconds"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "invalid body"})
	}
	timers, applied := s.controller.RetimeTimer(c.Param("id"), body.Minutes, body.Seconds)
	return c.JSON(200, timersResponse{Timers: timers, Applied: applied})
}

func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	// Push the current state before the connection joins the feed, so the
	// view does not render empty until the next change.
	if err := conn.WriteJSON(timersResponse{Timers: s.engine.Snapshot()}); err != nil {
		_ = conn.Close()
		return nil
	}

	if err := s.hub.Register(conn); err != nil {
		slog.Warn("Failed to register view connection", "error", err)
		return nil
	}

	go func() {
		defer s.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}
