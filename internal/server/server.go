package server

import (
	"context"
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/1dinos/desafio-cronometro/internal/config"
	"github.com/1dinos/desafio-cronometro/internal/countdown"
	"github.com/1dinos/desafio-cronometro/internal/domain"
	"github.com/1dinos/desafio-cronometro/internal/websocket"
)

// postgresHealthChecker is a minimal interface for PostgreSQL health checks.
type postgresHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Server struct {
	echo       *echo.Echo
	config     *config.Config
	controller *countdown.Controller
	engine     *countdown.Engine
	hub        *websocket.Hub
	db         postgresHealthChecker
	channel    domain.BroadcastChannel
	upgrader   gorillaws.Upgrader
	startTime  time.Time
}

func NewServer(cfg *config.Config, controller *countdown.Controller, engine *countdown.Engine, hub *websocket.Hub, db postgresHealthChecker, channel domain.BroadcastChannel) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:       e,
		config:     cfg,
		controller: controller,
		engine:     engine,
		hub:        hub,
		db:         db,
		channel:    channel,
		upgrader: gorillaws.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(":" + s.config.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
