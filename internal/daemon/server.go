// Package daemon exposes the running monitor over a small local HTTP
// API: status, recent persisted events, and remote stop.
package daemon

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/monitor"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo   *echo.Echo
	mon    *monitor.Monitor
	repo   *repository.EventRepository
	port   int
	stopCh chan struct{}
	logger *zap.Logger
}

// NewServer wires the routes. repo may be nil when the history store is
// disabled; /events then reports 503.
func NewServer(mon *monitor.Monitor, repo *repository.EventRepository, port int, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:   e,
		mon:    mon,
		repo:   repo,
		port:   port,
		stopCh: make(chan struct{}, 1),
		logger: logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/status", s.handleStatus)
	s.echo.GET("/events", s.handleEvents)
	s.echo.POST("/stop", s.handleStop)
}

func (s *Server) Start() {
	go func() {
		addr := ":" + strconv.Itoa(s.port)
		s.logger.Info("status server started",
			zap.String("addr", addr))

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// StopCh is signalled when a stop was requested over the API.
func (s *Server) StopCh() <-chan struct{} {
	return s.stopCh
}

// Handler exposes the route tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.mon.Snapshot())
}

const (
	defaultEventPage = 20
	maxEventPage     = 500
)

// eventPage parses the requested page size, falling back to the default
// on anything non-positive or unparseable. Unbounded values would turn
// the repository limit off entirely.
func eventPage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultEventPage
	}
	if n > maxEventPage {
		return maxEventPage
	}
	return n
}

func (s *Server) handleEvents(c echo.Context) error {
	if s.repo == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "history store disabled"})
	}

	records, err := s.repo.GetRecent(eventPage(c.QueryParam("n")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, records)
}

func (s *Server) handleStop(c echo.Context) error {
	select {
	case s.stopCh <- struct{}{}:
	default:
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "stopping"})
}
