// Package server serves a destination catalog over HTTP in the envelope
// the picker reads.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"destpick/internal/domain"
)

const shutdownTimeout = 10 * time.Second

// Server is the catalog HTTP server
type Server struct {
	echo    *echo.Echo
	handler *Handler
}

// New builds a server over dests. The catalog path is where the list is
// served; detail routes live under routePrefix.
func New(dests []domain.Destination, catalogPath, routePrefix string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger())

	h := NewHandler(dests)
	RegisterRoutes(e, h, catalogPath, routePrefix)

	return &Server{echo: e, handler: h}
}

// ServeHTTP lets the server be used as an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", addr).Int("destinations", s.handler.Len()).Msg("starting catalog server")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down catalog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("catalog server stopped")
	return nil
}
