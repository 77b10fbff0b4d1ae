// Package server is the chat backend: it validates widget requests and
// forwards them to the configured LLM providers.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/models"
	"github.com/diogo/chatwidget/internal/providers"
)

const shutdownTimeout = 30 * time.Second

// Server serves the widget API
type Server struct {
	cfg      config.ServerConfig
	registry *providers.Registry
	app      *fiber.App
	log      zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger used for access and error logs
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// New builds the fiber app and registers routes
func New(cfg config.ServerConfig, registry *providers.Registry, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "chatwidget",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s
}

// App exposes the fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes() {
	s.app.Use(requestID())
	s.app.Use(accessLog(s.log))

	s.app.Get(models.EndpointHealth, s.health)

	api := s.app.Group("/api")
	api.Get("/models", s.listModels)
	api.Post("/chat", newRateLimiter(s.cfg.ChatRateLimit).handler, s.chat)
}

// Run listens on the configured port until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)
	addr := fmt.Sprintf(":%d", s.cfg.Port)

	eg.Go(func() error {
		s.log.Info().Str("addr", addr).Strs("providers", s.registry.Names()).Msg("starting chat server")
		if err := s.app.Listen(addr); err != nil {
			return errors.Wrap(err, "listen")
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		s.log.Info().Msg("shutting down chat server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("server shutdown error")
			return err
		}
		s.log.Info().Msg("server shutdown complete")
		return nil
	})

	return eg.Wait()
}

// handleError renders errors that escaped a handler in the widget's
// {error} shape.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return writeError(c, status, err.Error())
}
