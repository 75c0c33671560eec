// Package server exposes the inference gateway over HTTP: the multipart
// /api/infer endpoint, a health probe, and a websocket status stream.
package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/sightline/go-sightline/pkg/hub"
	"github.com/sightline/go-sightline/pkg/inference"
)

// Inferencer is the gateway surface the HTTP layer consumes.
type Inferencer interface {
	Detect(ctx context.Context, image []byte) (*inference.Result, error)
	Detailed(ctx context.Context, image []byte, withDebug bool) (*inference.Result, error)
}

// Server is the HTTP front for the inference gateway.
type Server struct {
	app       *fiber.App
	engine    Inferencer
	statusHub *hub.Hub
	logger    *slog.Logger
	port      string
}

// New creates the server and registers its routes.
func New(engine Inferencer, port string, logger *slog.Logger) *Server {
	s := &Server{
		engine:    engine,
		statusHub: hub.New(logger),
		logger:    logger.With("component", "server"),
		port:      port,
	}

	app := fiber.New(fiber.Config{
		AppName:               "sightlined",
		DisableStartupMessage: true,
		BodyLimit:             16 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Post("/api/infer", s.handleInfer)
	app.Get("/health", s.handleHealth)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the status hub and listens on the configured port, blocking
// until shutdown.
func (s *Server) Start() error {
	go s.statusHub.Run()
	s.logger.Info("listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Hub exposes the status hub for components that publish their own events.
func (s *Server) Hub() *hub.Hub {
	return s.statusHub
}

func (s *Server) handleStatusWS(c *websocket.Conn) {
	client := hub.NewClient(s.statusHub, c)
	client.Run()
}
