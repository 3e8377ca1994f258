// Package server exposes the matrix extraction engine over HTTP: multipart
// workbook uploads in, normalized folder→forms JSON out.
package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"

	"github.com/datarocket/alsmatrix/internal/config"
)

// Server wires the extraction endpoints onto a fiber app.
type Server struct {
	app *fiber.App
	cfg config.Config
	log *zap.Logger
}

// New builds the HTTP server: CORS, body-size cap, and the ALS/SSD routes.
func New(cfg config.Config, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadBytes,
	})
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	s := &Server{app: app, cfg: cfg, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	als := s.app.Group("/als")
	als.Get("/ping", s.ping)
	als.Post("/matrices", s.listMatrices)
	als.Post("/matrix", s.parseMatrix)

	s.app.Post("/ssd/compare", s.compareSSD)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails.
func (s *Server) Listen() error {
	s.log.Info("listening", zap.String("addr", s.cfg.Listen))
	return s.app.Listen(s.cfg.Listen)
}
