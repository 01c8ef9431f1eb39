package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbook/backend/config"
	"github.com/mealbook/backend/internal/database"
	"github.com/mealbook/backend/internal/router"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
	sqlDB  *database.DB
}

// New wires the whole application together: database connections, schema
// migration, Redis, S3 and the route tree.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.NewGorm(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	sqlDB, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, auth endpoints run unthrottled: %v", err)
		redisClient = nil
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	if s3cfg == nil {
		log.Printf("No S3 bucket configured, storing recipe images under %s", cfg.MediaDir)
	}

	engine := router.SetupRouter(db, sqlDB, redisClient, s3cfg, cfg)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		sqlDB: sqlDB,
	}, nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes the health-check
// database connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.sqlDB != nil {
		defer func() { _ = s.sqlDB.Close() }()
	}
	return s.http.Shutdown(ctx)
}
