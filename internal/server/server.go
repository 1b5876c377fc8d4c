package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"societyhub/internal/config"
	"societyhub/internal/database"
	"societyhub/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	http     *http.Server
	db       *gorm.DB
	redis    *redis.Client
	mongo    *mongo.Client
	services *Services
}

// New connects to Postgres and the optional Redis and MongoDB backends, then
// builds the router.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}

	s := &Server{cfg: cfg, db: db}
	var deps Deps
	if cfg.Redis.Addr != "" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to ping Redis: %w", err)
		}
		deps.Redis = s.redis
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis user cache enabled")
	}
	if cfg.Mongo.URI != "" {
		s.mongo, err = ConnectMongo(cfg)
		if err != nil {
			s.Close()
			return nil, err
		}
		deps.Mongo = s.mongo.Database(cfg.Mongo.Database)
		log.Info().Str("database", cfg.Mongo.Database).Msg("Audit log stored in MongoDB")
	}

	s.router, s.services, err = Build(cfg, db, deps)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Build wires repositories, services and handlers over db and returns the
// router. Tests call it directly with an sqlite database.
func Build(cfg *config.Config, db *gorm.DB, deps Deps) (*gin.Engine, *Services, error) {
	monitoring.InitMetrics()
	gin.SetMode(cfg.Server.GinMode)

	repos := InitRepositories(db, deps)
	services, err := InitServices(cfg, db, repos, deps)
	if err != nil {
		return nil, nil, err
	}
	handlers := InitHandlers(db, services)
	return setupRouter(cfg, handlers, services), services, nil
}

func ConnectMongo(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.cfg.Server.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("Society API listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases every backend connection
func (s *Server) Close() error {
	var errs []error
	if s.services != nil {
		s.services.OTP.Close()
	}
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		errs = append(errs, s.mongo.Disconnect(ctx))
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, database.Close(s.db))
	}
	return errors.Join(errs...)
}
