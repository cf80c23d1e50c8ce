// Package fakeapi is an in-memory stand-in for the careers API. It serves the
// job lookup and application endpoints with the same contract as the real
// service and is used by tests and by cmd/fakeapi for manual runs.
package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/logging"
	"github.com/gin-gonic/gin"
)

// DefaultMaxResumeBytes matches the client-side upload limit.
const DefaultMaxResumeBytes = 5 * 1024 * 1024

type Options struct {
	// Token, when set, is required as a bearer token on submissions.
	Token          string
	MaxResumeBytes int64
	Latency        time.Duration
}

// NewRouter builds the gin engine. Routes live under /api so the client's
// default base URL points at them.
func NewRouter(store *Store, logger logging.Logger, opts Options) *gin.Engine {
	useJSONFieldNames()
	if opts.MaxResumeBytes <= 0 {
		opts.MaxResumeBytes = DefaultMaxResumeBytes
	}

	h := &handler{store: store, logger: logger, maxResumeBytes: opts.MaxResumeBytes}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), Latency(opts.Latency))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/jobs", h.listJobs)
		api.GET("/jobs/:id", h.getJob)
		api.POST("/jobs/:id/apply", RequireBearer(opts.Token), SizeLimit(opts.MaxResumeBytes), h.apply)
	}
	return r
}

type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(address string, store *Store, logger logging.Logger, opts Options) *Server {
	return &Server{address: address, handler: NewRouter(store, logger, opts), logger: logger}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
