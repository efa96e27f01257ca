// Package http provides the HTTP adapter in front of the request form
// engine. It is thin plumbing: handlers validate input, delegate to the
// repository and the document generator, and translate results to responses.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/longyuju1116/invoice/internal/export"
	"github.com/longyuju1116/invoice/internal/pdf"
	"github.com/longyuju1116/invoice/internal/repository"
	"github.com/longyuju1116/invoice/internal/storage"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxImageSize int64
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	logger     *zap.Logger
}

// NewServer creates a new HTTP server wired to the given collaborators
func NewServer(
	config ServerConfig,
	repo *repository.FormRepository,
	generator *pdf.Generator,
	images *storage.ImageStore,
	exporter *export.Exporter,
	logger *zap.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	server := &Server{
		config: config,
		router: router,
		logger: logger,
	}

	router.Use(gin.Recovery())
	router.Use(server.loggingMiddleware())

	handlers := NewHandlers(repo, generator, images, exporter, config.MaxImageSize, logger)
	server.setupRoutes(handlers)

	return server
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.String("latency", time.Since(start).String()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func (s *Server) setupRoutes(handlers *Handlers) {
	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api/v1/request-forms")
	{
		api.POST("", handlers.CreateForm)
		api.GET("", handlers.ListForms)
		api.GET("/export", handlers.ExportForms)
		api.GET("/enums/payment-methods", handlers.ListPaymentMethods)
		api.GET("/enums/requesting-units", handlers.ListRequestingUnits)
		api.POST("/upload-image", handlers.UploadImage)
		api.GET("/:id", handlers.GetForm)
		api.GET("/:id/pdf", handlers.DownloadPDF)
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled or the
// server fails
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
