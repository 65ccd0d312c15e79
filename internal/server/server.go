// Package server serves the calculator dashboard and its JSON API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/business-calculator/pkg/constants"
	"go.uber.org/zap"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a server listening on cfg.Address.
func New(cfg *Config, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           NewHandler(logger, cfg.UploadSizeBytes(), version),
			ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
		},
		logger: logger,
	}
}

// Run serves until SIGINT, SIGTERM or ctx cancellation, then shuts down
// gracefully. It returns early if the listener cannot be opened.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			zap.String("op", "server.Run"),
			zap.String("address", listener.Addr().String()),
		)

		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case sig := <-done:
		s.logger.Info("received signal",
			zap.String("op", "server.Run"),
			zap.String("signal", sig.String()),
		)
	case <-ctx.Done():
		s.logger.Info("context cancelled",
			zap.String("op", "server.Run"),
		)
	case err := <-serveErr:
		if err != nil {
			s.logger.Error("server failed",
				zap.String("op", "server.Run"),
				zap.Error(err),
			)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeoutSeconds*time.Second)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server",
		zap.String("op", "server.Shutdown"),
	)

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown failed",
			zap.String("op", "server.Shutdown"),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("server stopped",
		zap.String("op", "server.Shutdown"),
	)
	return nil
}
