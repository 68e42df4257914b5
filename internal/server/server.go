package server

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/worldsync/internal/logger"
)

// Options are the listener settings. Zero timeouts disable the limit.
type Options struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type server struct {
	httpServer   *httpServer
	shutdownOnce sync.Once
	logger       *logger.Logger
}

func NewServer(handler http.Handler, opts Options, logger *logger.Logger) (Server, error) {
	if opts.Address == "" {
		return nil, errEmptyAddress
	}
	if handler == nil {
		return nil, errNoHandler
	}

	logger.Info().Str("address", opts.Address).Msg("creating new server...")
	return &server{
		httpServer: newHTTPServer(handler, opts, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Serve(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.listen()
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
		<-errCh
		s.logger.Info().Msg("server Shutdown gracefully")
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(s.httpServer.shutdown)
}
