package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/evetodo/eve-server/internal/logging"
)

type HTTPServer struct {
	address string
	router  http.Handler
	logger  logging.Logger
}

func NewHTTPServer(address string, h *Handlers, l logging.Logger) *HTTPServer {
	return &HTTPServer{
		address: address,
		router:  NewRouter(h),
		logger:  l.With("module", "http_server"),
	}
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
