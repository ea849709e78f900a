package estimates

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kilianp07/ecoamp/core/logger"
)

// Serve runs h on addr until ctx is canceled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log logger.Logger) error {
	if log == nil {
		log = logger.NopLogger{}
	}
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("api server shutdown: %v", err)
		}
		cancel()
	}()
	log.Infof("serving api on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
