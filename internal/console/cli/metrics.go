package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// startMetricsServer serves the console's Prometheus registry on
// config.MetricsAddr. It is a no-op when the address is empty. The returned
// function shuts the server down.
func (a *App) startMetricsServer(ctx context.Context) (func(), error) {
	if a.config.MetricsAddr == "" {
		return func() {}, nil
	}

	ln, err := net.Listen("tcp", a.config.MetricsAddr)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "metrics server stopped", "error", err)
		}
	}()
	a.log.Info(ctx, "serving metrics", "addr", ln.Addr().String())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}
