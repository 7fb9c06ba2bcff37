package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

// New builds the REST router. Every cycle endpoint requires a Bearer token
// issued with IssueUserToken; the token's subject scopes all reads and writes.
func New(jwtSecret string) http.Handler {
	r := httprouter.New()

	protected := func(h httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, req *http.Request, p httprouter.Params) {
			auth(jwtSecret, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				h(w, req, p)
			})).ServeHTTP(w, req)
		}
	}

	r.GET("/api/cycles/history", protected(getHistory))
	r.POST("/api/cycles", protected(createPeriod))
	r.PUT("/api/cycles/:start", protected(updatePeriod))
	r.DELETE("/api/cycles/:start", protected(deletePeriod))
	r.GET("/api/cycles/snapshot", protected(getSnapshot))

	return r
}

// Serve runs the REST API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr, jwtSecret string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: New(jwtSecret),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown failed", "error", err)
		}
	}()

	logger.Info("http api listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
	}
}
