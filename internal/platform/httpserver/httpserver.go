package httpserver

import (
	"net/http"
	"time"

	"healthgateway/internal/platform/config"
)

// New builds the HTTP server. The write timeout leaves headroom over the
// per-request timeout so handlers can still write their timeout response.
func New(cfg config.Server, handler http.Handler) *http.Server {
	writeTimeout := 60 * time.Second
	if cfg.RequestTimeout > 0 {
		writeTimeout = cfg.RequestTimeout + 5*time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}
