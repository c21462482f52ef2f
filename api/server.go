package api

import (
	"net/http"
	"time"

	"github.com/angelmondragon/secondnest/pkg/config"
)

// NewServer returns the HTTP server that cmd/api runs.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
