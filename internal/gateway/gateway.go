// Package gateway is the public entry point in front of the auth service. It
// applies CORS and per-IP rate limiting and proxies everything else.
package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/go-shop-auth/internal/config"
	appmiddleware "github.com/go-shop-auth/internal/transport/http/middleware"
)

// Gateway is an http.Handler. Close releases the rate limiter.
type Gateway struct {
	handler http.Handler
	limiter *appmiddleware.RateLimiter
}

func New(cfg *config.Config) (*Gateway, error) {
	target, err := url.Parse(cfg.AuthServiceURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("gateway: invalid AUTH_SERVICE_URL %q", cfg.AuthServiceURL)
	}

	limiter := appmiddleware.NewRateLimiter(
		appmiddleware.Tier{Requests: cfg.GatewayRateAnon, Window: cfg.GatewayRateWindow},
		appmiddleware.Tier{Requests: cfg.GatewayRateAuthed, Window: cfg.GatewayRateWindow},
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(limiter.Limit)

	r.Get("/gateway-health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"gateway is healthy"}`))
	})
	r.Handle("/*", newProxy(target))

	return &Gateway{handler: r, limiter: limiter}, nil
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) { g.handler.ServeHTTP(w, r) }

func (g *Gateway) Close() { g.limiter.Close() }

func newProxy(target *url.URL) *httputil.ReverseProxy {
	proxy := httputil.NewSingleHostReverseProxy(target)
	// CORS is answered here; upstream headers would be duplicated.
	proxy.ModifyResponse = func(resp *http.Response) error {
		for name := range resp.Header {
			if strings.HasPrefix(name, "Access-Control-") {
				resp.Header.Del(name)
			}
		}
		return nil
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		slog.Error("gateway: upstream failed", "path", r.URL.Path, "err", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"error":"auth service unavailable"}`))
	}
	return proxy
}
