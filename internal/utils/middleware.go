package utils

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/AngelCh415/dayparting-go/internal/models"
)

type ctxKey string

const requestIDKey ctxKey = "rid"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, rid))
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}

func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.String("rid", RID(r.Context())),
				slog.Duration("latency", time.Since(start)))
		})
	}
}

// RateLimit keeps one token bucket per client IP. Over the limit it answers
// 429 with the same failure payload the analysis endpoints use.
func RateLimit(rps float64, burst int, log *slog.Logger) func(http.Handler) http.Handler {
	cl := newClientLimiters(rate.Limit(rps), burst, 10*time.Minute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cl.get(clientIP(r), time.Now()).Allow() {
				log.Warn("rate limit exceeded",
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("rid", RID(r.Context())))
				w.Header().Set("Retry-After", "1")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, models.AnalysisResult{Success: false, Error: "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type clientLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

type clientLimiters struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idle    time.Duration
	clients map[string]*clientLimiter
	swept   time.Time
}

func newClientLimiters(limit rate.Limit, burst int, idle time.Duration) *clientLimiters {
	return &clientLimiters{limit: limit, burst: burst, idle: idle, clients: make(map[string]*clientLimiter)}
}

func (c *clientLimiters) get(key string, now time.Time) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	// limpieza perezosa de clientes inactivos
	if now.Sub(c.swept) > c.idle {
		for k, v := range c.clients {
			if now.Sub(v.seen) > c.idle {
				delete(c.clients, k)
			}
		}
		c.swept = now
	}

	e, ok := c.clients[key]
	if !ok {
		e = &clientLimiter{lim: rate.NewLimiter(c.limit, c.burst)}
		c.clients[key] = e
	}
	e.seen = now
	return e.lim
}

func (c *clientLimiters) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func RID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
