package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daniilsolovey/blogicum/internal/blog"
)

const (
	sessionCookie = "sessionid"
	viewerKey     = "viewer"

	csrfCookie = "csrftoken"
	csrfField  = "csrf_token"
	csrfKey    = "csrf"
)

// Metrics holds the HTTP collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blogicum",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blogicum",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(m.requests, m.duration, collectors.NewGoCollector())

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (h *Handler) metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := responseStatus(c, err)

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		h.metrics.requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
		h.metrics.duration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())

		return err
	}
}

func (h *Handler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := responseStatus(c, err)

		h.log.InfoContext(c.Request().Context(), "HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.RealIP(),
		)

		return err
	}
}

// loadViewer resolves the session cookie into the request viewer.
func (h *Handler) loadViewer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		viewer, err := h.blog.ViewerBySession(c.Request().Context(), cookie.Value)
		if err != nil {
			h.log.ErrorContext(c.Request().Context(), "failed to resolve session", "error", err)
		} else if viewer != nil {
			c.Set(viewerKey, viewer)
		}

		return next(c)
	}
}

// requireAuth redirects anonymous viewers to the login page.
func (h *Handler) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if viewerFrom(c) == nil {
			return c.Redirect(http.StatusFound, loginPath(c.Request().URL.RequestURI()))
		}
		return next(c)
	}
}

// responseStatus is the status the client will see once err reaches the
// echo error handler.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func viewerFrom(c echo.Context) *blog.User {
	viewer, _ := c.Get(viewerKey).(*blog.User)
	return viewer
}

// csrfProtection issues a token cookie on page requests and rejects unsafe
// requests whose csrf_token form field does not match it.
func csrfProtection() echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "form:" + csrfField,
		ContextKey:     csrfKey,
		CookieName:     csrfCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	})
}
