package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blogicum/internal/blog"
)

type Handler struct {
	blog      *blog.Manager
	log       *slog.Logger
	metrics   *Metrics
	templates *Templates
	mediaDir  string
}

// NewHandler returns page, API and ops handlers. Uploaded post images are
// stored in mediaDir and served under /media/; an empty mediaDir disables
// uploads.
func NewHandler(manager *blog.Manager, log *slog.Logger, mediaDir string) *Handler {
	return &Handler{
		blog:      manager,
		log:       log,
		metrics:   NewMetrics(),
		templates: mustParseTemplates(),
		mediaDir:  mediaDir,
	}
}

func (h *Handler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// handlePageError maps manager errors of an HTML request to a response.
// Permission failures send the viewer back to the post at postID.
func (h *Handler) handlePageError(c echo.Context, err error, postID int) error {
	switch {
	case errors.Is(err, blog.ErrNotFound), errors.Is(err, blog.ErrInvalidPage):
		return h.renderError(c, http.StatusNotFound, "Page not found")
	case errors.Is(err, blog.ErrPermissionDenied):
		return c.Redirect(http.StatusFound, postPath(postID))
	case errors.Is(err, blog.ErrUnauthorized):
		return c.Redirect(http.StatusFound, loginPath(c.Request().URL.RequestURI()))
	}

	h.log.ErrorContext(c.Request().Context(), "request failed", "error", err, "path", c.Request().URL.Path)
	return h.renderError(c, http.StatusInternalServerError, "Internal server error")
}

// handleAPIError is handleError for manager errors of JSON requests.
func (h *Handler) handleAPIError(c echo.Context, err error) error {
	var verr *blog.ValidationError
	switch {
	case errors.Is(err, blog.ErrNotFound), errors.Is(err, blog.ErrInvalidPage):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "invalid form", "fields": verr.Fields})
	}

	return h.handleError(c, err, http.StatusInternalServerError, "internal error")
}

func postPath(postID int) string {
	return "/posts/" + strconv.Itoa(postID) + "/"
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func loginPath(next string) string {
	return "/auth/login/?next=" + url.QueryEscape(next)
}

// intParam parses a numeric path parameter. Malformed ids are not found.
func intParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, blog.ErrNotFound
	}
	return id, nil
}
