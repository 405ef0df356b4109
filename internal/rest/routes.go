package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/swaggo/swag"
)

const (
	apiV1Prefix = "/api/v1"

	healthPath  = "/health"
	metricsPath = "/metrics"
	swaggerPath = "/swagger/doc.json"
)

// RegisterRoutes builds the echo instance with pages, the JSON API and ops endpoints.
func (h *Handler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = h.templates
	e.HTTPErrorHandler = h.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(h.metricsMiddleware, h.loggingMiddleware, h.loadViewer)

	h.registerPageRoutes(e)
	h.registerAPIRoutes(e.Group(apiV1Prefix))
	h.registerOpsRoutes(e)

	return e
}

func (h *Handler) registerPageRoutes(e *echo.Echo) {
	csrf := csrfProtection()

	e.GET("/", h.Index, csrf)
	e.GET("/posts/:id/", h.PostDetail, csrf)
	e.GET("/category/:slug/", h.CategoryPosts, csrf)
	e.GET("/profile/:username/", h.Profile, csrf)

	getPost := []string{http.MethodGet, http.MethodPost}
	e.Match(getPost, "/posts/create/", h.CreatePost, h.requireAuth, csrf)
	e.Match(getPost, "/posts/:id/edit/", h.EditPost, h.requireAuth, csrf)
	e.Match(getPost, "/posts/:id/delete/", h.DeletePost, h.requireAuth, csrf)
	e.POST("/posts/:id/comment/", h.AddComment, h.requireAuth, csrf)
	e.Match(getPost, "/posts/:id/edit_comment/:comment_id/", h.EditComment, h.requireAuth, csrf)
	e.Match(getPost, "/posts/:id/delete_comment/:comment_id/", h.DeleteComment, h.requireAuth, csrf)
	e.Match(getPost, "/edit_profile/", h.EditProfile, h.requireAuth, csrf)

	e.Match(getPost, "/auth/registration/", h.Registration, csrf)
	e.Match(getPost, "/auth/login/", h.Login, csrf)
	e.POST("/auth/logout/", h.Logout, csrf)

	if h.mediaDir != "" {
		e.Static(mediaPrefix+"/", h.mediaDir)
	}
}

func (h *Handler) registerAPIRoutes(g *echo.Group) {
	g.GET("/posts", h.APIPosts)
	g.GET("/posts/:id", h.APIPost)
	g.GET("/categories", h.APICategories)
	g.GET("/categories/:slug/posts", h.APICategoryPosts)
	g.GET("/profile/:username/posts", h.APIProfilePosts)
}

func (h *Handler) registerOpsRoutes(e *echo.Echo) {
	e.GET(healthPath, h.Health)
	e.GET(metricsPath, echo.WrapHandler(h.metrics.Handler()))
	e.GET(swaggerPath, h.SwaggerDoc)
}

// Health handles GET /health
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err, http.StatusNotFound, "swagger doc is not registered")
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, apiV1Prefix+"/")
}
