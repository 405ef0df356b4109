package rest

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const dateLayout = "2 January 2006, 15:04"

// Templates implements echo.Renderer over the embedded page templates.
type Templates struct {
	pages *template.Template
}

func mustParseTemplates() *Templates {
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return t.Format(dateLayout) },
	}

	return &Templates{
		pages: template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.pages.ExecuteTemplate(w, name, data)
}

// render executes a page template with the viewer added to data.
func (h *Handler) render(c echo.Context, status int, name string, data map[string]any) error {
	if data == nil {
		data = make(map[string]any)
	}
	data["Viewer"] = viewerFrom(c)
	data["CSRF"], _ = c.Get(csrfKey).(string)

	return c.Render(status, name, data)
}

func (h *Handler) renderError(c echo.Context, status int, message string) error {
	return h.render(c, status, "error.html", map[string]any{
		"Status":  status,
		"Message": message,
	})
}

// httpErrorHandler renders echo errors as JSON under /api and as pages elsewhere.
func (h *Handler) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		message = http.StatusText(status)
	} else {
		h.log.ErrorContext(c.Request().Context(), "unhandled error", "error", err)
	}

	if isAPIPath(c.Request().URL.Path) {
		err = c.JSON(status, map[string]string{"error": message})
	} else {
		err = h.renderError(c, status, message)
	}
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
	}
}
