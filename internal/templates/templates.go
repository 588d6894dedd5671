// Package templates holds the embedded HTML pages and the props passed to
// them from the handlers.
package templates

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed pages/*.html
var pagesFS embed.FS

// Load parses the embedded pages into the Gin engine's HTML renderer
func Load(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(pagesFS, "pages/*.html")))
}

// Render renders a named page with the given props
func Render(c *gin.Context, status int, name string, props any) {
	c.HTML(status, name, props)
}

// RenderError renders the generic error page
func RenderError(c *gin.Context, status int, message string) {
	Render(c, status, "error.html", ErrorPageProps{
		Error:   http.StatusText(status),
		Message: message,
	})
}
