package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"net/url"

	"storefront/pkg/money"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewViewsEngine builds the storefront's Fiber views engine from the
// embedded page templates.
func NewViewsEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		// The embedded tree always contains views/; this cannot happen
		// at runtime.
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("formatPrice", money.Format)
	engine.AddFunc("pathEscape", func(s *string) string {
		if s == nil {
			return ""
		}
		return url.PathEscape(*s)
	})
	return engine
}
