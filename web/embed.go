// Package web carries the server-rendered templates inside the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// Engine returns a view engine over the embedded templates. Template names
// are their paths under templates/ without the extension, e.g. "guest/cart".
func Engine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("join", strings.Join)
	return engine
}
