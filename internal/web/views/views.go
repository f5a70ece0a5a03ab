// Package views renders the client's HTML pages from embedded templates.
// No templating library is involved; html/template covers the thin page
// surface this client has.
package views

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Render executes the named page template and writes it as the response
// body, preserving any status code the handler already set.
func Render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
