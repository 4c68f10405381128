package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the HTML shell for the browser navigation routes.
// The frontend is a single-page app; every guarded page gets the same
// shell and the client router takes over from there.
type PageHandler struct{}

// NewPageHandler creates a new page handler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

const pageShell = `<!DOCTYPE html>
<html lang="de">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Feinkost Weber</title>
  <link rel="stylesheet" href="/assets/app.css" />
</head>
<body data-page=%q>
  <div id="app"></div>
  <script src="/assets/app.js"></script>
</body>
</html>`

// Serve renders the app shell for the requested page
func (h *PageHandler) Serve(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(pageShell, c.Path()))
}
