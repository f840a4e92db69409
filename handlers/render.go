package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"yatube/auth"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

var templates *template.Template

// LoadTemplates parses the page templates. Called from main and from
// test setup.
func LoadTemplates(glob string) {
	templates = template.Must(template.ParseGlob(glob))
}

// renderToBytes produces the full page body. The index page goes
// through this directly so the bytes can be stored in the listing
// cache; everything else uses render below.
func renderToBytes(name string, data gin.H) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(c *gin.Context, code int, name string, data gin.H) {
	if _, ok := data["viewer"]; !ok {
		data["viewer"] = auth.LoadSession(c).User()
	}
	body, err := renderToBytes(name, data)
	if err != nil {
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	c.Data(code, htmlContentType, body)
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.tmpl", gin.H{})
}

// NotFound backs the router's NoRoute handler
func NotFound(c *gin.Context) {
	notFound(c)
}
