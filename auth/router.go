package auth

import (
	"net/http"
	"net/url"

	"yatube/models"

	"github.com/gin-gonic/gin"
)

// LoginURL is where anonymous viewers get redirected. The original
// requested path is passed along so login can bounce them back.
const LoginURL = "/auth/login/"

// User is authenticated
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds auth checks + User pre-loading.
// This is a web surface, so anonymous viewers are redirected to the
// login page rather than served a 401.
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.Redirect(http.StatusFound, LoginURL+"?next="+url.QueryEscape(c.Request.URL.Path))
		return
	}
	handler(c, &user)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
