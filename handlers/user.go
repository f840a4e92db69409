package handlers

import (
	"net/http"
	"strings"

	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type SignUpRequest struct {
	Username string `form:"username" binding:"required"`
	Name     string `form:"name"`
	Password string `form:"password" binding:"required"`
}

type LogInRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func SignUpForm(c *gin.Context) {
	render(c, http.StatusOK, "signup.tmpl", gin.H{})
}

func SignUp(c *gin.Context) {
	req := SignUpRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		render(c, http.StatusOK, "signup.tmpl", gin.H{"error": "username and password are required"})
		return
	}
	user, err := models.UserCreate(req.Username, req.Name, req.Password)
	if err != nil {
		render(c, http.StatusOK, "signup.tmpl", gin.H{"error": "that username is taken"})
		return
	}
	auth.LoadSession(c).LoginUser(user.ID)
	c.Redirect(http.StatusFound, "/")
}

func LogInForm(c *gin.Context) {
	render(c, http.StatusOK, "login.tmpl", gin.H{"next": c.Query("next")})
}

func LogIn(c *gin.Context) {
	req := LogInRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		render(c, http.StatusOK, "login.tmpl", gin.H{"error": "username and password are required", "next": c.Query("next")})
		return
	}
	user, ok := models.UserLogin(req.Username, req.Password)
	if !ok {
		render(c, http.StatusOK, "login.tmpl", gin.H{"error": "wrong username or password", "next": c.Query("next")})
		return
	}
	auth.LoadSession(c).LoginUser(user.ID)
	c.Redirect(http.StatusFound, nextURL(c))
}

func LogOut(c *gin.Context) {
	auth.LoadSession(c).LogoutUser()
	c.Redirect(http.StatusFound, "/")
}

// nextURL returns a safe local redirect target. Anything that isn't a
// plain site path falls back to the index.
func nextURL(c *gin.Context) string {
	next := c.Query("next")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
