package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"yatube/models"

	"github.com/gin-gonic/gin"
)

// AddComment stores a comment and bounces back to the post page.
// A GET just redirects, so sharing the comment URL is harmless.
func AddComment(c *gin.Context, user *models.User) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return
	}
	post, err := models.PostByID(id)
	if err != nil {
		notFound(c)
		return
	}
	if c.Request.Method == http.MethodPost {
		text := strings.TrimSpace(c.PostForm("text"))
		if text != "" {
			if _, err := models.CommentCreate(post.ID, user.ID, text); err != nil {
				c.String(http.StatusInternalServerError, "DB error")
				return
			}
		}
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}
