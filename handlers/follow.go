package handlers

import (
	"errors"
	"net/http"

	"yatube/config"
	"yatube/feed"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

// FollowIndex serves the personal follow feed. Viewer-specific, so it
// never touches the listing cache.
func FollowIndex(c *gin.Context, user *models.User) {
	pageObj, err := feed.Personal(user.ID, pageParam(c), config.POSTS_PER_PAGE)
	if err != nil {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	render(c, http.StatusOK, "follow.tmpl", gin.H{
		"page_obj": pageObj,
		"viewer":   *user,
	})
}

// ProfileFollow subscribes the viewer to an author. Self-follow and
// double-follow are no-ops; either way the viewer ends up back on the
// profile.
func ProfileFollow(c *gin.Context, user *models.User) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFound(c)
		return
	}
	if err := models.FollowCreate(user.ID, author.ID); err != nil && !errors.Is(err, models.ErrSelfFollow) {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow removes the edge if present and redirects to the
// index either way.
func ProfileUnfollow(c *gin.Context, user *models.User) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFound(c)
		return
	}
	if err := models.FollowDelete(user.ID, author.ID); err != nil {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.Redirect(http.StatusFound, "/")
}
