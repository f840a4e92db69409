package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"yatube/auth"
	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/feed"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

// Index serves the global feed. The first, unfiltered page is the only
// listing served through the cache: it is anonymous content and by far
// the highest-traffic page. Deeper pages and every other listing are
// rendered fresh.
func Index(c *gin.Context) {
	page := pageParam(c)
	if page == 1 {
		if body, ok := cache.Get(); ok {
			c.Data(http.StatusOK, htmlContentType, body)
			return
		}
	}
	pageObj, err := feed.Global(page, config.POSTS_PER_PAGE)
	if err != nil {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	body, err := renderToBytes("index.tmpl", gin.H{"page_obj": pageObj})
	if err != nil {
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	if page == 1 {
		cache.Put(body, time.Duration(config.CACHE_TIME)*time.Second)
	}
	c.Data(http.StatusOK, htmlContentType, body)
}

func GroupList(c *gin.Context) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if err != nil {
		notFound(c)
		return
	}
	pageObj, err := feed.Grouped(group.ID, pageParam(c), config.POSTS_PER_PAGE)
	if err != nil {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	render(c, http.StatusOK, "group_list.tmpl", gin.H{
		"group":    group,
		"page_obj": pageObj,
	})
}

func Profile(c *gin.Context) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		notFound(c)
		return
	}
	pageObj, err := feed.Author(author.ID, pageParam(c), config.POSTS_PER_PAGE)
	if err != nil {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	viewer := auth.LoadSession(c).User()
	following := viewer.ID != 0 && models.IsFollowing(viewer.ID, author.ID)
	render(c, http.StatusOK, "profile.tmpl", gin.H{
		"author":    author,
		"page_obj":  pageObj,
		"following": following,
		"viewer":    viewer,
	})
}

func PostDetail(c *gin.Context) {
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
	comments, err := models.CommentsForPost(post.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	render(c, http.StatusOK, "post_detail.tmpl", gin.H{
		"post":     post,
		"comments": comments,
	})
}

func PostCreateForm(c *gin.Context, user *models.User) {
	groups, _ := models.GroupsAll()
	render(c, http.StatusOK, "create_post.tmpl", gin.H{
		"groups": groups,
		"viewer": *user,
	})
}

func PostCreate(c *gin.Context, user *models.User) {
	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		groups, _ := models.GroupsAll()
		render(c, http.StatusOK, "create_post.tmpl", gin.H{
			"groups": groups,
			"error":  "Text is required",
			"viewer": *user,
		})
		return
	}
	post := models.Post{UserID: user.ID, Text: text}
	if groupID, err := strconv.ParseUint(c.PostForm("group"), 10, 64); err == nil && groupID > 0 {
		post.GroupID = &groupID
	}
	if file, err := c.FormFile("image"); err == nil {
		imagePath, thumbPath, err := savePostImage(file)
		if err != nil {
			c.String(http.StatusInternalServerError, "image upload failed")
			return
		}
		post.ImagePath = imagePath
		post.ThumbPath = thumbPath
	}
	if err := db.Instance.Create(&post).Error; err != nil {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func PostEditForm(c *gin.Context, user *models.User) {
	post, ok := loadOwnPost(c, user)
	if !ok {
		return
	}
	groups, _ := models.GroupsAll()
	render(c, http.StatusOK, "create_post.tmpl", gin.H{
		"groups":  groups,
		"post":    post,
		"is_edit": true,
		"viewer":  *user,
	})
}

func PostEdit(c *gin.Context, user *models.User) {
	post, ok := loadOwnPost(c, user)
	if !ok {
		return
	}
	text := strings.TrimSpace(c.PostForm("text"))
	if text != "" {
		post.Text = text
	}
	if groupID, err := strconv.ParseUint(c.PostForm("group"), 10, 64); err == nil && groupID > 0 {
		post.GroupID = &groupID
	} else {
		post.GroupID = nil
	}
	post.Group = nil
	if file, err := c.FormFile("image"); err == nil {
		imagePath, thumbPath, err := savePostImage(file)
		if err == nil {
			post.ImagePath = imagePath
			post.ThumbPath = thumbPath
		}
	}
	if err := db.Instance.Omit("User", "Group").Save(&post).Error; err != nil {
		c.String(http.StatusInternalServerError, "DB error")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// loadOwnPost loads the post and checks authorship. Non-authors get
// bounced to the post page, matching the original edit behavior.
func loadOwnPost(c *gin.Context, user *models.User) (models.Post, bool) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return models.Post{}, false
	}
	post, err := models.PostByID(id)
	if err != nil {
		notFound(c)
		return models.Post{}, false
	}
	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return models.Post{}, false
	}
	return post, true
}
