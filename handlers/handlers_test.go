package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"yatube/auth"
	"yatube/cache"
	"yatube/config"
	"yatube/db"
	"yatube/models"
	"yatube/utils"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter builds the same routing surface main assembles, against
// a fresh in-memory database and an empty listing cache.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.Instance = gdb
	models.Init()
	cache.Invalidate()
	LoadTemplates("../templates/*.tmpl")

	router := gin.New()
	store := gormsessions.NewStore(db.Instance, true, []byte("test session key"))
	router.Use(sessions.Sessions("token", store))
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler())

	router.GET("/", (&utils.CacheRouter{CacheTime: config.CACHE_TIME}).Handler(), Index)
	router.GET("/group/:slug/", GroupList)
	router.GET("/profile/:username/", Profile)
	router.GET("/posts/:id/", PostDetail)

	authRouter := &auth.Router{Base: router}
	authRouter.GET("/create/", PostCreateForm)
	authRouter.POST("/create/", PostCreate)
	authRouter.GET("/posts/:id/edit/", PostEditForm)
	authRouter.POST("/posts/:id/edit/", PostEdit)
	authRouter.GET("/posts/:id/comment/", AddComment)
	authRouter.POST("/posts/:id/comment/", AddComment)
	authRouter.GET("/follow/", FollowIndex)
	authRouter.GET("/profile/:username/follow/", ProfileFollow)
	authRouter.GET("/profile/:username/unfollow/", ProfileUnfollow)

	router.GET("/auth/signup/", SignUpForm)
	router.POST("/auth/signup/", SignUp)
	router.GET("/auth/login/", LogInForm)
	router.POST("/auth/login/", LogIn)
	router.GET("/auth/logout/", LogOut)

	router.NoRoute(NotFound)
	return router
}

func doGet(router *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doPost(router *gin.Engine, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	u, err := models.UserCreate(username, username, "password")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func createPost(t *testing.T, author models.User, text string) models.Post {
	t.Helper()
	p := models.Post{UserID: author.ID, Text: text}
	if err := db.Instance.Create(&p).Error; err != nil {
		t.Fatalf("create post %q: %v", text, err)
	}
	return p
}

func loginAs(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w := doPost(router, "/auth/login/", url.Values{
		"username": {username},
		"password": {"password"},
	}, "")
	if w.Code != http.StatusFound {
		t.Fatalf("login status = %d, want 302", w.Code)
	}
	setCookie := w.Header().Get("Set-Cookie")
	if setCookie == "" {
		t.Fatal("login set no session cookie")
	}
	cookie, _, _ := strings.Cut(setCookie, ";")
	return cookie
}

func TestIndexCacheControlHeader(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "author")
	createPost(t, author, "hello")

	w := doGet(router, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("index status = %d", w.Code)
	}
	want := "max-age=" + strconv.Itoa(config.CACHE_TIME)
	if got := w.Header().Get("cache-control"); got != want {
		t.Errorf("cache-control = %q, want %q", got, want)
	}

	// Every other listing is no-cache
	w = doGet(router, "/profile/author/", "")
	if got := w.Header().Get("cache-control"); got != "no-cache" {
		t.Errorf("profile cache-control = %q, want no-cache", got)
	}
}

func TestIndexServesStalePageWithinTTL(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "author")
	createPost(t, author, "before the cache")

	first := doGet(router, "/", "")
	if first.Code != http.StatusOK {
		t.Fatalf("index status = %d", first.Code)
	}
	if !strings.Contains(first.Body.String(), "before the cache") {
		t.Fatal("index is missing the seeded post")
	}

	createPost(t, author, "written after caching")

	second := doGet(router, "/", "")
	if second.Body.String() != first.Body.String() {
		t.Error("cached index page is not byte-identical within the TTL window")
	}
	if strings.Contains(second.Body.String(), "written after caching") {
		t.Error("new post leaked into the cached page")
	}

	cache.Invalidate()
	third := doGet(router, "/", "")
	if !strings.Contains(third.Body.String(), "written after caching") {
		t.Error("index is stale after explicit invalidation")
	}
}

func TestCacheCoversOnlyFirstUnfilteredPage(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "author")
	group := models.Group{Title: "Cats", Slug: "cats"}
	if err := db.Instance.Create(&group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	createPost(t, author, "warm the cache")

	if w := doGet(router, "/", ""); w.Code != http.StatusOK {
		t.Fatalf("index status = %d", w.Code)
	}

	// A post written after the index was cached still shows up on the
	// group page and the profile page immediately
	post := models.Post{UserID: author.ID, Text: "fresh in the group", GroupID: &group.ID}
	if err := db.Instance.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	w := doGet(router, "/group/cats/", "")
	if !strings.Contains(w.Body.String(), "fresh in the group") {
		t.Error("group listing served stale content")
	}
	w = doGet(router, "/profile/author/", "")
	if !strings.Contains(w.Body.String(), "fresh in the group") {
		t.Error("profile listing served stale content")
	}
	w = doGet(router, "/", "")
	if strings.Contains(w.Body.String(), "fresh in the group") {
		t.Error("cached index page picked up the new post before expiry")
	}
}

func TestFollowUnfollowRedirects(t *testing.T) {
	router := setupRouter(t)
	createUser(t, "viewer")
	createUser(t, "author")
	cookie := loginAs(t, router, "viewer")

	w := doGet(router, "/profile/author/follow/", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/profile/author/" {
		t.Fatalf("follow: status %d location %q", w.Code, w.Header().Get("Location"))
	}
	var count int64
	db.Instance.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Fatalf("edge count = %d, want 1", count)
	}

	// Double-follow is a no-op redirect
	w = doGet(router, "/profile/author/follow/", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("double follow status = %d", w.Code)
	}
	db.Instance.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Fatalf("edge count after double follow = %d, want 1", count)
	}

	// Self-follow is swallowed and redirects like any other follow
	w = doGet(router, "/profile/viewer/follow/", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("self follow status = %d", w.Code)
	}
	db.Instance.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Fatalf("edge count after self follow = %d, want 1", count)
	}

	w = doGet(router, "/profile/author/unfollow/", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("unfollow: status %d location %q", w.Code, w.Header().Get("Location"))
	}
	db.Instance.Model(&models.Follow{}).Count(&count)
	if count != 0 {
		t.Fatalf("edge count after unfollow = %d, want 0", count)
	}

	// Unfollow with no edge still redirects home
	w = doGet(router, "/profile/author/unfollow/", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("repeat unfollow: status %d location %q", w.Code, w.Header().Get("Location"))
	}
}

func TestPersonalFeedShowsOnlyFollowedAuthors(t *testing.T) {
	router := setupRouter(t)
	viewer := createUser(t, "viewer")
	followed := createUser(t, "followed")
	stranger := createUser(t, "stranger")
	cookie := loginAs(t, router, "viewer")

	if err := models.FollowCreate(viewer.ID, followed.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	createPost(t, followed, "hello subscribers")
	createPost(t, stranger, "shouting into the void")

	w := doGet(router, "/follow/", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("follow feed status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "hello subscribers") {
		t.Error("followed author's post missing from personal feed")
	}
	if strings.Contains(body, "shouting into the void") {
		t.Error("non-followed author's post leaked into personal feed")
	}

	// The same post is on the public index for everyone
	w = doGet(router, "/", "")
	if !strings.Contains(w.Body.String(), "shouting into the void") {
		t.Error("global index is missing a public post")
	}
}

func TestAuthRequiredRedirectsToLogin(t *testing.T) {
	router := setupRouter(t)
	author := createUser(t, "author")
	post := createPost(t, author, "a post")

	paths := []string{
		"/follow/",
		"/create/",
		"/profile/author/follow/",
		"/profile/author/unfollow/",
	}
	for _, path := range paths {
		w := doGet(router, path, "")
		if w.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", path, w.Code)
			continue
		}
		loc := w.Header().Get("Location")
		if !strings.HasPrefix(loc, "/auth/login/?next=") {
			t.Errorf("%s: redirected to %q, want login", path, loc)
		}
	}

	// A guest comment is dropped, not stored
	w := doPost(router, "/posts/"+strconv.FormatUint(post.ID, 10)+"/comment/",
		url.Values{"text": {"guest comment"}}, "")
	if w.Code != http.StatusFound {
		t.Fatalf("guest comment status = %d", w.Code)
	}
	var count int64
	db.Instance.Model(&models.Comment{}).Count(&count)
	if count != 0 {
		t.Errorf("comment count = %d, want 0", count)
	}
}

func TestAddComment(t *testing.T) {
	router := setupRouter(t)
	createUser(t, "viewer")
	author := createUser(t, "author")
	post := createPost(t, author, "commented post")
	cookie := loginAs(t, router, "viewer")

	postURL := "/posts/" + strconv.FormatUint(post.ID, 10) + "/"
	w := doPost(router, postURL+"comment/", url.Values{"text": {"nice one"}}, cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != postURL {
		t.Fatalf("comment: status %d location %q", w.Code, w.Header().Get("Location"))
	}

	w = doGet(router, postURL, "")
	if !strings.Contains(w.Body.String(), "nice one") {
		t.Error("comment missing from the post page")
	}
}

func TestPostCreateAndEdit(t *testing.T) {
	router := setupRouter(t)
	createUser(t, "writer")
	group := models.Group{Title: "Cats", Slug: "cats"}
	if err := db.Instance.Create(&group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	cookie := loginAs(t, router, "writer")

	w := doPost(router, "/create/", url.Values{
		"text":  {"my first post"},
		"group": {strconv.FormatUint(group.ID, 10)},
	}, cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/profile/writer/" {
		t.Fatalf("create: status %d location %q", w.Code, w.Header().Get("Location"))
	}
	var post models.Post
	if err := db.Instance.First(&post).Error; err != nil {
		t.Fatalf("post not stored: %v", err)
	}
	if post.Text != "my first post" || post.GroupID == nil || *post.GroupID != group.ID {
		t.Fatalf("stored post = %+v", post)
	}

	postURL := "/posts/" + strconv.FormatUint(post.ID, 10) + "/"
	w = doPost(router, postURL+"edit/", url.Values{
		"text":  {"edited text"},
		"group": {strconv.FormatUint(group.ID, 10)},
	}, cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != postURL {
		t.Fatalf("edit: status %d location %q", w.Code, w.Header().Get("Location"))
	}
	if err := db.Instance.First(&post, post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if post.Text != "edited text" {
		t.Errorf("post text = %q after edit", post.Text)
	}

	// Another user cannot edit someone else's post
	createUser(t, "intruder")
	intruderCookie := loginAs(t, router, "intruder")
	w = doPost(router, postURL+"edit/", url.Values{"text": {"hijacked"}}, intruderCookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != postURL {
		t.Fatalf("intruder edit: status %d location %q", w.Code, w.Header().Get("Location"))
	}
	db.Instance.First(&post, post.ID)
	if post.Text == "hijacked" {
		t.Error("non-author managed to edit the post")
	}
}

func TestUnknownPagesReturn404(t *testing.T) {
	router := setupRouter(t)
	createUser(t, "author")

	paths := []string{
		"/unexisting_page/",
		"/group/no-such-group/",
		"/profile/nobody/",
		"/posts/99999/",
	}
	for _, path := range paths {
		w := doGet(router, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, w.Code)
		}
	}
}
