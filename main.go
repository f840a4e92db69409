package main

import (
	"log"
	"strings"
	"time"

	"yatube/auth"
	"yatube/config"
	"yatube/db"
	"yatube/handlers"
	"yatube/models"
	"yatube/storage"
	"yatube/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	handlers.LoadTemplates("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/"})))
	}
	// No cache by default; the index route overrides with the listing
	// cache TTL so clients see the same staleness window the server uses
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler())

	// Public listing pages
	router.GET("/", (&utils.CacheRouter{CacheTime: config.CACHE_TIME}).Handler(), handlers.Index)
	router.GET("/group/:slug/", handlers.GroupList)
	router.GET("/profile/:username/", handlers.Profile)
	router.GET("/posts/:id/", handlers.PostDetail)
	router.GET("/media/*path", handlers.MediaFetch)

	// Authenticated pages - anonymous viewers get sent to login
	authRouter := &auth.Router{Base: router}
	authRouter.GET("/create/", handlers.PostCreateForm)
	authRouter.POST("/create/", handlers.PostCreate)
	authRouter.GET("/posts/:id/edit/", handlers.PostEditForm)
	authRouter.POST("/posts/:id/edit/", handlers.PostEdit)
	authRouter.GET("/posts/:id/comment/", handlers.AddComment)
	authRouter.POST("/posts/:id/comment/", handlers.AddComment)
	authRouter.GET("/follow/", handlers.FollowIndex)
	authRouter.GET("/profile/:username/follow/", handlers.ProfileFollow)
	authRouter.GET("/profile/:username/unfollow/", handlers.ProfileUnfollow)

	// Signup / login / logout
	router.GET("/auth/signup/", handlers.SignUpForm)
	router.POST("/auth/signup/", handlers.SignUp)
	router.GET("/auth/login/", handlers.LogInForm)
	router.POST("/auth/login/", handlers.LogIn)
	router.GET("/auth/logout/", handlers.LogOut)

	router.NoRoute(handlers.NotFound)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
