// Package inkpress is the back end for a marketing site with a blog CMS.
// It serves the public blog content API, an admin content pipeline
// (posts, categories, tags, comments, users, image uploads) behind
// session-cookie authentication, and static marketing assets.
package inkpress

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// App is the central application. It wires together the store, cache,
// handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, and routes, then starts
// the server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkpress: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("inkpress: init store: %w", err)
	}
	a.Store = store

	if err := a.bootstrapAdmin(); err != nil {
		return fmt.Errorf("inkpress: bootstrap admin: %w", err)
	}

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// bootstrapAdmin creates the initial admin account when the users table is
// empty, so a fresh install can log in.
func (a *App) bootstrapAdmin() error {
	users, err := a.Store.ListUsers()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("no users exist and AdminPassword is not set")
	}
	u := User{Username: a.Config.AdminUsername, IsAdmin: true}
	if err := a.Store.CreateUser(&u, a.Config.AdminPassword); err != nil {
		return err
	}
	a.Echo.Logger.Infof("created initial admin user %q", u.Username)
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Static marketing assets and uploads
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public content API
	e.GET("/api/posts", a.handlePosts)
	e.GET("/api/posts/:slug", a.handlePostBySlug)
	e.GET("/api/posts/:slug/comments", a.handlePostComments)
	e.POST("/api/posts/:slug/comments", a.handleCreateComment)
	e.GET("/api/categories", a.handleCategories)
	e.GET("/api/tags", a.handleTags)

	// Session
	e.GET("/api/session", a.handleSession)
	e.POST("/api/login", a.handleLogin)
	e.POST("/api/logout", a.handleLogout)

	// Admin API — every route goes through requireAdmin.
	admin := e.Group("/api/admin", a.requireAdmin)
	admin.GET("/stats", a.handleAdminStats)

	admin.GET("/posts", a.handleAdminPosts)
	admin.POST("/posts", a.handleAdminPostCreate)
	admin.GET("/posts/:id", a.handleAdminPostGet)
	admin.PUT("/posts/:id", a.handleAdminPostUpdate)
	admin.DELETE("/posts/:id", a.handleAdminPostDelete)

	admin.GET("/categories", a.handleAdminCategories)
	admin.POST("/categories", a.handleAdminCategoryCreate)
	admin.PUT("/categories/:id", a.handleAdminCategoryUpdate)
	admin.DELETE("/categories/:id", a.handleAdminCategoryDelete)

	admin.GET("/tags", a.handleAdminTags)
	admin.POST("/tags", a.handleAdminTagCreate)
	admin.PUT("/tags/:id", a.handleAdminTagUpdate)
	admin.DELETE("/tags/:id", a.handleAdminTagDelete)

	admin.GET("/comments", a.handleAdminComments)
	admin.POST("/comments/:id/approve", a.handleAdminCommentApprove)
	admin.DELETE("/comments/:id", a.handleAdminCommentDelete)

	admin.GET("/users", a.handleAdminUsers)
	admin.POST("/users", a.handleAdminUserCreate)
	admin.PUT("/users/:id", a.handleAdminUserUpdate)
	admin.DELETE("/users/:id", a.handleAdminUserDelete)

	admin.GET("/images", a.handleImageList)
	admin.POST("/images", a.handleImageUpload)
	admin.DELETE("/images/:filename", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
