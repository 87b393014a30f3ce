package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/bookeater/bookeater/internal/identity"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(identity.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is layered
	// on top of the CSRF request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(identity.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		router.Use(identity.Middleware(cfg.SessionManager))
	}

	// Load HTML templates
	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	// Identity provider hand-off routes
	if cfg.SessionManager != nil {
		loginController := identity.NewLoginController(cfg.SessionManager)
		loginController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	libraryController := NewLibraryController(cfg.Books, cfg.Library, cfg.Directory)
	reviewsController := NewReviewsController(cfg.Reviews, cfg.Books)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Library routes
	router.GET("/", libraryController.Index)
	router.GET("/books/create", libraryController.CreateForm)
	router.POST("/books/create", libraryController.Create)
	router.GET("/books/:id", libraryController.Detail)
	router.GET("/books/:id/edit", libraryController.EditForm)
	router.POST("/books/:id/edit", libraryController.Edit)
	router.GET("/books/:id/delete", libraryController.DeleteConfirm)
	router.POST("/books/:id/delete", libraryController.Delete)

	// Review routes
	router.GET("/books/:id/review", reviewsController.WriteForm)
	router.POST("/books/:id/review", reviewsController.Submit)
	router.GET("/reviews", reviewsController.MyReviews)
	router.GET("/reviews/:id/delete", reviewsController.DeleteConfirm)
	router.POST("/reviews/:id/delete", reviewsController.Delete)

	return router
}
