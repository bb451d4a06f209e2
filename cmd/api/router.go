package main

import (
	"context"
	"net/http"
	"time"

	"catalog-backend/internal/shared/middleware"
	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares; Logger wraps Recovery so recovered panics are logged as 500s
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Authenticate(c.JWTManager),
	)

	router.GET("/health", healthCheckHandler(c))
	router.POST("/api-token-auth/", c.AuthHandler.ObtainToken)

	setupBookRoutes(router, c)
	setupLegacyBookRoutes(router, c)
	setupAuthorRoutes(router, c)

	return router
}

// ========================================
// BOOK ROUTES
// ========================================

// setupBookRoutes mounts the same book handlers under /books/ and /books_all/.
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	h := c.BookHandler
	for _, prefix := range []string{"/books", "/books_all"} {
		books := router.Group(prefix)
		{
			books.GET("/", h.ListBooks)
			books.GET("/:id/", h.GetBook)
		}

		write := books.Group("", middleware.RequireAuthenticated())
		{
			write.POST("/", h.CreateBook)
			write.PUT("/:id/", h.UpdateBook)
			write.PATCH("/:id/", h.PatchBook)
			write.DELETE("/:id/", h.DeleteBook)
		}
	}
}

func setupLegacyBookRoutes(router *gin.Engine, c *container.Container) {
	h := c.BookHandler
	legacy := router.Group("", middleware.RequireAuthenticated())
	{
		legacy.POST("/books-create/", h.CreateBook)
		legacy.PUT("/books-update/:id/", h.UpdateBook)
		legacy.PATCH("/books-update/:id/", h.PatchBook)
		legacy.DELETE("/books-delete/:id/", h.DeleteBook)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	h := c.AuthorHandler
	authors := router.Group("/authors")
	{
		authors.GET("/", h.ListAuthors)
		authors.GET("/:id/", h.GetAuthor)
	}

	write := authors.Group("", middleware.RequireAuthenticated())
	{
		write.POST("/", h.CreateAuthor)
		write.PUT("/:id/", h.UpdateAuthor)
		write.PATCH("/:id/", h.PatchAuthor)
		write.DELETE("/:id/", h.DeleteAuthor)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		components := c.Health(checkCtx)
		if components["store"] != "ok" {
			response.ErrorWithDetails(ctx, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Store unavailable", components)
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"service":    c.Config.App.Name,
			"version":    c.Config.App.Version,
			"components": components,
		})
	}
}
