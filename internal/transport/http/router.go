package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/postbook/postbook/internal/authz"
	"github.com/postbook/postbook/internal/cache"
	"github.com/postbook/postbook/internal/handlers"
	"github.com/postbook/postbook/internal/middleware"
)

type Deps struct {
	DB       *gorm.DB
	Auth     *middleware.BearerAuth
	Cache    *cache.ResponseCache
	Identity *handlers.IdentityHandler
	Posts    *handlers.PostHandler
	Tags     *handlers.TagHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	id := e.Group("/identity")
	id.POST("/register", d.Identity.Register)
	id.POST("/login", d.Identity.Login)
	id.POST("/refresh", d.Identity.Refresh)

	v1 := e.Group("/api/v1", d.Auth.RequireAuth)

	posts := v1.Group("/posts")
	posts.GET("", d.Posts.GetAll, middleware.RequireCapability(authz.OpPostsList), d.Cache.Middleware())
	posts.GET("/search", d.Posts.Search, middleware.RequireCapability(authz.OpPostsList))
	posts.GET("/:postId", d.Posts.Get, d.Cache.Middleware())
	posts.POST("", d.Posts.Create, middleware.RequireCapability(authz.OpPostsCreate))
	posts.PUT("/:postId", d.Posts.Update, middleware.RequireCapability(authz.OpPostsUpdate))
	posts.DELETE("/:postId", d.Posts.Delete, middleware.RequireCapability(authz.OpPostsDelete))

	tags := v1.Group("/tags")
	tags.GET("", d.Tags.GetAll, d.Cache.Middleware())
	tags.GET("/:tagName", d.Tags.Get)
	tags.POST("", d.Tags.Create, middleware.RequireCapability(authz.OpTagsCreate))
	tags.DELETE("/:tagName", d.Tags.Delete, middleware.RequireCapability(authz.OpTagsDelete))
}
