package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/handler"
	"github.com/EgehanKilicarslan/bookstore/internal/metrics"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Admin    *handler.AdminHandler
	Book     *handler.BookHandler
	Review   *handler.ReviewHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Wishlist *handler.WishlistHandler
	Health   *handler.HealthHandler
}

// RouterOptions carries the cross-cutting pieces of the middleware chain.
type RouterOptions struct {
	Production     bool
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    middleware.RateLimiter
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		apperror.RegisterJSONTagNames(v)
	}
}

func SetupRouter(h Handlers, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestLogger(opts.Logger),
		middleware.Metrics(opts.Metrics),
		middleware.ErrorHandler(opts.Production, opts.Logger),
		middleware.Recovery(opts.Production, opts.Logger),
	)

	notFound := func(c *gin.Context) {
		middleware.Fail(c, apperror.ErrResourceNotFound)
	}
	r.NoRoute(notFound)
	r.NoMethod(notFound)

	// Operational routes
	r.GET("/health", h.Health.Check)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	requireAuth := opts.AuthMiddleware.RequireAuth()
	requireAdmin := opts.AuthMiddleware.RequireAdmin()

	api := r.Group("/api")
	api.Use(middleware.RateLimit(opts.RateLimiter, opts.Metrics, opts.Logger))

	// Auth routes (Public)
	api.POST("/signup", h.Auth.Signup)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	// Catalog routes (Public)
	public := api.Group("/public")
	{
		public.GET("/books", h.Book.List)
		public.GET("/books/:book_id", h.Book.Get)
	}
	api.GET("/books/:book_id/reviews", h.Review.ListByBook)

	// Protected API routes
	user := api.Group("")
	user.Use(requireAuth)
	{
		user.GET("/users/me", h.User.Me)
		user.PATCH("/users/me", h.User.UpdateMe)
		user.DELETE("/users/me", h.User.Withdraw)

		user.POST("/books/:book_id/reviews", h.Review.Create)
		user.GET("/reviews/me", h.Review.ListMine)
		user.PATCH("/reviews/:review_id", h.Review.Update)
		user.DELETE("/reviews/:review_id", h.Review.Delete)
		user.POST("/reviews/:review_id/like", h.Review.Like)
		user.DELETE("/reviews/:review_id/like", h.Review.Unlike)

		user.POST("/carts/items", h.Cart.AddItem)
		user.GET("/carts", h.Cart.View)
		user.PATCH("/carts/items/:cart_item_id", h.Cart.UpdateItem)
		user.DELETE("/carts/items/:cart_item_id", h.Cart.RemoveItem)

		user.POST("/orders", h.Order.Create)
		user.GET("/orders", h.Order.ListMine)

		user.POST("/favorites", h.Wishlist.Add)
		user.GET("/favorites", h.Wishlist.List)
		user.DELETE("/favorites/:wishlist_id", h.Wishlist.Remove)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(requireAuth, requireAdmin)
	{
		admin.DELETE("/users/:user_id", h.Admin.PurgeUser)

		admin.POST("/books", h.Book.Create)
		admin.PATCH("/books/:book_id", h.Book.Update)
		admin.DELETE("/books/:book_id", h.Book.Delete)

		admin.PATCH("/orders/:order_id", h.Order.UpdateStatus)

		admin.GET("/stats/users", h.Admin.TotalUsers)
		admin.GET("/stats/sales", h.Admin.TotalSales)
		admin.GET("/stats/books", h.Admin.TotalBooks)
	}

	return r
}
