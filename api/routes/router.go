package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopmart-io/shopmart-backend/api/controllers"
	"github.com/shopmart-io/shopmart-backend/api/middleware"
	cartsvc "github.com/shopmart-io/shopmart-backend/internal/carts"
	categorysvc "github.com/shopmart-io/shopmart-backend/internal/categories"
	ordersvc "github.com/shopmart-io/shopmart-backend/internal/orders"
	productsvc "github.com/shopmart-io/shopmart-backend/internal/products"
	reviewsvc "github.com/shopmart-io/shopmart-backend/internal/reviews"
	uploadsvc "github.com/shopmart-io/shopmart-backend/internal/uploads"
	usersvc "github.com/shopmart-io/shopmart-backend/internal/users"
	"github.com/shopmart-io/shopmart-backend/pkg/config"
	"github.com/shopmart-io/shopmart-backend/pkg/db"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	"github.com/shopmart-io/shopmart-backend/pkg/logger"
	"github.com/shopmart-io/shopmart-backend/pkg/metrics"
	"github.com/shopmart-io/shopmart-backend/pkg/redis"
)

// Services bundles the wired domain services the router exposes.
type Services struct {
	Users      usersvc.Service
	Products   productsvc.Service
	Categories categorysvc.Service
	Carts      cartsvc.Service
	Orders     ordersvc.Service
	Reviews    reviewsvc.Service
	Uploads    uploadsvc.Service
}

// NewRouter assembles the full HTTP surface: public catalog and auth,
// authenticated storefront routes, admin routes and the ops endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	uploadsDir string,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware())
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Live())
		r.Get("/ready", controllers.Ready(dbP, redisClient, logg))
	})
	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	if uploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/auth", func(r chi.Router) {
		var register http.Handler = controllers.Register(svcs.Users, logg)
		var login http.Handler = controllers.Login(svcs.Users, logg)
		if redisClient != nil {
			register = middleware.AuthRateLimit(registerPolicy, redisClient, logg)(register)
			login = middleware.AuthRateLimit(loginPolicy, redisClient, logg)(login)
		}
		r.Method(http.MethodPost, "/register", register)
		r.Method(http.MethodPost, "/login", login)
	})

	r.Route("/api", func(r chi.Router) {
		// Public catalog.
		r.Group(func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListProducts(svcs.Products, logg))
				r.Get("/search", controllers.SearchProducts(svcs.Products, logg))
				r.Get("/{productID}", controllers.GetProduct(svcs.Products, logg, false))
				r.Get("/{productID}/reviews", controllers.ListProductReviews(svcs.Reviews, logg))
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.ListCategories(svcs.Categories, logg))
				r.Get("/{categoryID}", controllers.GetCategory(svcs.Categories, logg, false))
			})
		})

		// Authenticated storefront.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(svcs.Carts, logg))
				r.Delete("/", controllers.ClearCart(svcs.Carts, logg))
				r.Post("/items", controllers.AddCartItem(svcs.Carts, logg))
				r.Put("/items/{productID}", controllers.UpdateCartItem(svcs.Carts, logg))
				r.Delete("/items/{productID}", controllers.RemoveCartItem(svcs.Carts, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.CreateOrder(svcs.Orders, logg))
				r.Get("/", controllers.ListOrders(svcs.Orders, logg))
				r.Get("/{orderID}", controllers.GetOrder(svcs.Orders, logg))
			})

			r.Post("/products/{productID}/reviews", controllers.CreateReview(svcs.Reviews, logg))

			r.Route("/users", func(r chi.Router) {
				r.Get("/profile", controllers.GetProfile(svcs.Users, logg))
				r.Put("/profile", controllers.UpdateProfile(svcs.Users, logg))
			})
		})

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(enums.UserRoleAdmin.String(), logg))

			r.Post("/products", controllers.CreateProduct(svcs.Products, logg))
			r.Put("/products/{productID}", controllers.UpdateProduct(svcs.Products, logg))
			r.Delete("/products/{productID}", controllers.DeleteProduct(svcs.Products, logg))
			r.Get("/admin/products/{productID}", controllers.GetProduct(svcs.Products, logg, true))

			r.Post("/categories", controllers.CreateCategory(svcs.Categories, logg))
			r.Put("/categories/{categoryID}", controllers.UpdateCategory(svcs.Categories, logg))
			r.Delete("/categories/{categoryID}", controllers.DeleteCategory(svcs.Categories, logg))

			r.Put("/orders/{orderID}/status", controllers.UpdateOrderStatus(svcs.Orders, logg))
			r.Put("/reviews/{reviewID}/moderate", controllers.ModerateReview(svcs.Reviews, logg))

			r.Post("/upload", controllers.UploadImage(svcs.Uploads, logg, int64(cfg.Uploads.MaxUploadMB)<<20))
		})
	})

	return r
}
