package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopadmin-backend/api/controllers"
	"github.com/angelmondragon/shopadmin-backend/api/middleware"
	"github.com/angelmondragon/shopadmin-backend/internal/apitokens"
	"github.com/angelmondragon/shopadmin-backend/internal/attributes"
	"github.com/angelmondragon/shopadmin-backend/internal/carts"
	"github.com/angelmondragon/shopadmin-backend/internal/categories"
	"github.com/angelmondragon/shopadmin-backend/internal/discounts"
	"github.com/angelmondragon/shopadmin-backend/internal/facebook"
	"github.com/angelmondragon/shopadmin-backend/internal/orders"
	"github.com/angelmondragon/shopadmin-backend/internal/productattributes"
	"github.com/angelmondragon/shopadmin-backend/internal/users"
	"github.com/angelmondragon/shopadmin-backend/pkg/config"
	"github.com/angelmondragon/shopadmin-backend/pkg/logger"
	"github.com/angelmondragon/shopadmin-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/shopadmin-backend/pkg/redis"
)

// ScopeFacebookPublish gates outbound Graph publishing.
const ScopeFacebookPublish = "facebook:publish"

var routeScopes = middleware.RouteScopes{
	http.MethodPost + " /api/v1/facebook/posts/publish": ScopeFacebookPublish,
}

// Deps carries everything the router wires into handlers. Redis and Gatherer are optional.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *pkgredis.Client
	Gatherer prometheus.Gatherer
	HTTP     *metrics.HTTPMetrics

	Authenticator     apitokens.Authenticator
	Tokens            apitokens.Service
	Users             users.Service
	Attributes        attributes.Service
	ProductAttributes productattributes.Service
	Discounts         discounts.Service
	Categories        categories.Service
	Carts             carts.Service
	Orders            orders.Service
	Facebook          facebook.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTP),
	)

	var (
		redisPinger controllers.Pinger
		counter     pkgredis.FailureCounter
		idempotency = func(next http.Handler) http.Handler { return next }
	)
	if d.Redis != nil {
		redisPinger = d.Redis
		counter = d.Redis
		idempotency = middleware.Idempotency(d.Redis, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, redisPinger))
	})

	if cfg.Metrics.Enabled && d.Gatherer != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Authenticator, counter, middleware.NewAuthFailurePolicy(cfg.AuthRateLimit), routeScopes, logg))
		r.Use(idempotency)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(d.Users, logg))
			r.Post("/", controllers.CreateUser(d.Users, logg))
			r.Get("/{id}", controllers.GetUser(d.Users, logg))
			r.Put("/{id}", controllers.UpdateUser(d.Users, logg))
			r.Delete("/{id}", controllers.DeleteUser(d.Users, logg))
			r.Get("/{id}/tokens", controllers.ListAPITokens(d.Tokens, logg))
			r.Post("/{id}/tokens", controllers.IssueAPIToken(d.Tokens, logg))
		})
		r.Delete("/tokens/{id}", controllers.RevokeAPIToken(d.Tokens, logg))

		r.Route("/attributes", func(r chi.Router) {
			r.Get("/", controllers.ListAttributes(d.Attributes, logg))
			r.Post("/", controllers.CreateAttribute(d.Attributes, logg))
			r.Get("/{id}", controllers.GetAttribute(d.Attributes, logg))
			r.Put("/{id}", controllers.UpdateAttribute(d.Attributes, logg))
			r.Delete("/{id}", controllers.DeleteAttribute(d.Attributes, logg))
		})
		r.Route("/attribute-values", func(r chi.Router) {
			r.Post("/", controllers.CreateAttributeValue(d.Attributes, logg))
			r.Put("/{id}", controllers.UpdateAttributeValue(d.Attributes, logg))
			r.Delete("/{id}", controllers.DeleteAttributeValue(d.Attributes, logg))
		})

		r.Route("/product-attributes", func(r chi.Router) {
			r.Get("/", controllers.ListProductAttributes(d.ProductAttributes, logg))
			r.Post("/", controllers.CreateProductAttribute(d.ProductAttributes, logg))
			r.Get("/{id}", controllers.GetProductAttribute(d.ProductAttributes, logg))
			r.Put("/{id}", controllers.UpdateProductAttribute(d.ProductAttributes, logg))
			r.Delete("/{id}", controllers.DeleteProductAttribute(d.ProductAttributes, logg))
		})

		r.Route("/product-discounts", func(r chi.Router) {
			r.Get("/", controllers.ListProductDiscounts(d.Discounts, logg))
			r.Post("/", controllers.CreateProductDiscount(d.Discounts, logg))
			r.Get("/{id}", controllers.GetProductDiscount(d.Discounts, logg))
			r.Put("/{id}", controllers.UpdateProductDiscount(d.Discounts, logg))
			r.Delete("/{id}", controllers.DeleteProductDiscount(d.Discounts, logg))
			r.Get("/{id}/price", controllers.ProductDiscountPrice(d.Discounts, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(d.Categories, logg))
			r.Post("/", controllers.CreateCategory(d.Categories, logg))
			r.Get("/{id}", controllers.GetCategory(d.Categories, logg))
			r.Put("/{id}", controllers.UpdateCategory(d.Categories, logg))
			r.Delete("/{id}", controllers.DeleteCategory(d.Categories, logg))
		})

		r.Route("/carts", func(r chi.Router) {
			r.Get("/", controllers.ListCarts(d.Carts, logg))
			r.Post("/", controllers.CreateCart(d.Carts, logg))
			r.Get("/{id}", controllers.GetCart(d.Carts, logg))
			r.Put("/{id}", controllers.UpdateCart(d.Carts, logg))
			r.Delete("/{id}", controllers.DeleteCart(d.Carts, logg))
			r.Post("/{id}/items", controllers.AddCartItem(d.Carts, logg))
			r.Put("/{id}/items/{itemID}", controllers.UpdateCartItem(d.Carts, logg))
			r.Delete("/{id}/items/{itemID}", controllers.RemoveCartItem(d.Carts, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(d.Orders, logg))
			r.Post("/", controllers.CreateOrder(d.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(d.Orders, logg))
			r.Put("/{id}", controllers.UpdateOrder(d.Orders, logg))
			r.Delete("/{id}", controllers.DeleteOrder(d.Orders, logg))
			r.Post("/{id}/status", controllers.ChangeOrderStatus(d.Orders, logg))
		})

		r.Route("/facebook", func(r chi.Router) {
			r.Get("/accounts", controllers.ListFacebookAccounts(d.Facebook, logg))
			r.Post("/accounts", controllers.CreateFacebookAccount(d.Facebook, logg))
			r.Get("/pages", controllers.ListFacebookPages(d.Facebook, logg))
			r.Post("/pages", controllers.CreateFacebookPage(d.Facebook, logg))
			r.Get("/posts", controllers.ListFacebookContents(d.Facebook, logg))
			r.With(middleware.RequireScope(ScopeFacebookPublish, logg)).
				Post("/posts/publish", controllers.PublishFacebookContent(d.Facebook, logg))
			r.Post("/posts/{id}/republish", controllers.RepublishFacebookContent(d.Facebook, logg))
			r.Delete("/posts/{id}", controllers.DeleteFacebookContent(d.Facebook, logg))
		})
	})

	return r
}
