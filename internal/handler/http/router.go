package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vasiliy-maslov/ecommerce-shop/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/cart"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/checkout"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/metrics"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/order"
	"github.com/vasiliy-maslov/ecommerce-shop/internal/user"
)

type RouterDeps struct {
	Catalog  catalog.Service
	Cart     cart.Service
	Checkout checkout.Service
	Orders   order.Service
	Users    user.Service
	Tokens   *auth.Manager
	Metrics  *metrics.ServerMetrics
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	productHandler := NewProductHandler(deps.Catalog)
	cartHandler := NewCartHandler(deps.Cart)
	orderHandler := NewOrderHandler(deps.Orders, deps.Checkout)
	authHandler := NewAuthHandler(deps.Users, deps.Tokens)

	requireAdmin := RequireRole(deps.Tokens, user.RoleAdmin)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.handleListProducts)
		r.Get("/{id}", productHandler.handleGetProduct)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", productHandler.handleCreateProduct)
			r.Put("/{id}", productHandler.handleUpdateProduct)
			r.Delete("/{id}", productHandler.handleDeleteProduct)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Post("/{sessionId}/add/{productId}", cartHandler.handleAddToCart)
		r.Get("/{sessionId}", cartHandler.handleGetCart)
		r.Put("/{itemId}/quantity", cartHandler.handleUpdateQuantity)
		r.Delete("/{itemId}", cartHandler.handleRemoveItem)
		r.Delete("/{sessionId}/clear", cartHandler.handleClearCart)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/checkout", orderHandler.handleCheckout)
		r.Get("/", orderHandler.handleListOrders)
		r.Get("/{id}", orderHandler.handleGetOrder)
		r.Put("/{id}/status", orderHandler.handleUpdateStatus)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.handleSignup)
		r.Post("/login", authHandler.handleLogin)
	})

	return r
}
