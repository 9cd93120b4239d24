package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Sushanthnayak-eng/FashionCart/internal/auth"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

type RouterConfig struct {
	Tokens         *auth.TokenManager
	Auth           *AuthHandler
	Products       *ProductHandler
	Cart           *CartHandler
	Checkout       *CheckoutHandler
	Orders         *OrdersHandler
	StaticDir      string
	RequestTimeout func(http.Handler) http.Handler
}

// NewRouter assembles the full route tree. Watch endpoints sit outside the
// request timeout middleware since they hold the connection open.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Compress(5))
	r.Use(AuthMiddleware(cfg.Tokens))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.StaticDir != "" {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.RequestTimeout != nil {
				r.Use(cfg.RequestTimeout)
			}

			r.Route("/auth", func(r chi.Router) {
				r.Post("/signup", cfg.Auth.SignUp)
				r.Post("/login", cfg.Auth.SignIn)
				r.Post("/admin-login", cfg.Auth.AdminSignIn)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(domain.RoleUser))

				r.Get("/products", cfg.Products.ListProducts)
				r.Get("/products/{product_id}", cfg.Products.GetProduct)

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", cfg.Cart.GetCart)
					r.Post("/items", cfg.Cart.AddItem)
					r.Patch("/items/{product_id}", cfg.Cart.UpdateQuantity)
					r.Delete("/items/{product_id}", cfg.Cart.RemoveItem)
					r.Delete("/", cfg.Cart.ClearCart)
				})

				r.Post("/checkout", cfg.Checkout.Checkout)

				r.Get("/orders", cfg.Orders.ListOrders)
				r.Get("/orders/{order_id}", cfg.Orders.GetOrder)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireRole(domain.RoleAdmin))

				r.Post("/products", cfg.Products.CreateProduct)
				r.Put("/products/{product_id}", cfg.Products.UpdateProduct)
				r.Delete("/products/{product_id}", cfg.Products.DeleteProduct)
				r.Post("/products/{product_id}/image", cfg.Products.UploadImage)

				r.Get("/orders", cfg.Orders.ListAllOrders)
				r.Patch("/orders/{order_id}/status", cfg.Orders.UpdateStatus)
			})
		})

		// long-lived SSE streams, no timeout
		r.Group(func(r chi.Router) {
			r.With(RequireRole(domain.RoleUser)).Get("/products/watch", cfg.Products.WatchProducts)
			r.With(RequireRole(domain.RoleAdmin)).Get("/admin/orders/watch", cfg.Orders.WatchOrders)
		})
	})

	return r
}
