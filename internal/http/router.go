package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
)

// RouterDeps — зависимости публичного HTTP API.
type RouterDeps struct {
	Tokens   *auth.TokenManager
	Auth     *AuthHandler
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Webhook  *WebhookHandler
	Logger   *log.Entry
}

// NewRouter собирает маршруты публичного API.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(deps.Logger))
	r.Use(IdentityMiddleware(deps.Tokens))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/logout", deps.Auth.Logout)
			r.Get("/me", deps.Auth.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", deps.Products.List)
			r.Post("/", deps.Products.Create)
			r.Get("/{id}", deps.Products.Get)
			r.Put("/{id}", deps.Products.Update)
			r.Delete("/{id}", deps.Products.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.Get)
			r.Post("/", deps.Cart.AddItem)
			r.Delete("/", deps.Cart.Clear)
			r.Put("/{productId}", deps.Cart.UpdateItem)
			r.Delete("/{productId}", deps.Cart.RemoveItem)
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/create-order", deps.Checkout.CreateOrder)
			r.Post("/webhook", deps.Webhook.Handle)
			r.Post("/test", deps.Checkout.TestOrder)
		})
	})

	return r
}
