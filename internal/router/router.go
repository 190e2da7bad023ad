package router

import (
	"net/http"

	"rent-kart/internal/handler"
	"rent-kart/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Customer routes rely on the session manager's authentication; the admin
// subtree sits behind API-key auth.
func New(
	catalogHandler *handler.CatalogHandler,
	authHandler *handler.AuthHandler,
	sessionHandler *handler.SessionHandler,
	adminHandler *handler.AdminHandler,
	adminAPIKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogHandler.List)
		r.Get("/products/{id}", catalogHandler.Get)

		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)
		r.Post("/auth/signout", authHandler.SignOut)
		r.Post("/auth/reset", authHandler.ResetPassword)

		r.Get("/me", sessionHandler.Record)

		r.Post("/cart/items", sessionHandler.AddItem)
		r.Patch("/cart/items/{id}/quantity", sessionHandler.SetQuantity)
		r.Patch("/cart/items/{id}/tenure", sessionHandler.SetTenure)
		r.Delete("/cart/items/{id}", sessionHandler.RemoveItem)
		r.Delete("/cart", sessionHandler.ClearCart)

		r.Post("/checkout", sessionHandler.Checkout)
		r.Post("/sync/retry", sessionHandler.RetrySync)

		r.Post("/addresses", sessionHandler.AddAddress)
		r.Delete("/addresses/{id}", sessionHandler.RemoveAddress)

		r.Post("/wishlist/{productId}", sessionHandler.ToggleWishlist)
		r.Post("/tickets", sessionHandler.OpenTicket)

		r.Post("/kyc/documents", sessionHandler.SubmitKYC)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(adminAPIKey, logger))

		r.Get("/orders", adminHandler.ListOrders)
		r.Patch("/orders/{id}/status", adminHandler.UpdateStatus)
		r.Post("/orders/{id}/notes", adminHandler.AddNote)
		r.Post("/orders/{id}/invoice", adminHandler.RetryInvoice)

		r.Get("/records", adminHandler.ListRecords)
		r.Get("/tickets", adminHandler.ListTickets)
		r.Get("/kyc/queue", adminHandler.VerificationQueue)
		r.Post("/customers/{id}/kyc", adminHandler.ReviewKYC)
	})

	return r
}
