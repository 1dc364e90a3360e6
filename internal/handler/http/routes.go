package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/wallet-connect", h.walletConnect)
		r.Post("/api/auth/password-reset", h.requestPasswordReset)
		r.Post("/api/auth/password-reset/confirm", h.confirmPasswordReset)
		r.Post("/api/auth/verify-email/confirm", h.confirmEmailVerification)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes behind the authentication gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/auth/profile", h.profile)
		r.Post("/api/auth/change-password", h.changePassword)
		r.Post("/api/auth/verify-email", h.requestEmailVerification)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
