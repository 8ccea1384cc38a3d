package handler

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes : публичные маршруты /api/auth, защищенные /api/users/me
func SetupRoutes(
	router chi.Router,
	authHandler *AuthenticationHandler,
	userHandler *UserHandler,
	twoFactorHandler *TwoFactorHandler,
	authenticator Authenticator,
) {
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.RefreshToken)
		r.Post("/logout", authHandler.Logout)
		r.Post("/verify-email", authHandler.VerifyEmail)
		r.Post("/resend-verification", authHandler.ResendVerification)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
	})

	router.Route("/api/users/me", func(r chi.Router) {
		r.Use(BearerMiddleware(authenticator))

		r.Get("/", userHandler.GetMe)
		r.Put("/", userHandler.UpdateMe)
		r.Delete("/", userHandler.DeleteMe)
		r.Put("/password", userHandler.ChangePassword)

		r.Route("/2fa", func(r chi.Router) {
			r.Post("/setup", twoFactorHandler.Setup)
			r.Post("/enable", twoFactorHandler.Enable)
			r.Post("/disable", twoFactorHandler.Disable)
		})
	})
}
