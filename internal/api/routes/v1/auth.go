package v1

import (
	"tvbank-assistant-backend/internal/auth"
	"tvbank-assistant-backend/internal/config"
	"tvbank-assistant-backend/internal/handlers"
	"tvbank-assistant-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerAuth(r fiber.Router, jwt *auth.JWTService, guard fiber.Handler) {
	userRepo := repo.NewUserRepository(config.DB)
	authService := auth.NewService(userRepo, jwt)
	authHandler := handlers.NewAuthHandler(authService)

	r.Post("/auth/signup", authHandler.SignUp)
	r.Post("/auth/signin", authHandler.SignIn)
	r.Post("/auth/signout", authHandler.SignOut)
	r.Get("/auth/me", guard, authHandler.Me)
}
