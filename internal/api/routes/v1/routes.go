package v1

import (
	"os"

	"tvbank-assistant-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func jwtService() *auth.JWTService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "tvbank-dev-secret"
	}
	return auth.NewJWTService(secret, 24)
}

func RegisterRoutes(r fiber.Router) {
	jwt := jwtService()
	guard := auth.Middleware(jwt)

	registerHealth(r)
	registerAuth(r, jwt, guard)
	registerChat(r, guard)
	registerProviders(r, guard)
}
