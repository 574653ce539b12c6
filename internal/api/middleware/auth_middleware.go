package middleware

import (
	"log"

	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/service"
	"github.com/bkmarketing/post-composer/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthMiddleware struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, service service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{s: service, cfg: cfg}
}

func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session cookie",
			})
		}

		claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString)
		if err != nil {
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1, // Delete cookie
			})

			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		if m.s.IsRevoked(c.Context(), claims.SessionID) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session has been logged out",
			})
		}

		c.Locals("session_id", claims.SessionID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}
