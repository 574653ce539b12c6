package handlers

import (
	"time"

	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/service"
	"github.com/bkmarketing/post-composer/internal/transfer"
	"github.com/bkmarketing/post-composer/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const sessionDuration = 24 * time.Hour

type AuthHandler struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	sessionID, err := h.s.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := utils.GenerateToken(h.cfg.SecretKey, sessionID, req.Username, sessionDuration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   false,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(sessionDuration),
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Logged in",
		"username": req.Username,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(h.cfg.CookieName); token != "" {
		if claims, err := utils.ValidateToken(h.cfg.SecretKey, token); err == nil {
			expiresAt := time.Now().Add(sessionDuration)
			if claims.ExpiresAt != nil {
				expiresAt = claims.ExpiresAt.Time
			}
			if err := h.s.Logout(c.Context(), claims.SessionID, expiresAt); err != nil {
				return respondError(c, err)
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	return c.SendStatus(fiber.StatusOK)
}
