package api

import (
	"log"
	"time"

	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/api/handlers"
	"github.com/bkmarketing/post-composer/internal/api/middleware"
	"github.com/bkmarketing/post-composer/internal/repository"
	"github.com/bkmarketing/post-composer/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
)

type Dependencies struct {
	Pages       repository.PageRepository
	Auth        service.AuthService
	Drafts      service.DraftService
	Previews    service.PreviewService
	AsynqClient *asynq.Client
}

func NewServer(cfg config.Config, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    cfg.MaxUploadMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	auth := handlers.NewAuthHandler(cfg, deps.Auth)
	app.Post("/login", auth.Login)
	app.Post("/logout", auth.Logout)

	authMiddleware := middleware.NewAuthMiddleware(cfg, deps.Auth)
	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	pages := handlers.NewPageHandler(deps.Pages, deps.Drafts)
	api.Get("/pages", pages.ListPages)
	api.Get("/emojis", pages.ListEmojis)

	draft := handlers.NewDraftHandler(deps.Drafts, deps.Previews, deps.AsynqClient)
	api.Get("/draft", draft.GetDraft)
	api.Delete("/draft", draft.ResetDraft)
	api.Post("/draft/pages", draft.TogglePage)
	api.Put("/draft/text", draft.SetText)
	api.Put("/draft/hashtags", draft.SetHashtags)
	api.Post("/draft/emoji", draft.AppendEmoji)
	api.Post("/draft/media", draft.UploadMedia)
	api.Delete("/draft/media/:id", draft.RemoveMedia)
	api.Post("/draft/schedule", draft.SetSchedule)
	api.Delete("/draft/schedule", draft.ClearSchedule)
	api.Get("/draft/preview", draft.Preview)
	api.Post("/draft/submit", draft.Submit)

	return app
}
