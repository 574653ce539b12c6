package handlers

import (
	"github.com/bkmarketing/post-composer/internal/models"
	"github.com/bkmarketing/post-composer/internal/repository"
	"github.com/bkmarketing/post-composer/internal/service"
	"github.com/bkmarketing/post-composer/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	pr repository.PageRepository
	ds service.DraftService
}

func NewPageHandler(pr repository.PageRepository, ds service.DraftService) *PageHandler {
	return &PageHandler{pr: pr, ds: ds}
}

func (h *PageHandler) ListPages(c *fiber.Ctx) error {
	d, err := h.ds.Get(c.Context(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}

	pages := h.pr.List(c.Context())
	views := make([]transfer.PageView, 0, len(pages))
	for _, p := range pages {
		views = append(views, transfer.PageView{
			Page:      p,
			Followers: p.Followers(),
			Selected:  d.IsSelected(p.ID),
		})
	}

	return c.Status(fiber.StatusOK).JSON(views)
}

func (h *PageHandler) ListEmojis(c *fiber.Ctx) error {
	return c.JSON(models.EmojiPalette)
}
