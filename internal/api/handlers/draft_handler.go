package handlers

import (
	"log/slog"
	"time"

	"github.com/bkmarketing/post-composer/internal/queue"
	"github.com/bkmarketing/post-composer/internal/service"
	"github.com/bkmarketing/post-composer/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type DraftHandler struct {
	ds          service.DraftService
	ps          service.PreviewService
	AsynqClient *asynq.Client
}

func NewDraftHandler(ds service.DraftService, ps service.PreviewService, asynqClient *asynq.Client) *DraftHandler {
	return &DraftHandler{ds: ds, ps: ps, AsynqClient: asynqClient}
}

func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	d, err := h.ds.Get(c.Context(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.NewDraftView(d))
}

func (h *DraftHandler) ResetDraft(c *fiber.Ctx) error {
	if err := h.ds.Reset(c.Context(), GetSessionID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DraftHandler) TogglePage(c *fiber.Ctx) error {
	var req transfer.TogglePageRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	d, err := h.ds.TogglePage(c.Context(), GetSessionID(c), req.PageID, req.Included)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.NewDraftView(d))
}

func (h *DraftHandler) SetText(c *fiber.Ctx) error {
	var req transfer.TextUpdate
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	d, err := h.ds.SetText(c.Context(), GetSessionID(c), req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.NewDraftView(d))
}

func (h *DraftHandler) SetHashtags(c *fiber.Ctx) error {
	var req transfer.HashtagsUpdate
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	d, err := h.ds.SetHashtags(c.Context(), GetSessionID(c), req.Hashtags)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.NewDraftView(d))
}

func (h *DraftHandler) AppendEmoji(c *fiber.Ctx) error {
	var req transfer.EmojiRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	d, err := h.ds.AppendEmoji(c.Context(), GetSessionID(c), req.Symbol)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.NewDraftView(d))
}

func (h *DraftHandler) UploadMedia(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files selected",
		})
	}

	result, err := h.ds.AppendMedia(c.Context(), GetSessionID(c), files)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *DraftHandler) RemoveMedia(c *fiber.Ctx) error {
	d, err := h.ds.RemoveMedia(c.Context(), GetSessionID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.NewDraftView(d))
}

func (h *DraftHandler) SetSchedule(c *fiber.Ctx) error {
	var req transfer.ScheduleRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	d, err := h.ds.SetSchedule(c.Context(), GetSessionID(c), req.Date, req.Time)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.NewDraftView(d))
}

func (h *DraftHandler) ClearSchedule(c *fiber.Ctx) error {
	d, err := h.ds.ClearSchedule(c.Context(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transfer.NewDraftView(d))
}

func (h *DraftHandler) Preview(c *fiber.Ctx) error {
	preview, err := h.ps.Preview(c.Context(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(preview)
}

func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	sessionID := GetSessionID(c)

	result, err := h.ds.Submit(c.Context(), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	if result.ScheduledAt == nil || h.AsynqClient == nil {
		return c.Status(fiber.StatusOK).JSON(result)
	}

	delay := time.Until(*result.ScheduledAt)
	if delay < 0 {
		delay = 0
	}

	err = queue.EnqueueScheduledPost(h.AsynqClient, queue.ScheduledPostPayload{
		SessionID:   sessionID,
		PageIDs:     result.PageIDs,
		ScheduledAt: *result.ScheduledAt,
	}, delay)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"result": result,
			"error":  "Error scheduling post confirmation",
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
