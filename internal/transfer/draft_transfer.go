package transfer

import (
	"sort"
	"time"

	"github.com/bkmarketing/post-composer/internal/models"
)

type TogglePageRequest struct {
	PageID   string `json:"page_id" validate:"required"`
	Included bool   `json:"included"`
}

type TextUpdate struct {
	Text string `json:"text"`
}

type HashtagsUpdate struct {
	Hashtags string `json:"hashtags"`
}

type EmojiRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}

type ScheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type DraftView struct {
	SelectedPageIDs []string           `json:"selected_page_ids"`
	BodyText        string             `json:"body_text"`
	Hashtags        string             `json:"hashtags"`
	MediaItems      []models.MediaItem `json:"media_items"`
	ScheduledAt     *time.Time         `json:"scheduled_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func NewDraftView(d *models.Draft) DraftView {
	ids := make([]string, 0, len(d.SelectedPageIDs))
	for id := range d.SelectedPageIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return DraftView{
		SelectedPageIDs: ids,
		BodyText:        d.BodyText,
		Hashtags:        d.Hashtags,
		MediaItems:      d.MediaItems,
		ScheduledAt:     d.ScheduledAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type UploadResult struct {
	Added   []models.MediaItem `json:"added"`
	Notices []string           `json:"notices,omitempty"`
	Errors  []string           `json:"errors,omitempty"`
	Draft   DraftView          `json:"draft"`
}

type SubmitResult struct {
	PageCount   int        `json:"page_count"`
	PageIDs     []string   `json:"page_ids"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Message     string     `json:"message"`
}

type PageView struct {
	models.Page
	Followers string `json:"followers"`
	Selected  bool   `json:"selected"`
}
