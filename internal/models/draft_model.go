package models

import "time"

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

type MediaItem struct {
	ID           string    `json:"id"`
	Kind         MediaKind `json:"kind"`
	SourceData   string    `json:"source_data"` // data:<mime>;base64,<payload>
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
}

type Draft struct {
	SelectedPageIDs map[string]struct{} `json:"-"`
	BodyText        string              `json:"body_text"`
	Hashtags        string              `json:"hashtags"`
	MediaItems      []MediaItem         `json:"media_items"`
	ScheduledAt     *time.Time          `json:"scheduled_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func NewDraft() *Draft {
	return &Draft{
		SelectedPageIDs: make(map[string]struct{}),
		MediaItems:      []MediaItem{},
		UpdatedAt:       time.Now(),
	}
}

func (d *Draft) IsSelected(pageID string) bool {
	_, ok := d.SelectedPageIDs[pageID]
	return ok
}

// Clone returns a deep copy so callers can read a draft outside the store lock.
func (d *Draft) Clone() *Draft {
	c := *d
	c.SelectedPageIDs = make(map[string]struct{}, len(d.SelectedPageIDs))
	for id := range d.SelectedPageIDs {
		c.SelectedPageIDs[id] = struct{}{}
	}
	c.MediaItems = append([]MediaItem{}, d.MediaItems...)
	if d.ScheduledAt != nil {
		t := *d.ScheduledAt
		c.ScheduledAt = &t
	}
	return &c
}
