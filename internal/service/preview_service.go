package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/models"
	"github.com/bkmarketing/post-composer/internal/repository"
)

const (
	maxPreviewCards = 2
	maxGridTiles    = 3
	nowLabel        = "Now"
	emptyMessage    = "Select at least one page to post to"
)

type PreviewService interface {
	Preview(ctx context.Context, sessionID string) (*models.Preview, error)
}

type previewService struct {
	dr  repository.DraftRepository
	pr  repository.PageRepository
	loc *time.Location
}

func NewPreviewService(cfg config.Config, dr repository.DraftRepository, pr repository.PageRepository) PreviewService {
	return &previewService{
		dr:  dr,
		pr:  pr,
		loc: cfg.Location(),
	}
}

func (s *previewService) Preview(ctx context.Context, sessionID string) (*models.Preview, error) {
	d, err := s.dr.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	preview := BuildPreview(d, s.pr.List(ctx), s.loc)
	return &preview, nil
}

// BuildPreview projects a draft onto the cards the composer shows. Pages are
// resolved in catalog order, not selection order.
func BuildPreview(d *models.Draft, catalog []models.Page, loc *time.Location) models.Preview {
	var selected []models.Page
	for _, p := range catalog {
		if d.IsSelected(p.ID) {
			selected = append(selected, p)
		}
	}

	preview := models.Preview{
		PageCount: len(selected),
		Header:    fmt.Sprintf("Posting to %s", pluralPages(len(selected))),
		Cards:     []models.PreviewCard{},
	}
	if len(selected) == 0 {
		preview.EmptyMessage = emptyMessage
		return preview
	}

	label := nowLabel
	if d.ScheduledAt != nil {
		label = d.ScheduledAt.In(loc).Format(displayLayout)
	}
	body := FormatBody(d.BodyText)
	hashtags := FormatHashtags(d.Hashtags)
	media := LayoutMedia(d.MediaItems)

	for i, p := range selected {
		if i == maxPreviewCards {
			break
		}
		preview.Cards = append(preview.Cards, models.PreviewCard{
			PageID:         p.ID,
			PageName:       p.DisplayName,
			AvatarInitial:  initial(p.DisplayName),
			TimestampLabel: label,
			Body:           body,
			Hashtags:       hashtags,
			Media:          media,
		})
	}

	if more := len(selected) - maxPreviewCards; more > 0 {
		preview.MoreCount = more
		preview.MoreLabel = fmt.Sprintf("+%d more", more)
	}

	return preview
}

// FormatBody splits on single spaces; words starting with # become hashtag tokens.
func FormatBody(text string) []models.Token {
	tokens := []models.Token{}
	for _, word := range strings.Split(text, " ") {
		if word == "" {
			continue
		}
		kind := models.TokenText
		if strings.HasPrefix(word, "#") {
			kind = models.TokenHashtag
		}
		tokens = append(tokens, models.Token{Kind: kind, Value: word})
	}
	return tokens
}

// FormatHashtags styles every space-separated piece of the hashtag field.
func FormatHashtags(hashtags string) []models.Token {
	tokens := []models.Token{}
	for _, tag := range strings.Split(hashtags, " ") {
		if tag == "" {
			continue
		}
		tokens = append(tokens, models.Token{Kind: models.TokenHashtag, Value: tag})
	}
	return tokens
}

func LayoutMedia(items []models.MediaItem) models.MediaLayout {
	layout := models.MediaLayout{Tiles: []models.MediaTile{}}

	switch n := len(items); {
	case n == 0:
		layout.Kind = models.LayoutNone
	case n == 1:
		layout.Kind = models.LayoutSingle
		layout.Tiles = append(layout.Tiles, tile(items[0]))
	case n == 2:
		layout.Kind = models.LayoutPair
		layout.Tiles = append(layout.Tiles, tile(items[0]), tile(items[1]))
	default:
		layout.Kind = models.LayoutGrid
		for i, item := range items[:maxGridTiles] {
			t := tile(item)
			t.Enlarged = i == 0
			if i == maxGridTiles-1 && n > maxGridTiles {
				t.Overlay = fmt.Sprintf("+%d", n-maxGridTiles)
			}
			layout.Tiles = append(layout.Tiles, t)
		}
	}

	return layout
}

func tile(item models.MediaItem) models.MediaTile {
	return models.MediaTile{
		MediaID:    item.ID,
		Kind:       item.Kind,
		SourceData: item.SourceData,
	}
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(r)
}
