package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/models"
	"github.com/bkmarketing/post-composer/internal/repository"
	"github.com/bkmarketing/post-composer/internal/transfer"
)

const (
	scheduleDateLayout = "2006-01-02"
	scheduleTimeLayout = "15:04"
	displayLayout      = "02/01/2006 15:04"
	decodeConcurrency  = 4
)

type DraftService interface {
	Get(ctx context.Context, sessionID string) (*models.Draft, error)
	TogglePage(ctx context.Context, sessionID, pageID string, included bool) (*models.Draft, error)
	SetText(ctx context.Context, sessionID, text string) (*models.Draft, error)
	SetHashtags(ctx context.Context, sessionID, hashtags string) (*models.Draft, error)
	AppendEmoji(ctx context.Context, sessionID, symbol string) (*models.Draft, error)
	AppendMedia(ctx context.Context, sessionID string, files []*multipart.FileHeader) (*transfer.UploadResult, error)
	RemoveMedia(ctx context.Context, sessionID, mediaID string) (*models.Draft, error)
	SetSchedule(ctx context.Context, sessionID, date, clock string) (*models.Draft, error)
	ClearSchedule(ctx context.Context, sessionID string) (*models.Draft, error)
	Reset(ctx context.Context, sessionID string) error
	Submit(ctx context.Context, sessionID string) (*transfer.SubmitResult, error)
}

type draftService struct {
	dr  repository.DraftRepository
	pr  repository.PageRepository
	loc *time.Location
	now func() time.Time
}

func NewDraftService(cfg config.Config, dr repository.DraftRepository, pr repository.PageRepository) DraftService {
	return &draftService{
		dr:  dr,
		pr:  pr,
		loc: cfg.Location(),
		now: time.Now,
	}
}

func (s *draftService) Get(ctx context.Context, sessionID string) (*models.Draft, error) {
	return s.dr.Get(ctx, sessionID)
}

func (s *draftService) TogglePage(ctx context.Context, sessionID, pageID string, included bool) (*models.Draft, error) {
	if _, ok := s.pr.GetByID(ctx, pageID); !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownPage, pageID)
		slog.Info(err.Error())
		return nil, err
	}

	return s.dr.Update(ctx, sessionID, func(d *models.Draft) error {
		if included {
			d.SelectedPageIDs[pageID] = struct{}{}
		} else {
			delete(d.SelectedPageIDs, pageID)
		}
		return nil
	})
}

func (s *draftService) SetText(ctx context.Context, sessionID, text string) (*models.Draft, error) {
	return s.dr.Update(ctx, sessionID, func(d *models.Draft) error {
		d.BodyText = text
		return nil
	})
}

func (s *draftService) SetHashtags(ctx context.Context, sessionID, hashtags string) (*models.Draft, error) {
	return s.dr.Update(ctx, sessionID, func(d *models.Draft) error {
		d.Hashtags = hashtags
		return nil
	})
}

func (s *draftService) AppendEmoji(ctx context.Context, sessionID, symbol string) (*models.Draft, error) {
	if symbol == "" {
		slog.Info(ErrEmptyEmoji.Error())
		return nil, ErrEmptyEmoji
	}

	return s.dr.Update(ctx, sessionID, func(d *models.Draft) error {
		d.BodyText += symbol
		return nil
	})
}

// AppendMedia decodes every file independently and appends each item as soon
// as its decode finishes, so items land in completion order.
func (s *draftService) AppendMedia(ctx context.Context, sessionID string, files []*multipart.FileHeader) (*transfer.UploadResult, error) {
	if len(files) == 0 {
		err := errors.New("no files provided")
		slog.Info(err.Error())
		return nil, err
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result transfer.UploadResult
		errs   []error
	)
	semaphore := make(chan struct{}, decodeConcurrency)

	for _, file := range files {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(file *multipart.FileHeader) {
			defer wg.Done()
			defer func() { <-semaphore }()

			item, err := readMediaFile(file)
			if err == nil {
				_, err = s.dr.Update(ctx, sessionID, func(d *models.Draft) error {
					d.MediaItems = append(d.MediaItems, item)
					return nil
				})
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Info(err.Error())
				result.Errors = append(result.Errors, err.Error())
				errs = append(errs, err)
				return
			}
			result.Added = append(result.Added, item)
			if notice, ok := mediaNotice(item); ok {
				result.Notices = append(result.Notices, notice)
			}
		}(file)
	}
	wg.Wait()

	if len(result.Added) == 0 {
		// only report 422 when the files themselves were the problem
		for _, err := range errs {
			if !errors.Is(err, ErrUnsupportedMedia) {
				return nil, err
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, strings.Join(result.Errors, "; "))
	}

	d, err := s.dr.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result.Draft = transfer.NewDraftView(d)

	return &result, nil
}

func (s *draftService) RemoveMedia(ctx context.Context, sessionID, mediaID string) (*models.Draft, error) {
	return s.dr.Update(ctx, sessionID, func(d *models.Draft) error {
		kept := d.MediaItems[:0]
		for _, item := range d.MediaItems {
			if item.ID != mediaID {
				kept = append(kept, item)
			}
		}
		d.MediaItems = kept
		return nil
	})
}

func (s *draftService) SetSchedule(ctx context.Context, sessionID, date, clock string) (*models.Draft, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		slog.Info(ErrScheduleIncomplete.Error())
		return nil, ErrScheduleIncomplete
	}

	scheduledAt, err := time.ParseInLocation(scheduleDateLayout+" "+scheduleTimeLayout, date+" "+clock, s.loc)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		slog.Info(err.Error())
		return nil, err
	}

	if scheduledAt.Before(s.now()) {
		err = fmt.Errorf("%w: %s", ErrScheduleInPast, scheduledAt.Format(displayLayout))
		slog.Info(err.Error())
		return nil, err
	}

	return s.dr.Update(ctx, sessionID, func(d *models.Draft) error {
		d.ScheduledAt = &scheduledAt
		return nil
	})
}

func (s *draftService) ClearSchedule(ctx context.Context, sessionID string) (*models.Draft, error) {
	return s.dr.Update(ctx, sessionID, func(d *models.Draft) error {
		d.ScheduledAt = nil
		return nil
	})
}

func (s *draftService) Reset(ctx context.Context, sessionID string) error {
	return s.dr.Remove(ctx, sessionID)
}

func (s *draftService) Submit(ctx context.Context, sessionID string) (*transfer.SubmitResult, error) {
	d, err := s.dr.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := ValidateDraft(d); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	result := &transfer.SubmitResult{
		PageCount: len(d.SelectedPageIDs),
		PageIDs:   transfer.NewDraftView(d).SelectedPageIDs,
		Message:   fmt.Sprintf("Posted to %s", pluralPages(len(d.SelectedPageIDs))),
	}
	if d.ScheduledAt != nil {
		result.ScheduledAt = d.ScheduledAt
		result.Message = fmt.Sprintf("Scheduled for %s on %s",
			d.ScheduledAt.In(s.loc).Format(displayLayout), pluralPages(len(d.SelectedPageIDs)))
	}

	return result, nil
}

// ValidateDraft reports why d cannot be submitted. Page selection is checked
// before content.
func ValidateDraft(d *models.Draft) error {
	if len(d.SelectedPageIDs) == 0 {
		return ErrNoPages
	}
	if strings.TrimSpace(d.BodyText) == "" && len(d.MediaItems) == 0 {
		return ErrNoContent
	}
	return nil
}

func pluralPages(n int) string {
	if n == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", n)
}
