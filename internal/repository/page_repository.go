package repository

import (
	"context"

	"github.com/bkmarketing/post-composer/internal/models"
)

type PageRepository interface {
	List(ctx context.Context) []models.Page
	GetByID(ctx context.Context, id string) (*models.Page, bool)
}

type pageRepository struct {
	pages []models.Page
}

func NewPageRepository(pages []models.Page) PageRepository {
	return &pageRepository{pages: pages}
}

func (r *pageRepository) List(ctx context.Context) []models.Page {
	return append([]models.Page{}, r.pages...)
}

func (r *pageRepository) GetByID(ctx context.Context, id string) (*models.Page, bool) {
	for _, p := range r.pages {
		if p.ID == id {
			page := p
			return &page, true
		}
	}
	return nil, false
}
