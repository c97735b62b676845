package content

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

/* ---------- pages ---------- */

func (r *Repository) ListPages(ctx context.Context, includeInactive bool) ([]Page, error) {
	q := r.db.WithContext(ctx).Model(&Page{})
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	var pages []Page
	err := q.Order("title ASC").Find(&pages).Error
	return pages, err
}

// GetPageBySlug loads a page with its sections in sort order.
func (r *Repository) GetPageBySlug(ctx context.Context, slug string) (*Page, error) {
	var p Page
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("page_id = ?", p.ID).
		Order("sort_order ASC, id ASC").
		Find(&p.Sections).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreatePage(ctx context.Context, p *Page) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) UpdatePage(ctx context.Context, id string, updates map[string]any) error {
	updates["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&Page{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePage removes the page together with its sections.
func (r *Repository) DeletePage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&Page{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("page_id = ?", id).Delete(&Section{}).Error
	})
}

/* ---------- sections ---------- */

func (r *Repository) CreateSection(ctx context.Context, s *Section) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) UpdateSection(ctx context.Context, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&Section{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteSection(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Section{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* ---------- services ---------- */

func (r *Repository) ListServices(ctx context.Context, includeInactive bool) ([]SiteService, error) {
	q := r.db.WithContext(ctx).Model(&SiteService{})
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	var services []SiteService
	err := q.Order("sort_order ASC, id ASC").Find(&services).Error
	return services, err
}

func (r *Repository) CreateService(ctx context.Context, s *SiteService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) UpdateService(ctx context.Context, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&SiteService{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteService(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&SiteService{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
