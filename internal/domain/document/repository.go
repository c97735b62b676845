package document

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) ListByPropertyID(ctx context.Context, propertyID string) ([]Document, error) {
	var docs []Document
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at ASC, id ASC").
		Find(&docs).Error
	return docs, err
}

func (r *Repository) Delete(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Where("id = ?", id).Delete(&Document{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteByPropertyID removes all document rows of a property and returns them
// for file cleanup.
func (r *Repository) DeleteByPropertyID(ctx context.Context, propertyID string) ([]Document, error) {
	var docs []Document
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", propertyID).Find(&docs).Error; err != nil {
			return err
		}
		return tx.Where("property_id = ?", propertyID).Delete(&Document{}).Error
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
