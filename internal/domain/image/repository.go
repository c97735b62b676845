package image

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// displayOrder is the single authoritative ordering for gallery images.
const displayOrder = "is_main DESC, sort_order ASC, id ASC"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new image. An unset sort order appends to the end of the
// property's gallery; the property's first image becomes main automatically.
func (r *Repository) Create(ctx context.Context, img *Image) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Image{}).Where("property_id = ?", img.PropertyID).Count(&count).Error; err != nil {
			return err
		}

		if img.SortOrder == 0 {
			var maxSort sql.NullInt64
			row := tx.Model(&Image{}).
				Where("property_id = ?", img.PropertyID).
				Select("MAX(sort_order)").
				Row()
			if err := row.Scan(&maxSort); err != nil {
				return err
			}
			if maxSort.Valid {
				img.SortOrder = int(maxSort.Int64) + 1
			} else {
				img.SortOrder = 1
			}
		}

		if count == 0 {
			img.IsMain = true
		}

		return tx.Create(img).Error
	})
}

// SetMain promotes one image to main and demotes every other image of the
// property in the same transaction. The image must belong to the property.
func (r *Repository) SetMain(ctx context.Context, propertyID, imageID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Image{}).
			Where("property_id = ?", propertyID).
			Update("is_main", false).Error; err != nil {
			return err
		}

		res := tx.Model(&Image{}).
			Where("id = ? AND property_id = ?", imageID, propertyID).
			Update("is_main", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Roll back the demotion rather than leave the property mainless.
			return ErrNotFound
		}
		return nil
	})
}

// Delete removes an image row. If it was the main image and other images
// remain, the one with the lowest sort order (ties broken by id) is promoted
// in the same transaction. Returns the deleted row so the caller can remove
// the underlying files after commit.
func (r *Repository) Delete(ctx context.Context, imageID string) (*Image, error) {
	var img Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", imageID).First(&img).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("id = ?", imageID).Delete(&Image{}).Error; err != nil {
			return err
		}

		if img.IsMain {
			var next Image
			err := tx.Where("property_id = ?", img.PropertyID).
				Order("sort_order ASC, id ASC").
				First(&next).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // last image is gone, nothing to promote
			}
			if err != nil {
				return err
			}
			return tx.Model(&Image{}).Where("id = ?", next.ID).Update("is_main", true).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// DeleteByPropertyID removes all image rows of a property in one statement
// and returns the deleted rows so files can be cleaned up afterwards.
func (r *Repository) DeleteByPropertyID(ctx context.Context, propertyID string) ([]Image, error) {
	var images []Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", propertyID).Find(&images).Error; err != nil {
			return err
		}
		return tx.Where("property_id = ?", propertyID).Delete(&Image{}).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ListByPropertyID returns the property's gallery in display order. Rows with
// an empty stored URL are dirty data and never reach the client.
func (r *Repository) ListByPropertyID(ctx context.Context, propertyID string) ([]Image, error) {
	var images []Image
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND image_url <> ''", propertyID).
		Order(displayOrder).
		Find(&images).Error
	return images, err
}

// ListByPropertyIDs batch-loads galleries for a search result page.
func (r *Repository) ListByPropertyIDs(ctx context.Context, propertyIDs []string) (map[string][]Image, error) {
	grouped := make(map[string][]Image, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return grouped, nil
	}

	var images []Image
	err := r.db.WithContext(ctx).
		Where("property_id IN ? AND image_url <> ''", propertyIDs).
		Order(displayOrder).
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		grouped[img.PropertyID] = append(grouped[img.PropertyID], img)
	}
	return grouped, nil
}
