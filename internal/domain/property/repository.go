package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"realty/internal/domain/document"
	"realty/internal/domain/image"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Listings are ordered by explicit sort order with NULLs last, newest first
// within ties, id as the final tiebreak for determinism.
const defaultOrder = "(sort_order IS NULL) ASC, sort_order ASC, created_at DESC, id ASC"

type Repository struct {
	db         *gorm.DB
	images     *image.Repository
	documents  *document.Repository
	uploadsDir string
	staticBase string
	publicBase string
}

func NewRepository(db *gorm.DB, images *image.Repository, documents *document.Repository, uploadsDir, staticBase, publicBase string) *Repository {
	return &Repository{
		db:         db,
		images:     images,
		documents:  documents,
		uploadsDir: uploadsDir,
		staticBase: staticBase,
		publicBase: publicBase,
	}
}

// Search returns one page of listings matching the filters plus the total
// match count. Every returned item carries its gallery in display order.
func (r *Repository) Search(ctx context.Context, f Filters, page, limit int) ([]Property, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := r.db.WithContext(ctx).Model(&Property{})
	q = applyFilters(q, f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	var properties []Property
	err := q.Order(defaultOrder).
		Limit(limit).
		Offset(offset).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachImages(ctx, properties); err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

func applyFilters(q *gorm.DB, f Filters) *gorm.DB {
	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		like := "%" + kw + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city_region) LIKE ? OR LOWER(district) LIKE ? OR LOWER(address) LIKE ? OR LOWER(property_code) LIKE ? OR LOWER(property_type) LIKE ?",
			like, like, like, like, like, like, like,
		)
	}
	if f.TransactionType != "" {
		q = q.Where("transaction_type = ?", f.TransactionType)
	}
	if city := strings.ToLower(strings.TrimSpace(f.CityRegion)); city != "" {
		q = q.Where("LOWER(city_region) LIKE ?", "%"+city+"%")
	}
	if d := strings.ToLower(strings.TrimSpace(f.District)); d != "" {
		q = q.Where("LOWER(district) LIKE ?", "%"+d+"%")
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.AreaMin != nil {
		q = q.Where("area >= ?", *f.AreaMin)
	}
	if f.AreaMax != nil {
		q = q.Where("area <= ?", *f.AreaMax)
	}
	if f.Featured {
		q = q.Where("featured = ?", true)
	}
	if !f.IncludeInactive {
		q = q.Where("active = ?", true)
	}
	return q
}

// FindOne resolves an identifier against property_code first and falls back
// to id: external links use the human-readable code, internal references the
// id. The result carries its gallery and document list.
func (r *Repository) FindOne(ctx context.Context, idOrCode string) (*Property, error) {
	var p Property
	err := r.db.WithContext(ctx).Where("property_code = ?", idOrCode).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.WithContext(ctx).Where("id = ?", idOrCode).First(&p).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	imgs, err := r.images.ListByPropertyID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Images = image.Prepare(imgs, r.publicBase)

	docs, err := r.documents.ListByPropertyID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].URL = r.documentURL(docs[i].Path)
	}
	p.Documents = docs

	return &p, nil
}

// CodeByID returns the property's code; it names the upload directory.
func (r *Repository) CodeByID(ctx context.Context, id string) (string, error) {
	var p Property
	err := r.db.WithContext(ctx).Select("property_code").Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return p.PropertyCode, nil
}

// Create inserts a new listing. The code is allocated when not supplied, the
// sort order appends to the end, and empty or zero detail fields become NULL.
func (r *Repository) Create(ctx context.Context, in CreateInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code := strings.TrimSpace(in.PropertyCode)
		if code == "" {
			var err error
			code, err = r.nextPropertyCode(tx)
			if err != nil {
				return err
			}
		}

		sortOrder := in.SortOrder
		if sortOrder == nil {
			next, err := nextSortOrder(tx)
			if err != nil {
				return err
			}
			sortOrder = &next
		}

		active := true
		if in.Active != nil {
			active = *in.Active
		}

		p := &Property{
			ID:                  id,
			PropertyCode:        code,
			Title:               strings.TrimSpace(in.Title),
			Description:         optString(in.Description),
			Price:               in.Price,
			Currency:            strings.TrimSpace(in.Currency),
			TransactionType:     in.TransactionType,
			PropertyType:        strings.TrimSpace(in.PropertyType),
			CityRegion:          strings.TrimSpace(in.CityRegion),
			District:            optString(in.District),
			Address:             optString(in.Address),
			Area:                in.Area,
			Bedrooms:            optInt(in.Bedrooms),
			Bathrooms:           optInt(in.Bathrooms),
			Terraces:            optInt(in.Terraces),
			Floors:              optInt(in.Floors),
			FloorNumber:         optInt(in.FloorNumber),
			ConstructionType:    optString(in.ConstructionType),
			ConditionType:       optString(in.ConditionType),
			Heating:             optString(in.Heating),
			Exposure:            optString(in.Exposure),
			FurnishingLevel:     optString(in.FurnishingLevel),
			YearBuilt:           optInt(in.YearBuilt),
			HasElevator:         in.HasElevator,
			HasGarage:           in.HasGarage,
			HasSouthernExposure: in.HasSouthernExposure,
			NewConstruction:     in.NewConstruction,
			Featured:            in.Featured,
			Active:              active,
			SortOrder:           sortOrder,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		return tx.Create(p).Error
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update applies a sparse field set: only supplied keys change, updated_at is
// always refreshed, and an update carrying no recognized fields is rejected
// instead of issuing a vacuous write. No partial application is ever visible.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	updates, err := normalizeUpdates(fields)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return ErrNothingToUpdate
	}
	updates["updated_at"] = time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return tx.Model(&Property{}).Where("id = ?", id).Updates(updates).Error
	})
}

// Delete removes the listing and its image and document rows in one
// transaction, then removes the upload directory best-effort. A failed file
// cleanup never reverses the committed row deletions.
func (r *Repository) Delete(ctx context.Context, id string) error {
	var p Property
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&image.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&document.Document{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Property{}).Error
	})
	if err != nil {
		return err
	}

	if p.PropertyCode != "" {
		dir := filepath.Join(r.uploadsDir, p.PropertyCode)
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("file_cleanup_failed path=%s error=%q", dir, err)
		}
	}
	return nil
}

// UpdateSortOrders applies a bulk manual reordering all-or-nothing: one
// unknown id rolls back the whole batch.
func (r *Repository) UpdateSortOrders(ctx context.Context, orders []SortOrderUpdate) error {
	if len(orders) == 0 {
		return ErrNothingToUpdate
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			res := tx.Model(&Property{}).Where("id = ?", o.ID).Updates(map[string]any{
				"sort_order": o.SortOrder,
				"updated_at": now,
			})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}

func (r *Repository) attachImages(ctx context.Context, properties []Property) error {
	if len(properties) == 0 {
		return nil
	}
	ids := make([]string, len(properties))
	for i := range properties {
		ids[i] = properties[i].ID
	}
	grouped, err := r.images.ListByPropertyIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range properties {
		properties[i].Images = image.Prepare(grouped[properties[i].ID], r.publicBase)
	}
	return nil
}

func (r *Repository) documentURL(relPath string) string {
	u := image.PublicURL(r.staticBase, relPath, 0)
	if r.publicBase != "" && strings.HasPrefix(u, "/") {
		u = r.publicBase + u
	}
	return u
}

func nextSortOrder(tx *gorm.DB) (int, error) {
	var maxSort sql.NullInt64
	row := tx.Model(&Property{}).Select("MAX(sort_order)").Row()
	if err := row.Scan(&maxSort); err != nil {
		return 0, err
	}
	if !maxSort.Valid {
		return 1, nil
	}
	return int(maxSort.Int64) + 1, nil
}

// detailIntColumns and detailStringColumns are the optional detail fields:
// zero or empty input is stored as NULL.
var detailIntColumns = map[string]bool{
	"bedrooms":     true,
	"bathrooms":    true,
	"terraces":     true,
	"floors":       true,
	"floor_number": true,
	"year_built":   true,
}

var detailStringColumns = map[string]bool{
	"description":       true,
	"district":          true,
	"address":           true,
	"construction_type": true,
	"condition_type":    true,
	"heating":           true,
	"exposure":          true,
	"furnishing_level":  true,
}

var boolColumns = map[string]bool{
	"has_elevator":          true,
	"has_garage":            true,
	"has_southern_exposure": true,
	"new_construction":      true,
	"featured":              true,
	"active":                true,
}

var plainColumns = map[string]bool{
	"title":            true,
	"currency":         true,
	"transaction_type": true,
	"property_type":    true,
	"city_region":      true,
	"price":            true,
	"area":             true,
	"sort_order":       true,
}

func normalizeUpdates(fields map[string]any) (map[string]any, error) {
	updates := make(map[string]any, len(fields))
	for key, value := range fields {
		switch {
		case detailIntColumns[key]:
			n, ok := asInt(value)
			if !ok || n <= 0 {
				updates[key] = nil
			} else {
				updates[key] = n
			}
		case detailStringColumns[key]:
			s, _ := value.(string)
			if strings.TrimSpace(s) == "" {
				updates[key] = nil
			} else {
				updates[key] = strings.TrimSpace(s)
			}
		case boolColumns[key]:
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%s must be a boolean: %w", key, ErrValidation)
			}
			updates[key] = b
		case plainColumns[key]:
			normalized, err := normalizePlain(key, value)
			if err != nil {
				return nil, err
			}
			updates[key] = normalized
		default:
			// Unknown keys are ignored, matching PATCH semantics.
		}
	}
	return updates, nil
}

func normalizePlain(key string, value any) (any, error) {
	switch key {
	case "title", "city_region":
		s, _ := value.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%s cannot be empty: %w", key, ErrValidation)
		}
		return s, nil
	case "transaction_type":
		s, _ := value.(string)
		if s != "sale" && s != "rent" {
			return nil, fmt.Errorf("transaction_type must be sale or rent: %w", ErrValidation)
		}
		return s, nil
	case "price", "area":
		f, ok := asFloat(value)
		if !ok || f <= 0 {
			return nil, fmt.Errorf("%s must be positive: %w", key, ErrValidation)
		}
		return f, nil
	case "sort_order":
		n, ok := asInt(value)
		if !ok {
			return nil, nil // explicit null clears the manual ordering
		}
		return n, nil
	default:
		s, _ := value.(string)
		return strings.TrimSpace(s), nil
	}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optInt(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
