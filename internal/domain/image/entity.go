package image

import "time"

// Image is one gallery photo of a property. At most one image per property
// carries is_main = true once a transaction has committed.
type Image struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	PropertyID   string    `gorm:"column:property_id;index" json:"property_id"`
	ImageURL     string    `gorm:"column:image_url" json:"image_url"`
	ImagePath    string    `gorm:"column:image_path" json:"-"` // relative disk path
	ThumbnailURL string    `gorm:"column:thumbnail_url" json:"thumbnail_url,omitempty"`
	AltText      string    `gorm:"column:alt_text" json:"alt_text,omitempty"`
	SortOrder    int       `gorm:"column:sort_order;default:0" json:"sort_order"`
	IsMain       bool      `gorm:"column:is_main;default:false" json:"is_main"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Image) TableName() string { return "property_images" }
