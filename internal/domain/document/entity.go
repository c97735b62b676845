package document

import "time"

// Document is a file attachment of a property (floor plans, certificates).
type Document struct {
	ID               string    `gorm:"column:id;primaryKey" json:"id"`
	PropertyID       string    `gorm:"column:property_id;index" json:"property_id"`
	Filename         string    `gorm:"column:filename" json:"filename"`
	OriginalFilename string    `gorm:"column:original_filename" json:"original_filename"`
	Path             string    `gorm:"column:path" json:"-"` // relative disk path
	Size             int64     `gorm:"column:size" json:"size"`
	MimeType         string    `gorm:"column:mime_type" json:"mime_type"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`

	URL string `gorm:"-" json:"url"`
}

func (Document) TableName() string { return "property_documents" }
