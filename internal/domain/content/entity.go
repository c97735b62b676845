package content

import "time"

// Page is a CMS page of the public site (about, contacts, terms...).
type Page struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Slug      string    `gorm:"column:slug;uniqueIndex" json:"slug"`
	Title     string    `gorm:"column:title" json:"title"`
	Content   string    `gorm:"column:content" json:"content"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Sections []Section `gorm:"-" json:"sections,omitempty"`
}

func (Page) TableName() string { return "pages" }

// Section is one block of a page, ordered by sort_order.
type Section struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	PageID    string `gorm:"column:page_id;index" json:"page_id"`
	Key       string `gorm:"column:section_key" json:"key"`
	Title     string `gorm:"column:title" json:"title"`
	Body      string `gorm:"column:body" json:"body"`
	SortOrder int    `gorm:"column:sort_order;default:0" json:"sort_order"`
}

func (Section) TableName() string { return "page_sections" }

// SiteService is one agency service shown on the public site.
type SiteService struct {
	ID          string `gorm:"column:id;primaryKey" json:"id"`
	Title       string `gorm:"column:title" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	Icon        string `gorm:"column:icon" json:"icon"`
	SortOrder   int    `gorm:"column:sort_order;default:0" json:"sort_order"`
	Active      bool   `gorm:"column:active;default:true" json:"active"`
}

func (SiteService) TableName() string { return "site_services" }
