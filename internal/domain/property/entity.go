package property

import (
	"time"

	"realty/internal/domain/document"
	"realty/internal/domain/image"
)

// Property is a single listing. Optional detail fields are pointers: zero or
// empty input means "not applicable" and is stored as NULL, never as 0 or "".
type Property struct {
	ID           string `gorm:"column:id;primaryKey" json:"id"`
	PropertyCode string `gorm:"column:property_code;uniqueIndex" json:"property_code"`

	Title           string  `gorm:"column:title" json:"title"`
	Description     *string `gorm:"column:description" json:"description"`
	Price           float64 `gorm:"column:price" json:"price"`
	Currency        string  `gorm:"column:currency" json:"currency"`
	TransactionType string  `gorm:"column:transaction_type" json:"transaction_type"`
	PropertyType    string  `gorm:"column:property_type" json:"property_type"`

	CityRegion string  `gorm:"column:city_region" json:"city_region"`
	District   *string `gorm:"column:district" json:"district"`
	Address    *string `gorm:"column:address" json:"address"`

	Area             float64 `gorm:"column:area" json:"area"`
	Bedrooms         *int    `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms        *int    `gorm:"column:bathrooms" json:"bathrooms"`
	Terraces         *int    `gorm:"column:terraces" json:"terraces"`
	Floors           *int    `gorm:"column:floors" json:"floors"`
	FloorNumber      *int    `gorm:"column:floor_number" json:"floor_number"`
	ConstructionType *string `gorm:"column:construction_type" json:"construction_type"`
	ConditionType    *string `gorm:"column:condition_type" json:"condition_type"`
	Heating          *string `gorm:"column:heating" json:"heating"`
	Exposure         *string `gorm:"column:exposure" json:"exposure"`
	FurnishingLevel  *string `gorm:"column:furnishing_level" json:"furnishing_level"`
	YearBuilt        *int    `gorm:"column:year_built" json:"year_built"`

	HasElevator         bool `gorm:"column:has_elevator" json:"has_elevator"`
	HasGarage           bool `gorm:"column:has_garage" json:"has_garage"`
	HasSouthernExposure bool `gorm:"column:has_southern_exposure" json:"has_southern_exposure"`
	NewConstruction     bool `gorm:"column:new_construction" json:"new_construction"`

	Featured  bool      `gorm:"column:featured" json:"featured"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	SortOrder *int      `gorm:"column:sort_order" json:"sort_order"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Derived at read time, never persisted.
	Images    []image.Image       `gorm:"-" json:"images"`
	Documents []document.Document `gorm:"-" json:"documents,omitempty"`
}

func (Property) TableName() string { return "properties" }
