package property

import (
	"fmt"
	"strings"
)

// CreateInput carries the fields accepted when creating a listing. Optional
// detail fields left at their zero value are stored as NULL.
type CreateInput struct {
	PropertyCode    string  `json:"property_code"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	TransactionType string  `json:"transaction_type"`
	PropertyType    string  `json:"property_type"`

	CityRegion string `json:"city_region"`
	District   string `json:"district"`
	Address    string `json:"address"`

	Area             float64 `json:"area"`
	Bedrooms         int     `json:"bedrooms"`
	Bathrooms        int     `json:"bathrooms"`
	Terraces         int     `json:"terraces"`
	Floors           int     `json:"floors"`
	FloorNumber      int     `json:"floor_number"`
	ConstructionType string  `json:"construction_type"`
	ConditionType    string  `json:"condition_type"`
	Heating          string  `json:"heating"`
	Exposure         string  `json:"exposure"`
	FurnishingLevel  string  `json:"furnishing_level"`
	YearBuilt        int     `json:"year_built"`

	HasElevator         bool `json:"has_elevator"`
	HasGarage           bool `json:"has_garage"`
	HasSouthernExposure bool `json:"has_southern_exposure"`
	NewConstruction     bool `json:"new_construction"`

	Featured  bool  `json:"featured"`
	Active    *bool `json:"active"`
	SortOrder *int  `json:"sort_order"`
}

func (in *CreateInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required: %w", ErrValidation)
	}
	if strings.TrimSpace(in.CityRegion) == "" {
		return fmt.Errorf("city_region is required: %w", ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", ErrValidation)
	}
	if in.Area <= 0 {
		return fmt.Errorf("area must be positive: %w", ErrValidation)
	}
	if in.TransactionType != "sale" && in.TransactionType != "rent" {
		return fmt.Errorf("transaction_type must be sale or rent: %w", ErrValidation)
	}
	return nil
}

// SortOrderUpdate is one entry of the bulk sort-order PATCH.
type SortOrderUpdate struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}

// Filters is the typed search filter set. String filters are substring
// matches unless noted; empty values mean "no filter".
type Filters struct {
	Keyword         string // OR-substring across title, description, location, code, type
	TransactionType string // exact
	CityRegion      string // substring
	District        string // substring
	PropertyType    string // exact
	PriceMin        *float64
	PriceMax        *float64
	AreaMin         *float64
	AreaMax         *float64
	Featured        bool // true = featured only
	IncludeInactive bool // admin tooling: show inactive listings too
}
