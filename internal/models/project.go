package models

import (
	"time"

	"estates-backend/pkg/kvlist"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectStatus is the sales status of a project.
type ProjectStatus string

const (
	StatusAvailable  ProjectStatus = "available"
	StatusSoldOut    ProjectStatus = "sold_out"
	StatusComingSoon ProjectStatus = "coming_soon"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSoldOut, StatusComingSoon:
		return true
	}
	return false
}

// PropertyType classifies a project.
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
	PropertyPlot        PropertyType = "plot"
	PropertyLand        PropertyType = "land"
	PropertyMixedUse    PropertyType = "mixed_use"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyResidential, PropertyCommercial, PropertyPlot, PropertyLand, PropertyMixedUse:
		return true
	}
	return false
}

// GalleryImage is one entry of a project's ordered image gallery.
type GalleryImage struct {
	URL       string `json:"url"`
	Caption   string `json:"caption"`
	IsPrimary bool   `json:"is_primary"`
}

// Amenity is a named facility offered by a project.
type Amenity struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Project is a real-estate listing managed through the admin API.
type Project struct {
	ID              uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title           string        `gorm:"column:title;not null" json:"title"`
	Location        string        `gorm:"column:location;not null" json:"location"`
	Description     string        `gorm:"column:description" json:"description"`
	LongDescription string        `gorm:"column:long_description" json:"long_description"`
	WebsiteURL      string        `gorm:"column:website_url" json:"website_url"`
	Status          ProjectStatus `gorm:"column:status;type:varchar(20);not null;default:'available'" json:"status"`
	PropertyType    PropertyType  `gorm:"column:property_type;type:varchar(20);not null" json:"property_type"`
	BasePrice       float64       `gorm:"column:base_price;type:decimal(18,2);not null" json:"base_price"`
	HasRentalIncome bool          `gorm:"column:has_rental_income;not null;default:false" json:"has_rental_income"`

	PricingDetails kvlist.List `gorm:"column:pricing_details;type:jsonb" json:"pricing_details"`
	QuickInfo      kvlist.List `gorm:"column:quick_info;type:jsonb" json:"quick_info"`

	GalleryImages        datatypes.JSONSlice[GalleryImage] `gorm:"column:gallery_images;type:jsonb" json:"gallery_images"`
	KeyHighlights        datatypes.JSONSlice[string]       `gorm:"column:key_highlights;type:jsonb" json:"key_highlights"`
	Features             datatypes.JSONSlice[string]       `gorm:"column:features;type:jsonb" json:"features"`
	InvestmentHighlights datatypes.JSONSlice[string]       `gorm:"column:investment_highlights;type:jsonb" json:"investment_highlights"`
	Amenities            datatypes.JSONSlice[Amenity]      `gorm:"column:amenities;type:jsonb" json:"amenities"`

	TotalUnits     int `gorm:"column:total_units;not null;default:0" json:"total_units"`
	AvailableUnits int `gorm:"column:available_units;not null;default:0" json:"available_units"`
	SoldUnits      int `gorm:"column:sold_units;not null;default:0" json:"sold_units"`
	ReservedUnits  int `gorm:"column:reserved_units;not null;default:0" json:"reserved_units"`

	ReraNumber         string `gorm:"column:rera_number" json:"rera_number"`
	BuildingPermission string `gorm:"column:building_permission" json:"building_permission"`

	IsActive  bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProjectOption is the id+title pair served to pickers.
type ProjectOption struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}
