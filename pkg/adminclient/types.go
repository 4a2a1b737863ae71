package adminclient

import (
	"time"

	"estates-backend/pkg/kvlist"
)

// Admin is an operator account as returned by the API. The password is
// write-only and never read back.
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
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

// Project is a real-estate listing.
type Project struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Location        string  `json:"location"`
	Description     string  `json:"description"`
	LongDescription string  `json:"long_description"`
	WebsiteURL      string  `json:"website_url"`
	Status          string  `json:"status"`
	PropertyType    string  `json:"property_type"`
	BasePrice       float64 `json:"base_price"`
	HasRentalIncome bool    `json:"has_rental_income"`

	PricingDetails kvlist.List `json:"pricing_details"`
	QuickInfo      kvlist.List `json:"quick_info"`

	GalleryImages        []GalleryImage `json:"gallery_images"`
	KeyHighlights        []string       `json:"key_highlights"`
	Features             []string       `json:"features"`
	InvestmentHighlights []string       `json:"investment_highlights"`
	Amenities            []Amenity      `json:"amenities"`

	TotalUnits     int `json:"total_units"`
	AvailableUnits int `json:"available_units"`
	SoldUnits      int `json:"sold_units"`
	ReservedUnits  int `json:"reserved_units"`

	ReraNumber         string `json:"rera_number"`
	BuildingPermission string `json:"building_permission"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectOption is the id+title pair served to pickers.
type ProjectOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// InvestmentScheme is a payment plan scoped to one project.
type InvestmentScheme struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	SchemeName string `json:"scheme_name"`
	SchemeType string `json:"scheme_type"`

	AreaSqft       float64 `json:"area_sqft"`
	BookingAdvance float64 `json:"booking_advance"`

	BalancePaymentDays       *int     `json:"balance_payment_days,omitempty"`
	TotalInstallments        *int     `json:"total_installments,omitempty"`
	MonthlyInstallmentAmount *float64 `json:"monthly_installment_amount,omitempty"`
	RentalStartMonth         *int     `json:"rental_start_month,omitempty"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DashboardCounts is the summary returned by the dashboard endpoint.
type DashboardCounts struct {
	TotalAdmins   int64 `json:"total_admins"`
	TotalProjects int64 `json:"total_projects"`
	TotalSchemes  int64 `json:"total_schemes"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// CreateAdminRequest creates an operator account.
type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAdminRequest partially updates an admin. A nil Password keeps the
// current one.
type UpdateAdminRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// CreateProjectRequest creates a project.
type CreateProjectRequest struct {
	Title           string  `json:"title"`
	Location        string  `json:"location"`
	Description     string  `json:"description"`
	LongDescription string  `json:"long_description,omitempty"`
	WebsiteURL      string  `json:"website_url,omitempty"`
	Status          string  `json:"status"`
	PropertyType    string  `json:"property_type"`
	BasePrice       float64 `json:"base_price"`
	HasRentalIncome bool    `json:"has_rental_income"`

	PricingDetails kvlist.List `json:"pricing_details"`
	QuickInfo      kvlist.List `json:"quick_info"`

	GalleryImages        []GalleryImage `json:"gallery_images"`
	KeyHighlights        []string       `json:"key_highlights"`
	Features             []string       `json:"features"`
	InvestmentHighlights []string       `json:"investment_highlights"`
	Amenities            []Amenity      `json:"amenities"`

	TotalUnits     int `json:"total_units"`
	AvailableUnits int `json:"available_units"`
	SoldUnits      int `json:"sold_units"`
	ReservedUnits  int `json:"reserved_units"`

	ReraNumber         string `json:"rera_number,omitempty"`
	BuildingPermission string `json:"building_permission,omitempty"`

	IsActive *bool `json:"is_active,omitempty"`
}

// UpdateProjectRequest partially updates a project; nil fields are not sent.
type UpdateProjectRequest struct {
	Title           *string  `json:"title,omitempty"`
	Location        *string  `json:"location,omitempty"`
	Description     *string  `json:"description,omitempty"`
	LongDescription *string  `json:"long_description,omitempty"`
	WebsiteURL      *string  `json:"website_url,omitempty"`
	Status          *string  `json:"status,omitempty"`
	PropertyType    *string  `json:"property_type,omitempty"`
	BasePrice       *float64 `json:"base_price,omitempty"`
	HasRentalIncome *bool    `json:"has_rental_income,omitempty"`

	PricingDetails *kvlist.List `json:"pricing_details,omitempty"`
	QuickInfo      *kvlist.List `json:"quick_info,omitempty"`

	GalleryImages        *[]GalleryImage `json:"gallery_images,omitempty"`
	KeyHighlights        *[]string       `json:"key_highlights,omitempty"`
	Features             *[]string       `json:"features,omitempty"`
	InvestmentHighlights *[]string       `json:"investment_highlights,omitempty"`
	Amenities            *[]Amenity      `json:"amenities,omitempty"`

	TotalUnits     *int `json:"total_units,omitempty"`
	AvailableUnits *int `json:"available_units,omitempty"`
	SoldUnits      *int `json:"sold_units,omitempty"`
	ReservedUnits  *int `json:"reserved_units,omitempty"`

	ReraNumber         *string `json:"rera_number,omitempty"`
	BuildingPermission *string `json:"building_permission,omitempty"`

	IsActive *bool `json:"is_active,omitempty"`
}

// CreateSchemeRequest creates an investment scheme. The type-specific
// fields are pointers so a single_payment request never carries
// installment fields on the wire, and vice versa.
type CreateSchemeRequest struct {
	ProjectID      string  `json:"project_id"`
	SchemeName     string  `json:"scheme_name"`
	SchemeType     string  `json:"scheme_type"`
	AreaSqft       float64 `json:"area_sqft"`
	BookingAdvance float64 `json:"booking_advance"`

	BalancePaymentDays       *int     `json:"balance_payment_days,omitempty"`
	TotalInstallments        *int     `json:"total_installments,omitempty"`
	MonthlyInstallmentAmount *float64 `json:"monthly_installment_amount,omitempty"`
	RentalStartMonth         *int     `json:"rental_start_month,omitempty"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`

	IsActive *bool `json:"is_active,omitempty"`
}

// UpdateSchemeRequest partially updates a scheme; nil fields are not sent.
type UpdateSchemeRequest struct {
	ProjectID      *string  `json:"project_id,omitempty"`
	SchemeName     *string  `json:"scheme_name,omitempty"`
	SchemeType     *string  `json:"scheme_type,omitempty"`
	AreaSqft       *float64 `json:"area_sqft,omitempty"`
	BookingAdvance *float64 `json:"booking_advance,omitempty"`

	BalancePaymentDays       *int     `json:"balance_payment_days,omitempty"`
	TotalInstallments        *int     `json:"total_installments,omitempty"`
	MonthlyInstallmentAmount *float64 `json:"monthly_installment_amount,omitempty"`
	RentalStartMonth         *int     `json:"rental_start_month,omitempty"`

	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	IsActive *bool `json:"is_active,omitempty"`
}

// Page is one page of a paginated collection.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	TotalPages int
	TotalItems int64
	IsPrevious bool
	IsNext     bool
}
