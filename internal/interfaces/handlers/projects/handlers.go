package projects

import (
	"errors"
	"net/url"
	"strconv"

	projsvc "estates-backend/internal/application/projects"
	"estates-backend/internal/models"
	"estates-backend/internal/pkg/pagination"
	"estates-backend/internal/pkg/response"
	"estates-backend/pkg/kvlist"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *projsvc.Service
}

type createProjectRequest struct {
	Title           string               `json:"title"`
	Location        string               `json:"location"`
	Description     string               `json:"description"`
	LongDescription string               `json:"long_description"`
	WebsiteURL      string               `json:"website_url"`
	Status          models.ProjectStatus `json:"status"`
	PropertyType    models.PropertyType  `json:"property_type"`
	BasePrice       float64              `json:"base_price"`
	HasRentalIncome bool                 `json:"has_rental_income"`

	PricingDetails kvlist.List `json:"pricing_details"`
	QuickInfo      kvlist.List `json:"quick_info"`

	GalleryImages        []models.GalleryImage `json:"gallery_images"`
	KeyHighlights        []string              `json:"key_highlights"`
	Features             []string              `json:"features"`
	InvestmentHighlights []string              `json:"investment_highlights"`
	Amenities            []models.Amenity      `json:"amenities"`

	TotalUnits     int `json:"total_units"`
	AvailableUnits int `json:"available_units"`
	SoldUnits      int `json:"sold_units"`
	ReservedUnits  int `json:"reserved_units"`

	ReraNumber         string `json:"rera_number"`
	BuildingPermission string `json:"building_permission"`

	IsActive *bool `json:"is_active"`
}

// CreateProject POST /projects/
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	project, err := h.Service.Create(c.Context(), projsvc.CreateInput{
		Title:                req.Title,
		Location:             req.Location,
		Description:          req.Description,
		LongDescription:      req.LongDescription,
		WebsiteURL:           req.WebsiteURL,
		Status:               req.Status,
		PropertyType:         req.PropertyType,
		BasePrice:            req.BasePrice,
		HasRentalIncome:      req.HasRentalIncome,
		PricingDetails:       req.PricingDetails,
		QuickInfo:            req.QuickInfo,
		GalleryImages:        req.GalleryImages,
		KeyHighlights:        req.KeyHighlights,
		Features:             req.Features,
		InvestmentHighlights: req.InvestmentHighlights,
		Amenities:            req.Amenities,
		TotalUnits:           req.TotalUnits,
		AvailableUnits:       req.AvailableUnits,
		SoldUnits:            req.SoldUnits,
		ReservedUnits:        req.ReservedUnits,
		ReraNumber:           req.ReraNumber,
		BuildingPermission:   req.BuildingPermission,
		IsActive:             req.IsActive,
	})
	if err != nil {
		return projectError(c, err)
	}
	return response.Created(c, "Project created successfully", project)
}

// ListProjects GET /projects/?page=&limit=&property_type=&status_filter=&min_price=&max_price=
// Absent or empty price bounds mean "no bound"; they are never treated as 0.
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	p := pagination.Parse(c)
	filter := projsvc.ListFilter{
		Status:       models.ProjectStatus(c.Query("status_filter")),
		PropertyType: models.PropertyType(c.Query("property_type")),
		Offset:       p.Offset(),
		Limit:        p.Limit,
	}

	var err error
	if filter.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return response.Error(c, "Invalid min_price", fiber.StatusBadRequest)
	}
	if filter.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return response.Error(c, "Invalid max_price", fiber.StatusBadRequest)
	}

	projects, total, err := h.Service.List(c.Context(), filter)
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p.Envelope("Projects fetched successfully", projects, total))
}

// SearchProjects GET /projects/search/:query
func (h *Handlers) SearchProjects(c *fiber.Ctx) error {
	query, err := url.PathUnescape(c.Params("query"))
	if err != nil || query == "" {
		return response.Error(c, "Search query is required", fiber.StatusBadRequest)
	}
	p := pagination.Parse(c)
	projects, total, err := h.Service.Search(c.Context(), query, p.Offset(), p.Limit)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return c.JSON(p.Envelope("Projects fetched successfully", projects, total))
}

// ProjectOptions GET /projects/options returns id+title pairs for pickers.
func (h *Handlers) ProjectOptions(c *fiber.Ctx) error {
	options, err := h.Service.Options(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Project options fetched successfully", options)
}

// GetProject GET /projects/:id
func (h *Handlers) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest)
	}
	project, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		return projectError(c, err)
	}
	return response.Success(c, "Project fetched successfully", project)
}

type updateProjectRequest struct {
	Title           *string               `json:"title"`
	Location        *string               `json:"location"`
	Description     *string               `json:"description"`
	LongDescription *string               `json:"long_description"`
	WebsiteURL      *string               `json:"website_url"`
	Status          *models.ProjectStatus `json:"status"`
	PropertyType    *models.PropertyType  `json:"property_type"`
	BasePrice       *float64              `json:"base_price"`
	HasRentalIncome *bool                 `json:"has_rental_income"`

	PricingDetails *kvlist.List `json:"pricing_details"`
	QuickInfo      *kvlist.List `json:"quick_info"`

	GalleryImages        *[]models.GalleryImage `json:"gallery_images"`
	KeyHighlights        *[]string              `json:"key_highlights"`
	Features             *[]string              `json:"features"`
	InvestmentHighlights *[]string              `json:"investment_highlights"`
	Amenities            *[]models.Amenity      `json:"amenities"`

	TotalUnits     *int `json:"total_units"`
	AvailableUnits *int `json:"available_units"`
	SoldUnits      *int `json:"sold_units"`
	ReservedUnits  *int `json:"reserved_units"`

	ReraNumber         *string `json:"rera_number"`
	BuildingPermission *string `json:"building_permission"`

	IsActive *bool `json:"is_active"`
}

// UpdateProject PUT /projects/:id applies a partial update. Absent fields
// are left untouched.
func (h *Handlers) UpdateProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest)
	}
	var req updateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	project, err := h.Service.Update(c.Context(), id, projsvc.UpdateInput{
		Title:                req.Title,
		Location:             req.Location,
		Description:          req.Description,
		LongDescription:      req.LongDescription,
		WebsiteURL:           req.WebsiteURL,
		Status:               req.Status,
		PropertyType:         req.PropertyType,
		BasePrice:            req.BasePrice,
		HasRentalIncome:      req.HasRentalIncome,
		PricingDetails:       req.PricingDetails,
		QuickInfo:            req.QuickInfo,
		GalleryImages:        req.GalleryImages,
		KeyHighlights:        req.KeyHighlights,
		Features:             req.Features,
		InvestmentHighlights: req.InvestmentHighlights,
		Amenities:            req.Amenities,
		TotalUnits:           req.TotalUnits,
		AvailableUnits:       req.AvailableUnits,
		SoldUnits:            req.SoldUnits,
		ReservedUnits:        req.ReservedUnits,
		ReraNumber:           req.ReraNumber,
		BuildingPermission:   req.BuildingPermission,
		IsActive:             req.IsActive,
	})
	if err != nil {
		return projectError(c, err)
	}
	return response.Success(c, "Project updated successfully", project)
}

// DeleteProject DELETE /projects/:id soft-deletes and cascades is_active=false
// to the project's schemes.
func (h *Handlers) DeleteProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid project id", fiber.StatusBadRequest)
	}
	project, err := h.Service.Deactivate(c.Context(), id)
	if err != nil {
		return projectError(c, err)
	}
	return response.Success(c, "Project deleted successfully", project)
}

func projectError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, projsvc.ErrNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	case errors.Is(err, projsvc.ErrTitleRequired),
		errors.Is(err, projsvc.ErrLocationRequired),
		errors.Is(err, projsvc.ErrInvalidStatus),
		errors.Is(err, projsvc.ErrInvalidPropertyType),
		errors.Is(err, projsvc.ErrNegativePrice),
		errors.Is(err, projsvc.ErrNegativeUnits):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
}

// queryFloat reads an optional numeric query param; "" means unset.
func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
