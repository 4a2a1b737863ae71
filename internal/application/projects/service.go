package projects

import (
	"context"
	"errors"
	"strings"

	"estates-backend/internal/models"
	"estates-backend/pkg/kvlist"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("Project not found")
	ErrTitleRequired       = errors.New("Title is required")
	ErrLocationRequired    = errors.New("Location is required")
	ErrInvalidStatus       = errors.New("Invalid project status")
	ErrInvalidPropertyType = errors.New("Invalid property type")
	ErrNegativePrice       = errors.New("Base price cannot be negative")
	ErrNegativeUnits       = errors.New("Unit counts cannot be negative")
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Title           string
	Location        string
	Description     string
	LongDescription string
	WebsiteURL      string
	Status          models.ProjectStatus
	PropertyType    models.PropertyType
	BasePrice       float64
	HasRentalIncome bool

	PricingDetails kvlist.List
	QuickInfo      kvlist.List

	GalleryImages        []models.GalleryImage
	KeyHighlights        []string
	Features             []string
	InvestmentHighlights []string
	Amenities            []models.Amenity

	TotalUnits     int
	AvailableUnits int
	SoldUnits      int
	ReservedUnits  int

	ReraNumber         string
	BuildingPermission string

	IsActive *bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, ErrLocationRequired
	}
	status := in.Status
	if status == "" {
		status = models.StatusAvailable
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !in.PropertyType.Valid() {
		return nil, ErrInvalidPropertyType
	}
	if in.BasePrice < 0 {
		return nil, ErrNegativePrice
	}
	if in.TotalUnits < 0 || in.AvailableUnits < 0 || in.SoldUnits < 0 || in.ReservedUnits < 0 {
		return nil, ErrNegativeUnits
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	project := &models.Project{
		Title:                in.Title,
		Location:             in.Location,
		Description:          in.Description,
		LongDescription:      in.LongDescription,
		WebsiteURL:           in.WebsiteURL,
		Status:               status,
		PropertyType:         in.PropertyType,
		BasePrice:            in.BasePrice,
		HasRentalIncome:      in.HasRentalIncome,
		PricingDetails:       in.PricingDetails,
		QuickInfo:            in.QuickInfo,
		GalleryImages:        normalizePrimary(in.GalleryImages),
		KeyHighlights:        datatypes.NewJSONSlice(in.KeyHighlights),
		Features:             datatypes.NewJSONSlice(in.Features),
		InvestmentHighlights: datatypes.NewJSONSlice(in.InvestmentHighlights),
		Amenities:            datatypes.NewJSONSlice(in.Amenities),
		TotalUnits:           in.TotalUnits,
		AvailableUnits:       in.AvailableUnits,
		SoldUnits:            in.SoldUnits,
		ReservedUnits:        in.ReservedUnits,
		ReraNumber:           in.ReraNumber,
		BuildingPermission:   in.BuildingPermission,
		IsActive:             active,
	}
	if err := s.DB.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// ListFilter narrows the project listing. Zero values mean "no filter";
// price bounds are pointers so an unset bound is distinguishable from 0.
type ListFilter struct {
	Status       models.ProjectStatus
	PropertyType models.PropertyType
	MinPrice     *float64
	MaxPrice     *float64
	Offset       int
	Limit        int
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]models.Project, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Project{})
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		q = q.Where("status = ?", f.Status)
	}
	if f.PropertyType != "" {
		if !f.PropertyType.Valid() {
			return nil, 0, ErrInvalidPropertyType
		}
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.MinPrice != nil {
		q = q.Where("base_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("base_price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var projects []models.Project
	if err := q.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Search matches the query against title and location, case-insensitively.
func (s *Service) Search(ctx context.Context, query string, offset, limit int) ([]models.Project, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := s.DB.WithContext(ctx).Model(&models.Project{}).
		Where("lower(title) LIKE ? OR lower(location) LIKE ?", pattern, pattern)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var projects []models.Project
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Options returns id+title pairs of active projects for pickers.
func (s *Service) Options(ctx context.Context) ([]models.ProjectOption, error) {
	var options []models.ProjectOption
	err := s.DB.WithContext(ctx).Model(&models.Project{}).
		Where("is_active = ?", true).
		Order("title ASC").
		Select("id", "title").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

// UpdateInput carries a partial project update; nil fields are left as-is.
type UpdateInput struct {
	Title           *string
	Location        *string
	Description     *string
	LongDescription *string
	WebsiteURL      *string
	Status          *models.ProjectStatus
	PropertyType    *models.PropertyType
	BasePrice       *float64
	HasRentalIncome *bool

	PricingDetails *kvlist.List
	QuickInfo      *kvlist.List

	GalleryImages        *[]models.GalleryImage
	KeyHighlights        *[]string
	Features             *[]string
	InvestmentHighlights *[]string
	Amenities            *[]models.Amenity

	TotalUnits     *int
	AvailableUnits *int
	SoldUnits      *int
	ReservedUnits  *int

	ReraNumber         *string
	BuildingPermission *string

	IsActive *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrTitleRequired
		}
		project.Title = *in.Title
	}
	if in.Location != nil {
		if strings.TrimSpace(*in.Location) == "" {
			return nil, ErrLocationRequired
		}
		project.Location = *in.Location
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.LongDescription != nil {
		project.LongDescription = *in.LongDescription
	}
	if in.WebsiteURL != nil {
		project.WebsiteURL = *in.WebsiteURL
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		project.Status = *in.Status
	}
	if in.PropertyType != nil {
		if !in.PropertyType.Valid() {
			return nil, ErrInvalidPropertyType
		}
		project.PropertyType = *in.PropertyType
	}
	if in.BasePrice != nil {
		if *in.BasePrice < 0 {
			return nil, ErrNegativePrice
		}
		project.BasePrice = *in.BasePrice
	}
	if in.HasRentalIncome != nil {
		project.HasRentalIncome = *in.HasRentalIncome
	}
	if in.PricingDetails != nil {
		project.PricingDetails = *in.PricingDetails
	}
	if in.QuickInfo != nil {
		project.QuickInfo = *in.QuickInfo
	}
	if in.GalleryImages != nil {
		project.GalleryImages = normalizePrimary(*in.GalleryImages)
	}
	if in.KeyHighlights != nil {
		project.KeyHighlights = datatypes.NewJSONSlice(*in.KeyHighlights)
	}
	if in.Features != nil {
		project.Features = datatypes.NewJSONSlice(*in.Features)
	}
	if in.InvestmentHighlights != nil {
		project.InvestmentHighlights = datatypes.NewJSONSlice(*in.InvestmentHighlights)
	}
	if in.Amenities != nil {
		project.Amenities = datatypes.NewJSONSlice(*in.Amenities)
	}
	if in.TotalUnits != nil {
		project.TotalUnits = *in.TotalUnits
	}
	if in.AvailableUnits != nil {
		project.AvailableUnits = *in.AvailableUnits
	}
	if in.SoldUnits != nil {
		project.SoldUnits = *in.SoldUnits
	}
	if in.ReservedUnits != nil {
		project.ReservedUnits = *in.ReservedUnits
	}
	if project.TotalUnits < 0 || project.AvailableUnits < 0 || project.SoldUnits < 0 || project.ReservedUnits < 0 {
		return nil, ErrNegativeUnits
	}
	if in.ReraNumber != nil {
		project.ReraNumber = *in.ReraNumber
	}
	if in.BuildingPermission != nil {
		project.BuildingPermission = *in.BuildingPermission
	}
	if in.IsActive != nil {
		project.IsActive = *in.IsActive
	}

	if err := s.DB.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Deactivate soft-deletes a project and all its schemes in one transaction.
// The record stays readable; only is_active flips.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.InvestmentScheme{}).
			Where("project_id = ?", id).
			Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// normalizePrimary keeps the first primary image and clears the flag on
// the rest, so at most one image is ever primary.
func normalizePrimary(images []models.GalleryImage) datatypes.JSONSlice[models.GalleryImage] {
	out := make([]models.GalleryImage, len(images))
	copy(out, images)
	seen := false
	for i := range out {
		if out[i].IsPrimary {
			if seen {
				out[i].IsPrimary = false
			}
			seen = true
		}
	}
	return datatypes.NewJSONSlice(out)
}
