package schemes

import (
	"context"
	"errors"
	"time"

	"estates-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound              = errors.New("Scheme not found")
	ErrProjectNotFound       = errors.New("Project not found")
	ErrNameRequired          = errors.New("Scheme name is required")
	ErrInvalidSchemeType     = errors.New("Invalid scheme type")
	ErrSchemeTypeImmutable   = errors.New("scheme_type cannot be changed after creation")
	ErrBalanceDaysRequired   = errors.New("balance_payment_days is required for single_payment schemes")
	ErrInstallmentsRequired  = errors.New("total_installments and monthly_installment_amount are required for installment schemes")
	ErrBalanceDaysForbidden  = errors.New("balance_payment_days is not allowed for installment schemes")
	ErrInstallmentsForbidden = errors.New("installment fields are not allowed for single_payment schemes")
	ErrRentalNotCommercial   = errors.New("rental_start_month is only allowed for commercial projects")
	ErrStartDateRequired     = errors.New("start_date is required")
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	ProjectID                uuid.UUID
	SchemeName               string
	SchemeType               models.SchemeType
	AreaSqft                 float64
	BookingAdvance           float64
	BalancePaymentDays       *int
	TotalInstallments        *int
	MonthlyInstallmentAmount *float64
	RentalStartMonth         *int
	StartDate                time.Time
	EndDate                  *time.Time
	IsActive                 *bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.InvestmentScheme, error) {
	if in.SchemeName == "" {
		return nil, ErrNameRequired
	}
	if !in.SchemeType.Valid() {
		return nil, ErrInvalidSchemeType
	}
	if in.StartDate.IsZero() {
		return nil, ErrStartDateRequired
	}

	var project models.Project
	if err := s.DB.WithContext(ctx).Where("id = ?", in.ProjectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	scheme := &models.InvestmentScheme{
		ProjectID:                in.ProjectID,
		SchemeName:               in.SchemeName,
		SchemeType:               in.SchemeType,
		AreaSqft:                 in.AreaSqft,
		BookingAdvance:           in.BookingAdvance,
		BalancePaymentDays:       in.BalancePaymentDays,
		TotalInstallments:        in.TotalInstallments,
		MonthlyInstallmentAmount: in.MonthlyInstallmentAmount,
		RentalStartMonth:         in.RentalStartMonth,
		StartDate:                in.StartDate,
		EndDate:                  in.EndDate,
		IsActive:                 active,
	}
	if err := validateScheme(scheme, &project); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(scheme).Error; err != nil {
		return nil, err
	}
	return scheme, nil
}

// ListFilter narrows the scheme listing; nil/empty fields mean "no filter".
type ListFilter struct {
	ProjectID  *uuid.UUID
	SchemeType models.SchemeType
	IsActive   *bool
	Offset     int
	Limit      int
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]models.InvestmentScheme, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.InvestmentScheme{})
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	if f.SchemeType != "" {
		if !f.SchemeType.Valid() {
			return nil, 0, ErrInvalidSchemeType
		}
		q = q.Where("scheme_type = ?", f.SchemeType)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var schemes []models.InvestmentScheme
	if err := q.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&schemes).Error; err != nil {
		return nil, 0, err
	}
	return schemes, total, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.InvestmentScheme, error) {
	var scheme models.InvestmentScheme
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&scheme).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &scheme, nil
}

// UpdateInput carries a partial scheme update; nil fields are left as-is.
// SchemeType is present only so a mismatch can be rejected explicitly.
type UpdateInput struct {
	ProjectID                *uuid.UUID
	SchemeName               *string
	SchemeType               *models.SchemeType
	AreaSqft                 *float64
	BookingAdvance           *float64
	BalancePaymentDays       *int
	TotalInstallments        *int
	MonthlyInstallmentAmount *float64
	RentalStartMonth         *int
	StartDate                *time.Time
	EndDate                  *time.Time
	IsActive                 *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.InvestmentScheme, error) {
	scheme, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SchemeType != nil && *in.SchemeType != scheme.SchemeType {
		return nil, ErrSchemeTypeImmutable
	}
	if in.ProjectID != nil {
		scheme.ProjectID = *in.ProjectID
	}
	if in.SchemeName != nil {
		if *in.SchemeName == "" {
			return nil, ErrNameRequired
		}
		scheme.SchemeName = *in.SchemeName
	}
	if in.AreaSqft != nil {
		scheme.AreaSqft = *in.AreaSqft
	}
	if in.BookingAdvance != nil {
		scheme.BookingAdvance = *in.BookingAdvance
	}
	if in.BalancePaymentDays != nil {
		scheme.BalancePaymentDays = in.BalancePaymentDays
	}
	if in.TotalInstallments != nil {
		scheme.TotalInstallments = in.TotalInstallments
	}
	if in.MonthlyInstallmentAmount != nil {
		scheme.MonthlyInstallmentAmount = in.MonthlyInstallmentAmount
	}
	if in.RentalStartMonth != nil {
		scheme.RentalStartMonth = in.RentalStartMonth
	}
	if in.StartDate != nil {
		scheme.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		scheme.EndDate = in.EndDate
	}
	if in.IsActive != nil {
		scheme.IsActive = *in.IsActive
	}

	var project models.Project
	if err := s.DB.WithContext(ctx).Where("id = ?", scheme.ProjectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if err := validateScheme(scheme, &project); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Save(scheme).Error; err != nil {
		return nil, err
	}
	return scheme, nil
}

// Deactivate soft-deletes a scheme: is_active flips, the row stays.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*models.InvestmentScheme, error) {
	scheme, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(scheme).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	return scheme, nil
}

// validateScheme enforces the cross-field and cross-entity invariants:
// exactly one type-specific field group, and rental_start_month only on
// schemes of commercial projects.
func validateScheme(scheme *models.InvestmentScheme, project *models.Project) error {
	switch scheme.SchemeType {
	case models.SchemeSinglePayment:
		if scheme.BalancePaymentDays == nil || *scheme.BalancePaymentDays <= 0 {
			return ErrBalanceDaysRequired
		}
		if scheme.TotalInstallments != nil || scheme.MonthlyInstallmentAmount != nil {
			return ErrInstallmentsForbidden
		}
	case models.SchemeInstallment:
		if scheme.TotalInstallments == nil || *scheme.TotalInstallments <= 0 ||
			scheme.MonthlyInstallmentAmount == nil || *scheme.MonthlyInstallmentAmount <= 0 {
			return ErrInstallmentsRequired
		}
		if scheme.BalancePaymentDays != nil {
			return ErrBalanceDaysForbidden
		}
	default:
		return ErrInvalidSchemeType
	}
	if scheme.RentalStartMonth != nil && project.PropertyType != models.PropertyCommercial {
		return ErrRentalNotCommercial
	}
	return nil
}
