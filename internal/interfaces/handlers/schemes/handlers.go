package schemes

import (
	"errors"
	"strconv"
	"time"

	schemesvc "estates-backend/internal/application/schemes"
	"estates-backend/internal/models"
	"estates-backend/internal/pkg/pagination"
	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *schemesvc.Service
}

type createSchemeRequest struct {
	ProjectID                string            `json:"project_id"`
	SchemeName               string            `json:"scheme_name"`
	SchemeType               models.SchemeType `json:"scheme_type"`
	AreaSqft                 float64           `json:"area_sqft"`
	BookingAdvance           float64           `json:"booking_advance"`
	BalancePaymentDays       *int              `json:"balance_payment_days"`
	TotalInstallments        *int              `json:"total_installments"`
	MonthlyInstallmentAmount *float64          `json:"monthly_installment_amount"`
	RentalStartMonth         *int              `json:"rental_start_month"`
	StartDate                string            `json:"start_date"`
	EndDate                  string            `json:"end_date"`
	IsActive                 *bool             `json:"is_active"`
}

// CreateScheme POST /investment-schemes/
func (h *Handlers) CreateScheme(c *fiber.Ctx) error {
	var req createSchemeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return response.Error(c, "Invalid project_id", fiber.StatusBadRequest)
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return response.Error(c, "Invalid start_date", fiber.StatusBadRequest)
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return response.Error(c, "Invalid end_date", fiber.StatusBadRequest)
	}

	scheme, err := h.Service.Create(c.Context(), schemesvc.CreateInput{
		ProjectID:                projectID,
		SchemeName:               req.SchemeName,
		SchemeType:               req.SchemeType,
		AreaSqft:                 req.AreaSqft,
		BookingAdvance:           req.BookingAdvance,
		BalancePaymentDays:       req.BalancePaymentDays,
		TotalInstallments:        req.TotalInstallments,
		MonthlyInstallmentAmount: req.MonthlyInstallmentAmount,
		RentalStartMonth:         req.RentalStartMonth,
		StartDate:                startDate,
		EndDate:                  endDate,
		IsActive:                 req.IsActive,
	})
	if err != nil {
		return schemeError(c, err)
	}
	return response.Created(c, "Scheme created successfully", scheme)
}

// ListSchemes GET /investment-schemes/?page=&limit=&project_id=&scheme_type=&is_active=
func (h *Handlers) ListSchemes(c *fiber.Ctx) error {
	p := pagination.Parse(c)
	filter := schemesvc.ListFilter{
		SchemeType: models.SchemeType(c.Query("scheme_type")),
		Offset:     p.Offset(),
		Limit:      p.Limit,
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.Error(c, "Invalid project_id", fiber.StatusBadRequest)
		}
		filter.ProjectID = &id
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return response.Error(c, "Invalid is_active", fiber.StatusBadRequest)
		}
		filter.IsActive = &active
	}

	schemes, total, err := h.Service.List(c.Context(), filter)
	if err != nil {
		return schemeError(c, err)
	}
	return c.JSON(p.Envelope("Schemes fetched successfully", schemes, total))
}

// ListProjectSchemes GET /investment-schemes/project/:project_id?page=&limit=
func (h *Handlers) ListProjectSchemes(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return response.Error(c, "Invalid project_id", fiber.StatusBadRequest)
	}
	p := pagination.Parse(c)
	schemes, total, err := h.Service.List(c.Context(), schemesvc.ListFilter{
		ProjectID: &projectID,
		Offset:    p.Offset(),
		Limit:     p.Limit,
	})
	if err != nil {
		return schemeError(c, err)
	}
	return c.JSON(p.Envelope("Schemes fetched successfully", schemes, total))
}

type updateSchemeRequest struct {
	ProjectID                *string            `json:"project_id"`
	SchemeName               *string            `json:"scheme_name"`
	SchemeType               *models.SchemeType `json:"scheme_type"`
	AreaSqft                 *float64           `json:"area_sqft"`
	BookingAdvance           *float64           `json:"booking_advance"`
	BalancePaymentDays       *int               `json:"balance_payment_days"`
	TotalInstallments        *int               `json:"total_installments"`
	MonthlyInstallmentAmount *float64           `json:"monthly_installment_amount"`
	RentalStartMonth         *int               `json:"rental_start_month"`
	StartDate                *string            `json:"start_date"`
	EndDate                  *string            `json:"end_date"`
	IsActive                 *bool              `json:"is_active"`
}

// UpdateScheme PUT /investment-schemes/:id applies a partial update. A scheme_type
// differing from the stored one is rejected.
func (h *Handlers) UpdateScheme(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid scheme id", fiber.StatusBadRequest)
	}
	var req updateSchemeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	in := schemesvc.UpdateInput{
		SchemeName:               req.SchemeName,
		SchemeType:               req.SchemeType,
		AreaSqft:                 req.AreaSqft,
		BookingAdvance:           req.BookingAdvance,
		BalancePaymentDays:       req.BalancePaymentDays,
		TotalInstallments:        req.TotalInstallments,
		MonthlyInstallmentAmount: req.MonthlyInstallmentAmount,
		RentalStartMonth:         req.RentalStartMonth,
		IsActive:                 req.IsActive,
	}
	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return response.Error(c, "Invalid project_id", fiber.StatusBadRequest)
		}
		in.ProjectID = &projectID
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return response.Error(c, "Invalid start_date", fiber.StatusBadRequest)
		}
		in.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalDate(*req.EndDate)
		if err != nil {
			return response.Error(c, "Invalid end_date", fiber.StatusBadRequest)
		}
		in.EndDate = endDate
	}

	scheme, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		return schemeError(c, err)
	}
	return response.Success(c, "Scheme updated successfully", scheme)
}

// DeleteScheme DELETE /investment-schemes/:id soft-deletes the scheme.
func (h *Handlers) DeleteScheme(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid scheme id", fiber.StatusBadRequest)
	}
	scheme, err := h.Service.Deactivate(c.Context(), id)
	if err != nil {
		return schemeError(c, err)
	}
	return response.Success(c, "Scheme deleted successfully", scheme)
}

func schemeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, schemesvc.ErrNotFound), errors.Is(err, schemesvc.ErrProjectNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	case errors.Is(err, schemesvc.ErrNameRequired),
		errors.Is(err, schemesvc.ErrInvalidSchemeType),
		errors.Is(err, schemesvc.ErrSchemeTypeImmutable),
		errors.Is(err, schemesvc.ErrBalanceDaysRequired),
		errors.Is(err, schemesvc.ErrInstallmentsRequired),
		errors.Is(err, schemesvc.ErrBalanceDaysForbidden),
		errors.Is(err, schemesvc.ErrInstallmentsForbidden),
		errors.Is(err, schemesvc.ErrRentalNotCommercial),
		errors.Is(err, schemesvc.ErrStartDateRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
}

// parseDate accepts plain dates ("2024-01-01") and RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
