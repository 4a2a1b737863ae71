package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchemeType selects which payment-specific field group applies.
// Immutable after creation.
type SchemeType string

const (
	SchemeSinglePayment SchemeType = "single_payment"
	SchemeInstallment   SchemeType = "installment"
)

func (s SchemeType) Valid() bool {
	return s == SchemeSinglePayment || s == SchemeInstallment
}

// InvestmentScheme is a payment plan scoped to one project. Exactly one of
// the type-specific field groups is populated: balance_payment_days for
// single_payment, total_installments + monthly_installment_amount for
// installment. rental_start_month is only accepted when the owning project
// is commercial.
type InvestmentScheme struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProjectID  uuid.UUID  `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	SchemeName string     `gorm:"column:scheme_name;not null" json:"scheme_name"`
	SchemeType SchemeType `gorm:"column:scheme_type;type:varchar(20);not null" json:"scheme_type"`

	AreaSqft       float64 `gorm:"column:area_sqft;type:decimal(12,2);not null" json:"area_sqft"`
	BookingAdvance float64 `gorm:"column:booking_advance;type:decimal(18,2);not null" json:"booking_advance"`

	BalancePaymentDays       *int     `gorm:"column:balance_payment_days" json:"balance_payment_days,omitempty"`
	TotalInstallments        *int     `gorm:"column:total_installments" json:"total_installments,omitempty"`
	MonthlyInstallmentAmount *float64 `gorm:"column:monthly_installment_amount;type:decimal(18,2)" json:"monthly_installment_amount,omitempty"`
	RentalStartMonth         *int     `gorm:"column:rental_start_month" json:"rental_start_month,omitempty"`

	StartDate time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`

	IsActive  bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *InvestmentScheme) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
