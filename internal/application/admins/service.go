package admins

import (
	"context"
	"errors"

	"estates-backend/internal/models"
	"estates-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidCredentials    = errors.New("Invalid email or password")
	ErrInvalidEmail          = errors.New("Invalid email address")
	ErrInvalidName           = errors.New("Name can only contain letters, spaces, hyphens and apostrophes")
	ErrWeakPassword          = errors.New("Password must be at least 8 characters and include a letter, a number and a special character")
	ErrEmailTaken            = errors.New("Email already in use")
	ErrNotFound              = errors.New("Admin not found")
)

type Service struct {
	DB *gorm.DB
}

// Login verifies credentials and returns the matching admin.
// Lookup misses and bad passwords collapse into ErrInvalidCredentials so
// the response does not reveal which part was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Admin, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Admin, error) {
	if in.Email == "" || in.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if in.Name != "" && !validation.IsValidName(in.Name) {
		return nil, ErrInvalidName
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Admin{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Name: in.Name, Email: in.Email, PasswordHash: string(hash)}
	if err := s.DB.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// List returns one page of admins ordered by creation time, plus the total count.
func (s *Service) List(ctx context.Context, offset, limit int) ([]models.Admin, int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Admin{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var admins []models.Admin
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Offset(offset).Limit(limit).Find(&admins).Error; err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// UpdateInput carries a partial admin update. A nil Password leaves the
// stored hash untouched.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Admin, error) {
	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if !validation.IsValidName(*in.Name) {
			return nil, ErrInvalidName
		}
		admin.Name = *in.Name
	}
	if in.Email != nil && *in.Email != admin.Email {
		if !validation.IsValidEmail(*in.Email) {
			return nil, ErrInvalidEmail
		}
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Admin{}).Where("email = ? AND id <> ?", *in.Email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		admin.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		if !validation.IsValidPassword(*in.Password) {
			return nil, ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = string(hash)
	}
	if err := s.DB.WithContext(ctx).Save(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Admin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DashboardCounts is the summary returned by GET /admin/dashboard.
type DashboardCounts struct {
	TotalAdmins   int64 `json:"total_admins"`
	TotalProjects int64 `json:"total_projects"`
	TotalSchemes  int64 `json:"total_schemes"`
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	var counts DashboardCounts
	if err := s.DB.WithContext(ctx).Model(&models.Admin{}).Count(&counts.TotalAdmins).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&models.Project{}).Count(&counts.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&models.InvestmentScheme{}).Count(&counts.TotalSchemes).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
