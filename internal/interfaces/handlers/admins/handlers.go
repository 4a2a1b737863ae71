package admins

import (
	"errors"

	adminsvc "estates-backend/internal/application/admins"
	"estates-backend/internal/middleware"
	"estates-backend/internal/pkg/pagination"
	"estates-backend/internal/pkg/response"
	"estates-backend/internal/tokens"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles admin endpoints with their dependencies.
type Handlers struct {
	Service *adminsvc.Service
	Tokens  *tokens.Store
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /admin/login verifies credentials, issues a bearer token, and
// returns { token, admin } in the standard envelope.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest)
	}

	admin, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, adminsvc.ErrEmailPasswordRequired):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case errors.Is(err, adminsvc.ErrInvalidCredentials):
			return response.Error(c, err.Error(), fiber.StatusUnauthorized)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
		}
	}

	token, err := h.Tokens.Issue(c.Context(), tokens.Session{
		AdminID: admin.ID.String(),
		Name:    admin.Name,
		Email:   admin.Email,
	})
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token": token,
		"admin": admin,
	})
}

type createAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAdmin POST /admin/
func (h *Handlers) CreateAdmin(c *fiber.Ctx) error {
	var req createAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	admin, err := h.Service.Create(c.Context(), adminsvc.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return adminError(c, err)
	}
	return response.Created(c, "Admin created successfully", admin)
}

// ListAdmins GET /admin/?page=&limit=
func (h *Handlers) ListAdmins(c *fiber.Ctx) error {
	p := pagination.Parse(c)
	admins, total, err := h.Service.List(c.Context(), p.Offset(), p.Limit)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return c.JSON(p.Envelope("Admins fetched successfully", admins, total))
}

type updateAdminRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateAdmin PUT /admin/:id applies a partial update. A null or absent
// password keeps the current one.
func (h *Handlers) UpdateAdmin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid admin id", fiber.StatusBadRequest)
	}
	var req updateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	admin, err := h.Service.Update(c.Context(), id, adminsvc.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return adminError(c, err)
	}
	return response.Success(c, "Admin updated successfully", admin)
}

// DeleteAdmin DELETE /admin/:id
func (h *Handlers) DeleteAdmin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid admin id", fiber.StatusBadRequest)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return adminError(c, err)
	}
	return response.Success(c, "Admin deleted successfully", nil)
}

// Profile GET /admin/profile/me returns the identity behind the bearer token,
// re-read from the database.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	sess := middleware.SessionAdmin(c)
	if sess == nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	id, err := uuid.Parse(sess.AdminID)
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	admin, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, adminsvc.ErrNotFound) {
			return response.Unauthorized(c, "Not authenticated")
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Profile fetched successfully", admin)
}

// Dashboard GET /admin/dashboard returns summary counts.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	counts, err := h.Service.Dashboard(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Dashboard fetched successfully", counts)
}

func adminError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, adminsvc.ErrEmailPasswordRequired),
		errors.Is(err, adminsvc.ErrInvalidEmail),
		errors.Is(err, adminsvc.ErrInvalidName),
		errors.Is(err, adminsvc.ErrWeakPassword):
		return response.Error(c, err.Error(), fiber.StatusBadRequest)
	case errors.Is(err, adminsvc.ErrEmailTaken):
		return response.Error(c, err.Error(), fiber.StatusConflict)
	case errors.Is(err, adminsvc.ErrNotFound):
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
}
