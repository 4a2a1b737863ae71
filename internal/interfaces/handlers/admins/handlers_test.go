package admins

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	adminsvc "estates-backend/internal/application/admins"
	"estates-backend/internal/middleware"
	"estates-backend/internal/models"
	"estates-backend/internal/tokens"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdminsTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.Project{}, &models.InvestmentScheme{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	h := &Handlers{
		Service: &adminsvc.Service{DB: db},
		Tokens:  tokens.NewStore(rdb, time.Hour),
	}
	return h, db
}

func createTestAdmin(t *testing.T, h *Handlers, email string) *models.Admin {
	admin, err := h.Service.Create(context.Background(), adminsvc.CreateInput{
		Name:     "Test Admin",
		Email:    email,
		Password: "Password1!",
	})
	require.NoError(t, err)
	return admin
}

func postJSON(app *fiber.App, path string, body interface{}) (map[string]interface{}, int) {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return out, resp.StatusCode
}

func TestLogin_MissingCredentials(t *testing.T) {
	h, _ := setupAdminsTest(t)
	app := fiber.New()
	app.Post("/admin/login", h.Login)

	out, status := postJSON(app, "/admin/login", map[string]string{"email": "a@b.com"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Email and password are required", out["message"])
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := setupAdminsTest(t)
	createTestAdmin(t, h, "admin@example.com")
	app := fiber.New()
	app.Post("/admin/login", h.Login)

	out, status := postJSON(app, "/admin/login", map[string]string{
		"email": "admin@example.com", "password": "wrongpass1!",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", out["message"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _ := setupAdminsTest(t)
	app := fiber.New()
	app.Post("/admin/login", h.Login)

	out, status := postJSON(app, "/admin/login", map[string]string{
		"email": "nobody@example.com", "password": "Password1!",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", out["message"])
}

func TestLogin_Success(t *testing.T) {
	h, _ := setupAdminsTest(t)
	createTestAdmin(t, h, "admin@example.com")
	app := fiber.New()
	app.Post("/admin/login", h.Login)

	out, status := postJSON(app, "/admin/login", map[string]string{
		"email": "admin@example.com", "password": "Password1!",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Login successful", out["message"])

	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)
	admin, _ := data["admin"].(map[string]interface{})
	require.NotNil(t, admin)
	assert.Equal(t, "admin@example.com", admin["email"])
	assert.NotContains(t, admin, "password_hash")

	sess, err := h.Tokens.Lookup(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", sess.Email)
}

func TestCreateAdmin_WeakPassword(t *testing.T) {
	h, _ := setupAdminsTest(t)
	app := fiber.New()
	app.Post("/admin/", h.CreateAdmin)

	out, status := postJSON(app, "/admin/", map[string]string{
		"name": "New Admin", "email": "new@example.com", "password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, out["success"])
}

func TestCreateAdmin_DuplicateEmail(t *testing.T) {
	h, _ := setupAdminsTest(t)
	createTestAdmin(t, h, "dup@example.com")
	app := fiber.New()
	app.Post("/admin/", h.CreateAdmin)

	out, status := postJSON(app, "/admin/", map[string]string{
		"name": "Other Admin", "email": "dup@example.com", "password": "Password1!",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Email already in use", out["message"])
}

func TestCreateAdmin_Success(t *testing.T) {
	h, _ := setupAdminsTest(t)
	app := fiber.New()
	app.Post("/admin/", h.CreateAdmin)

	out, status := postJSON(app, "/admin/", map[string]string{
		"name": "New Admin", "email": "new@example.com", "password": "Password1!",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Admin created successfully", out["message"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, "new@example.com", data["email"])
	assert.NotEmpty(t, data["id"])
}

func TestListAdmins_PagesAreDisjoint(t *testing.T) {
	h, _ := setupAdminsTest(t)
	for i := 0; i < 3; i++ {
		createTestAdmin(t, h, fmt.Sprintf("admin%d@example.com", i))
	}
	app := fiber.New()
	app.Get("/admin/", h.ListAdmins)

	fetch := func(page int) map[string]interface{} {
		req := httptest.NewRequest("GET", fmt.Sprintf("/admin/?page=%d&limit=2", page), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var out map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&out)
		return out
	}

	first := fetch(1)
	assert.Equal(t, float64(3), first["total_items"])
	assert.Equal(t, float64(2), first["total_pages"])
	assert.Equal(t, false, first["is_previous"])
	assert.Equal(t, true, first["is_next"])

	second := fetch(2)
	assert.Equal(t, true, second["is_previous"])
	assert.Equal(t, false, second["is_next"])

	ids := map[string]bool{}
	for _, page := range []map[string]interface{}{first, second} {
		items, _ := page["data"].([]interface{})
		for _, item := range items {
			m, _ := item.(map[string]interface{})
			id, _ := m["id"].(string)
			assert.False(t, ids[id], "admin %s appeared on two pages", id)
			ids[id] = true
		}
	}
	assert.Len(t, ids, 3)
}

func TestUpdateAdmin_InvalidID(t *testing.T) {
	h, _ := setupAdminsTest(t)
	app := fiber.New()
	app.Put("/admin/:id", h.UpdateAdmin)

	b, _ := json.Marshal(map[string]string{"name": "Renamed"})
	req := httptest.NewRequest("PUT", "/admin/not-a-uuid", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateAdmin_OmittedPasswordKeptUsable(t *testing.T) {
	h, _ := setupAdminsTest(t)
	admin := createTestAdmin(t, h, "keep@example.com")
	app := fiber.New()
	app.Put("/admin/:id", h.UpdateAdmin)
	app.Post("/admin/login", h.Login)

	b, _ := json.Marshal(map[string]string{"name": "Renamed Admin"})
	req := httptest.NewRequest("PUT", "/admin/"+admin.ID.String(), bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// the old password still logs in
	_, status := postJSON(app, "/admin/login", map[string]string{
		"email": "keep@example.com", "password": "Password1!",
	})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestDeleteAdmin_NotFound(t *testing.T) {
	h, _ := setupAdminsTest(t)
	app := fiber.New()
	app.Delete("/admin/:id", h.DeleteAdmin)

	req := httptest.NewRequest("DELETE", "/admin/2e9dba6c-3b6d-4c57-9cfa-fd9aa60cba1f", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProfile_NoSession(t *testing.T) {
	h, _ := setupAdminsTest(t)
	app := fiber.New()
	app.Get("/admin/profile/me", middleware.RequireAuth(h.Tokens), h.Profile)

	req := httptest.NewRequest("GET", "/admin/profile/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProfile_WithBearerToken(t *testing.T) {
	h, _ := setupAdminsTest(t)
	admin := createTestAdmin(t, h, "me@example.com")
	token, err := h.Tokens.Issue(context.Background(), tokens.Session{
		AdminID: admin.ID.String(),
		Name:    admin.Name,
		Email:   admin.Email,
	})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/admin/profile/me", middleware.RequireAuth(h.Tokens), h.Profile)

	req := httptest.NewRequest("GET", "/admin/profile/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, "me@example.com", data["email"])
}

func TestDashboard_Counts(t *testing.T) {
	h, db := setupAdminsTest(t)
	createTestAdmin(t, h, "one@example.com")
	createTestAdmin(t, h, "two@example.com")
	project := &models.Project{Title: "Towers", Location: "City", Status: models.StatusAvailable, PropertyType: models.PropertyResidential, IsActive: true}
	require.NoError(t, db.Create(project).Error)

	app := fiber.New()
	app.Get("/admin/dashboard", h.Dashboard)

	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, float64(2), data["total_admins"])
	assert.Equal(t, float64(1), data["total_projects"])
	assert.Equal(t, float64(0), data["total_schemes"])
}
