package adminclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, NewMemoryTokenStore())
}

func TestLogin_PersistsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "Password1!" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false, "message": "Invalid email or password",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "message": "Login successful",
			"data": map[string]interface{}{
				"token": "tok-123",
				"admin": map[string]string{"id": "a1", "email": req["email"]},
			},
		})
	})
	c := newTestClient(t, mux)

	result, err := c.Login(context.Background(), "admin@example.com", "Password1!")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "admin@example.com", result.Admin.Email)

	token, err := c.Tokens.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestLogin_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false, "message": "Invalid email or password",
		})
	})
	c := newTestClient(t, mux)

	_, err := c.Login(context.Background(), "admin@example.com", "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)

	token, err := c.Tokens.Token()
	require.NoError(t, err)
	assert.Empty(t, token, "failed login must not store a token")
}

func TestRequests_CarryBearerToken(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/profile/me", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "data": map[string]string{"id": "a1", "email": "me@example.com"},
		})
	})
	c := newTestClient(t, mux)
	require.NoError(t, c.Tokens.SetToken("tok-456"))

	admin, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", admin.Email)
	assert.Equal(t, "Bearer tok-456", gotAuth)
}

func TestErrorResponse_UsesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "Project not found",
		})
	})
	c := newTestClient(t, mux)

	_, err := c.GetProject(context.Background(), "p1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Project not found", apiErr.Error())
}

func TestErrorResponse_FallbackMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/p1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream exploded")
	})
	c := newTestClient(t, mux)

	_, err := c.GetProject(context.Background(), "p1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "request failed with status 502", apiErr.Error())
}

func TestCreateScheme_SinglePaymentOmitsInstallmentFields(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /investment-schemes/", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true, "data": map[string]interface{}{"id": "s1", "scheme_type": "single_payment"},
		})
	})
	c := newTestClient(t, mux)

	days := 30
	_, err := c.CreateScheme(context.Background(), CreateSchemeRequest{
		ProjectID:          "p1",
		SchemeName:         "Full payment",
		SchemeType:         "single_payment",
		BalancePaymentDays: &days,
		StartDate:          "2025-01-01",
	})
	require.NoError(t, err)
	require.NotNil(t, gotBody)
	assert.NotContains(t, gotBody, "total_installments")
	assert.NotContains(t, gotBody, "monthly_installment_amount")
	assert.NotContains(t, gotBody, "rental_start_month")
	assert.NotContains(t, gotBody, "end_date")
	assert.Equal(t, float64(30), gotBody["balance_payment_days"])
}

func TestProjectsQuery_OmitsUnsetFields(t *testing.T) {
	v := ProjectsQuery{}.Values()
	assert.Empty(t, v.Encode())

	min := 150.0
	v = ProjectsQuery{Page: 2, Limit: 20, PropertyType: "commercial", MinPrice: &min}.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "20", v.Get("limit"))
	assert.Equal(t, "commercial", v.Get("property_type"))
	assert.Equal(t, "150", v.Get("min_price"))
	assert.False(t, v.Has("max_price"))
	assert.False(t, v.Has("status_filter"))
}

func TestSchemesQuery_OmitsUnsetFields(t *testing.T) {
	v := SchemesQuery{}.Values()
	assert.Empty(t, v.Encode())

	active := false
	v = SchemesQuery{ProjectID: "p1", IsActive: &active}.Values()
	assert.Equal(t, "p1", v.Get("project_id"))
	assert.Equal(t, "false", v.Get("is_active"))
	assert.False(t, v.Has("scheme_type"))
}

func TestListProjects_DecodesPageEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "message": "Projects fetched successfully",
			"data":        []map[string]interface{}{{"id": "p1", "title": "Towers"}},
			"page":        1, "limit": 10, "total_pages": 3, "total_items": 25,
			"is_previous": false, "is_next": true,
		})
	})
	c := newTestClient(t, mux)

	page, err := c.ListProjects(context.Background(), ProjectsQuery{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Towers", page.Items[0].Title)
	assert.Equal(t, int64(25), page.TotalItems)
	assert.True(t, page.IsNext)
	assert.False(t, page.IsPrevious)
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := t.TempDir() + "/token"
	store := NewFileTokenStore(path)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SetToken("tok-789"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-789", token)

	require.NoError(t, store.Clear())
	token, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	// clearing twice is fine
	require.NoError(t, store.Clear())
}
