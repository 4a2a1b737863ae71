// Package adminclient is a typed Go client for the estates admin API. It
// wraps every endpoint, keeps the bearer token in a pluggable store, and
// offers in-memory auth and collection state on top (AuthState, AppState).
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is a non-success response from the server. Message carries the
// server's own wording when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client talks to the admin API. The zero HTTPClient falls back to a
// 30 second default; Tokens falls back to an in-memory store.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
}

func New(baseURL string, store TokenStore) *Client {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Tokens:     store,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type pageEnvelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	TotalItems int64           `json:"total_items"`
	IsPrevious bool            `json:"is_previous"`
	IsNext     bool            `json:"is_next"`
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// do sends one request and returns the raw response body. Any status
// outside 2xx, and any success:false body, comes back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Tokens != nil {
		token, err := c.Tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("reading token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Message
		}
		return nil, apiErr
	}
	return raw, nil
}

// request decodes the envelope's data payload into out (skipped when out
// is nil).
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !env.Success {
		return &APIError{StatusCode: http.StatusOK, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func requestPage[T any](ctx context.Context, c *Client, path string, query url.Values) (Page[T], error) {
	var page Page[T]
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return page, err
	}
	var env pageEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return page, fmt.Errorf("decoding response: %w", err)
	}
	if !env.Success {
		return page, &APIError{StatusCode: http.StatusOK, Message: env.Message}
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &page.Items); err != nil {
			return page, err
		}
	}
	page.Page = env.Page
	page.Limit = env.Limit
	page.TotalPages = env.TotalPages
	page.TotalItems = env.TotalItems
	page.IsPrevious = env.IsPrevious
	page.IsNext = env.IsNext
	return page, nil
}

// Login authenticates and persists the returned token in the token store.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.request(ctx, http.MethodPost, "/admin/login", nil, body, &result); err != nil {
		return nil, err
	}
	if err := c.Tokens.SetToken(result.Token); err != nil {
		return nil, fmt.Errorf("persisting token: %w", err)
	}
	return &result, nil
}

func (c *Client) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*Admin, error) {
	var admin Admin
	if err := c.request(ctx, http.MethodPost, "/admin/", nil, req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (c *Client) ListAdmins(ctx context.Context, page, limit int) (Page[Admin], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return requestPage[Admin](ctx, c, "/admin/", q)
}

func (c *Client) UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) (*Admin, error) {
	var admin Admin
	if err := c.request(ctx, http.MethodPut, "/admin/"+id, nil, req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (c *Client) DeleteAdmin(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/admin/"+id, nil, nil, nil)
}

// Profile returns the admin bound to the current token.
func (c *Client) Profile(ctx context.Context) (*Admin, error) {
	var admin Admin
	if err := c.request(ctx, http.MethodGet, "/admin/profile/me", nil, nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (c *Client) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	var counts DashboardCounts
	if err := c.request(ctx, http.MethodGet, "/admin/dashboard", nil, nil, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// ProjectsQuery narrows a project listing. Zero-valued fields are omitted
// from the query string entirely, so an unset price bound never reads as 0.
type ProjectsQuery struct {
	Page         int
	Limit        int
	PropertyType string
	StatusFilter string
	MinPrice     *float64
	MaxPrice     *float64
}

func (q ProjectsQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.PropertyType != "" {
		v.Set("property_type", q.PropertyType)
	}
	if q.StatusFilter != "" {
		v.Set("status_filter", q.StatusFilter)
	}
	if q.MinPrice != nil {
		v.Set("min_price", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("max_price", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	return v
}

func (c *Client) ListProjects(ctx context.Context, q ProjectsQuery) (Page[Project], error) {
	return requestPage[Project](ctx, c, "/projects/", q.Values())
}

func (c *Client) SearchProjects(ctx context.Context, query string, page, limit int) (Page[Project], error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return requestPage[Project](ctx, c, "/projects/search/"+url.PathEscape(query), v)
}

func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodGet, "/projects/"+id, nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) ProjectOptions(ctx context.Context) ([]ProjectOption, error) {
	var options []ProjectOption
	if err := c.request(ctx, http.MethodGet, "/projects/options", nil, nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodPost, "/projects/", nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodPut, "/projects/"+id, nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deactivates a project server-side and returns the updated
// record. The project's schemes are deactivated along with it.
func (c *Client) DeleteProject(ctx context.Context, id string) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodDelete, "/projects/"+id, nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// SchemesQuery narrows a scheme listing. Zero-valued fields are omitted.
type SchemesQuery struct {
	Page       int
	Limit      int
	ProjectID  string
	SchemeType string
	IsActive   *bool
}

func (q SchemesQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.ProjectID != "" {
		v.Set("project_id", q.ProjectID)
	}
	if q.SchemeType != "" {
		v.Set("scheme_type", q.SchemeType)
	}
	if q.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*q.IsActive))
	}
	return v
}

func (c *Client) ListSchemes(ctx context.Context, q SchemesQuery) (Page[InvestmentScheme], error) {
	return requestPage[InvestmentScheme](ctx, c, "/investment-schemes/", q.Values())
}

func (c *Client) SchemesForProject(ctx context.Context, projectID string, page, limit int) (Page[InvestmentScheme], error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return requestPage[InvestmentScheme](ctx, c, "/investment-schemes/project/"+projectID, v)
}

func (c *Client) CreateScheme(ctx context.Context, req CreateSchemeRequest) (*InvestmentScheme, error) {
	var scheme InvestmentScheme
	if err := c.request(ctx, http.MethodPost, "/investment-schemes/", nil, req, &scheme); err != nil {
		return nil, err
	}
	return &scheme, nil
}

func (c *Client) UpdateScheme(ctx context.Context, id string, req UpdateSchemeRequest) (*InvestmentScheme, error) {
	var scheme InvestmentScheme
	if err := c.request(ctx, http.MethodPut, "/investment-schemes/"+id, nil, req, &scheme); err != nil {
		return nil, err
	}
	return &scheme, nil
}

// DeleteScheme deactivates a scheme server-side and returns the updated
// record.
func (c *Client) DeleteScheme(ctx context.Context, id string) (*InvestmentScheme, error) {
	var scheme InvestmentScheme
	if err := c.request(ctx, http.MethodDelete, "/investment-schemes/"+id, nil, nil, &scheme); err != nil {
		return nil, err
	}
	return &scheme, nil
}
