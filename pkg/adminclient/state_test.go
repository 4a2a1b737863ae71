package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCollectionServer echoes created records back with generated ids and
// handles the delete routes.
func fakeCollectionServer() *http.ServeMux {
	var nextID atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /projects/", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		req["id"] = fmt.Sprintf("p%d", nextID.Add(1))
		req["is_active"] = true
		writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": req})
	})
	mux.HandleFunc("PUT /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		req["id"] = r.PathValue("id")
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": req})
	})
	mux.HandleFunc("DELETE /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": r.PathValue("id"), "is_active": false},
		})
	})
	mux.HandleFunc("POST /investment-schemes/", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		req["id"] = fmt.Sprintf("s%d", nextID.Add(1))
		req["is_active"] = true
		delete(req, "start_date")
		delete(req, "end_date")
		writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": req})
	})
	mux.HandleFunc("DELETE /investment-schemes/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": r.PathValue("id"), "is_active": false},
		})
	})
	return mux
}

func addProject(t *testing.T, state *AppState, title string) *Project {
	p, err := state.AddProject(context.Background(), CreateProjectRequest{
		Title: title, Location: "Somewhere", Status: "available", PropertyType: "residential",
	})
	require.NoError(t, err)
	return p
}

func addScheme(t *testing.T, state *AppState, projectID, name string) *InvestmentScheme {
	days := 30
	s, err := state.AddScheme(context.Background(), CreateSchemeRequest{
		ProjectID: projectID, SchemeName: name, SchemeType: "single_payment",
		BalancePaymentDays: &days, StartDate: "2025-01-01",
	})
	require.NoError(t, err)
	return s
}

func TestAppState_AddAndLookup(t *testing.T) {
	state := NewAppState(newTestClient(t, fakeCollectionServer()))

	p := addProject(t, state, "Towers")
	assert.Len(t, state.Projects(), 1)

	got, ok := state.Project(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Towers", got.Title)

	_, ok = state.Project("missing")
	assert.False(t, ok)
}

func TestAppState_UpdateReplacesInPlace(t *testing.T) {
	state := NewAppState(newTestClient(t, fakeCollectionServer()))
	first := addProject(t, state, "First")
	addProject(t, state, "Second")

	title := "First, renamed"
	_, err := state.UpdateProject(context.Background(), first.ID, UpdateProjectRequest{Title: &title})
	require.NoError(t, err)

	projects := state.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID, projects[0].ID, "order must be preserved")
	assert.Equal(t, "First, renamed", projects[0].Title)
	assert.Equal(t, "Second", projects[1].Title)
}

func TestAppState_DeleteProjectRemovesItsSchemes(t *testing.T) {
	state := NewAppState(newTestClient(t, fakeCollectionServer()))
	doomed := addProject(t, state, "Doomed")
	kept := addProject(t, state, "Kept")
	addScheme(t, state, doomed.ID, "Plan A")
	addScheme(t, state, doomed.ID, "Plan B")
	surviving := addScheme(t, state, kept.ID, "Plan C")

	require.NoError(t, state.DeleteProject(context.Background(), doomed.ID))

	projects := state.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, kept.ID, projects[0].ID)

	schemes := state.Schemes()
	require.Len(t, schemes, 1)
	assert.Equal(t, surviving.ID, schemes[0].ID)
	assert.Empty(t, state.SchemesForProject(doomed.ID))
}

func TestAppState_DeleteScheme(t *testing.T) {
	state := NewAppState(newTestClient(t, fakeCollectionServer()))
	p := addProject(t, state, "Towers")
	doomed := addScheme(t, state, p.ID, "Plan A")
	addScheme(t, state, p.ID, "Plan B")

	require.NoError(t, state.DeleteScheme(context.Background(), doomed.ID))
	schemes := state.SchemesForProject(p.ID)
	require.Len(t, schemes, 1)
	assert.Equal(t, "Plan B", schemes[0].SchemeName)
}

func TestAppState_ServerFailureLeavesMirrorUntouched(t *testing.T) {
	mux := fakeCollectionServer()
	mux.HandleFunc("DELETE /projects/p-broken", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Internal Server Error",
		})
	})
	state := NewAppState(newTestClient(t, mux))
	addProject(t, state, "Towers")

	err := state.DeleteProject(context.Background(), "p-broken")
	require.Error(t, err)
	assert.Len(t, state.Projects(), 1)
}

func TestAppState_RefreshProjectsWalksAllPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		items := []map[string]interface{}{}
		for i := 0; i < 2; i++ {
			items = append(items, map[string]interface{}{
				"id": fmt.Sprintf("p%d-%d", page, i), "title": fmt.Sprintf("Project %d", page),
			})
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "data": items,
			"page": page, "total_items": 4, "total_pages": 2,
			"is_next": page == 1,
		})
	})
	state := NewAppState(newTestClient(t, mux))

	require.NoError(t, state.RefreshProjects(context.Background(), ProjectsQuery{}))
	projects := state.Projects()
	require.Len(t, projects, 4)

	ids := map[string]bool{}
	for _, p := range projects {
		ids[p.ID] = true
		assert.True(t, strings.HasPrefix(p.ID, "p1-") || strings.HasPrefix(p.ID, "p2-"))
	}
	assert.Len(t, ids, 4)
}
