package adminclient

import (
	"context"
	"sync"
)

// AppState is a local mirror of the projects and schemes collections. Every
// mutation calls the server first and only applies the result locally on
// success, so the mirror never runs ahead of the backend. Network calls run
// outside the lock.
type AppState struct {
	mu       sync.Mutex
	client   *Client
	projects []Project
	schemes  []InvestmentScheme
}

func NewAppState(client *Client) *AppState {
	return &AppState{client: client}
}

// RefreshProjects replaces the local projects mirror with the full server
// collection, walking every page.
func (s *AppState) RefreshProjects(ctx context.Context, q ProjectsQuery) error {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	q.Page = 1
	var all []Project
	for {
		page, err := s.client.ListProjects(ctx, q)
		if err != nil {
			return err
		}
		all = append(all, page.Items...)
		if !page.IsNext {
			break
		}
		q.Page++
	}
	s.mu.Lock()
	s.projects = all
	s.mu.Unlock()
	return nil
}

// RefreshSchemes replaces the local schemes mirror with the full server
// collection.
func (s *AppState) RefreshSchemes(ctx context.Context, q SchemesQuery) error {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	q.Page = 1
	var all []InvestmentScheme
	for {
		page, err := s.client.ListSchemes(ctx, q)
		if err != nil {
			return err
		}
		all = append(all, page.Items...)
		if !page.IsNext {
			break
		}
		q.Page++
	}
	s.mu.Lock()
	s.schemes = all
	s.mu.Unlock()
	return nil
}

// AddProject creates the project server-side and appends the returned
// record to the mirror.
func (s *AppState) AddProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	project, err := s.client.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.projects = append(s.projects, *project)
	s.mu.Unlock()
	return project, nil
}

// UpdateProject updates the project server-side and replaces the matching
// record in place, preserving collection order.
func (s *AppState) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	project, err := s.client.UpdateProject(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = *project
			break
		}
	}
	s.mu.Unlock()
	return project, nil
}

// DeleteProject deactivates the project server-side, then removes it and
// its schemes from the mirror. The server cascades the scheme
// deactivation; the local removal mirrors that.
func (s *AppState) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.client.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	keptSchemes := s.schemes[:0]
	for _, sc := range s.schemes {
		if sc.ProjectID != id {
			keptSchemes = append(keptSchemes, sc)
		}
	}
	s.schemes = keptSchemes
	return nil
}

// Projects returns a copy of the mirror.
func (s *AppState) Projects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Project looks a project up in the mirror by id.
func (s *AppState) Project(id string) (Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// AddScheme creates the scheme server-side and appends the returned record
// to the mirror.
func (s *AppState) AddScheme(ctx context.Context, req CreateSchemeRequest) (*InvestmentScheme, error) {
	scheme, err := s.client.CreateScheme(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.schemes = append(s.schemes, *scheme)
	s.mu.Unlock()
	return scheme, nil
}

// UpdateScheme updates the scheme server-side and replaces the matching
// record in place.
func (s *AppState) UpdateScheme(ctx context.Context, id string, req UpdateSchemeRequest) (*InvestmentScheme, error) {
	scheme, err := s.client.UpdateScheme(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.schemes {
		if s.schemes[i].ID == id {
			s.schemes[i] = *scheme
			break
		}
	}
	s.mu.Unlock()
	return scheme, nil
}

// DeleteScheme deactivates the scheme server-side, then removes it from
// the mirror.
func (s *AppState) DeleteScheme(ctx context.Context, id string) error {
	if _, err := s.client.DeleteScheme(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.schemes[:0]
	for _, sc := range s.schemes {
		if sc.ID != id {
			kept = append(kept, sc)
		}
	}
	s.schemes = kept
	return nil
}

// Schemes returns a copy of the mirror.
func (s *AppState) Schemes() []InvestmentScheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]InvestmentScheme, len(s.schemes))
	copy(out, s.schemes)
	return out
}

// SchemesForProject filters the mirror by project.
func (s *AppState) SchemesForProject(projectID string) []InvestmentScheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []InvestmentScheme
	for _, sc := range s.schemes {
		if sc.ProjectID == projectID {
			out = append(out, sc)
		}
	}
	return out
}
