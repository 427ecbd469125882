// Package lists wraps the Chronicle reference list API.
package lists

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chroniclelabs/chronicle-cli/client"
)

// List is a named reference list of content lines.
type List struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Lines       []string `json:"lines,omitempty"`
	ContentType string   `json:"contentType,omitempty"`
	CreateTime  string   `json:"createTime,omitempty"`
}

// Service performs the remote list operations.
type Service struct {
	api *client.Client
}

// NewService wraps an API client.
func NewService(api *client.Client) *Service {
	return &Service{api: api}
}

// Create stores a new list and returns the server's view of it.
func (s *Service) Create(ctx context.Context, name, description string, lines []string) (*List, error) {
	if name == "" {
		return nil, fmt.Errorf("list name is required")
	}
	body := List{Name: name, Description: description, Lines: lines}
	var created List
	if err := s.api.Do(ctx, http.MethodPost, "/v2/lists", nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get retrieves a list by name.
func (s *Service) Get(ctx context.Context, name string) (*List, error) {
	var list List
	if err := s.api.Do(ctx, http.MethodGet, "/v2/lists/"+name, nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListAll retrieves reference lists one page at a time.
func (s *Service) ListAll(ctx context.Context, pageSize int, pageToken string) ([]List, string, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if pageToken != "" {
		query.Set("page_token", pageToken)
	}
	var resp struct {
		Lists         []List `json:"lists"`
		NextPageToken string `json:"nextPageToken"`
	}
	if err := s.api.Do(ctx, http.MethodGet, "/v2/lists", query, nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Lists, resp.NextPageToken, nil
}

// Update replaces a list's lines (and description, when non-empty). The
// lines field is replaced whole; the API does not merge list contents.
func (s *Service) Update(ctx context.Context, name, description string, lines []string) (*List, error) {
	if name == "" {
		return nil, fmt.Errorf("list name is required")
	}
	body := List{Name: name, Description: description, Lines: lines}
	maskFields := []string{"list.lines"}
	if description != "" {
		maskFields = append(maskFields, "list.description")
	}
	var updated List
	query := client.UpdateMask(maskFields...)
	if err := s.api.Do(ctx, http.MethodPatch, "/v2/lists", query, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
