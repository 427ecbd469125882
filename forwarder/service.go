package forwarder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chroniclelabs/chronicle-cli/client"
)

// Service performs the remote CRUD operations on forwarders and their
// collectors. All transport and auth concerns live in the client.
type Service struct {
	api *client.Client
}

// NewService wraps an API client.
func NewService(api *client.Client) *Service {
	return &Service{api: api}
}

// CreateForwarder creates a new forwarder and returns the server's view of it.
func (s *Service) CreateForwarder(ctx context.Context, f *Forwarder) (*Forwarder, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid forwarder: %w", err)
	}
	var created Forwarder
	if err := s.api.Do(ctx, http.MethodPost, "/v2/forwarders", nil, f, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetForwarder retrieves one forwarder by resource name.
func (s *Service) GetForwarder(ctx context.Context, name string) (*Forwarder, error) {
	if _, err := ParseForwarderName(name); err != nil {
		return nil, err
	}
	var f Forwarder
	if err := s.api.Do(ctx, http.MethodGet, "/v2/"+name, nil, nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListForwarders retrieves all forwarders for the tenant.
func (s *Service) ListForwarders(ctx context.Context) ([]Forwarder, error) {
	var resp struct {
		Forwarders []Forwarder `json:"forwarders"`
	}
	if err := s.api.Do(ctx, http.MethodGet, "/v2/forwarders", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Forwarders, nil
}

// UpdateForwarder patches the fields named in updateMask and returns the
// forwarder with the updates applied. List-valued fields are replaced
// whole, never merged.
func (s *Service) UpdateForwarder(ctx context.Context, f *Forwarder, updateMask []string) (*Forwarder, error) {
	if _, err := ParseForwarderName(f.Name); err != nil {
		return nil, err
	}
	if len(updateMask) == 0 {
		return nil, fmt.Errorf("update mask is required")
	}
	var updated Forwarder
	query := client.UpdateMask(updateMask...)
	if err := s.api.Do(ctx, http.MethodPatch, "/v2/"+f.Name, query, f, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteForwarder deletes a forwarder and all its collectors.
func (s *Service) DeleteForwarder(ctx context.Context, name string) error {
	if _, err := ParseForwarderName(name); err != nil {
		return err
	}
	return s.api.Do(ctx, http.MethodDelete, "/v2/"+name, nil, nil, nil)
}

// CreateCollector creates a collector on an existing forwarder.
func (s *Service) CreateCollector(ctx context.Context, forwarderName string, c *Collector) (*Collector, error) {
	if _, err := ParseForwarderName(forwarderName); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid collector: %w", err)
	}
	var created Collector
	if err := s.api.Do(ctx, http.MethodPost, "/v2/"+forwarderName+"/collectors", nil, c, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCollector retrieves one collector by resource name.
func (s *Service) GetCollector(ctx context.Context, name string) (*Collector, error) {
	if _, _, err := ParseCollectorName(name); err != nil {
		return nil, err
	}
	var c Collector
	if err := s.api.Do(ctx, http.MethodGet, "/v2/"+name, nil, nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCollectors retrieves all collectors on a forwarder, in server order.
func (s *Service) ListCollectors(ctx context.Context, forwarderName string) ([]Collector, error) {
	if _, err := ParseForwarderName(forwarderName); err != nil {
		return nil, err
	}
	var resp struct {
		Collectors []Collector `json:"collectors"`
	}
	if err := s.api.Do(ctx, http.MethodGet, "/v2/"+forwarderName+"/collectors", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Collectors, nil
}

// UpdateCollector patches the fields named in updateMask.
func (s *Service) UpdateCollector(ctx context.Context, c *Collector, updateMask []string) (*Collector, error) {
	if _, _, err := ParseCollectorName(c.Name); err != nil {
		return nil, err
	}
	if len(updateMask) == 0 {
		return nil, fmt.Errorf("update mask is required")
	}
	var updated Collector
	query := client.UpdateMask(updateMask...)
	if err := s.api.Do(ctx, http.MethodPatch, "/v2/"+c.Name, query, c, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCollector deletes a collector.
func (s *Service) DeleteCollector(ctx context.Context, name string) error {
	if _, _, err := ParseCollectorName(name); err != nil {
		return err
	}
	return s.api.Do(ctx, http.MethodDelete, "/v2/"+name, nil, nil, nil)
}
