// Package servicemgmt wraps the Chronicle service management API, which
// controls the GCP organization association and log flow settings. It uses
// a different base URL and OAuth scope than the backstory APIs.
package servicemgmt

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chroniclelabs/chronicle-cli/client"
)

// BaseURL is the service management endpoint. It is not regionalized.
const BaseURL = "https://chronicleservicemanager.googleapis.com"

// GCPSettings is the per-organization Chronicle configuration.
type GCPSettings struct {
	Name           string          `json:"name,omitempty"`
	OrganizationID string          `json:"organizationId,omitempty"`
	LogFlowFilters []LogFlowFilter `json:"logFlowFilters,omitempty"`
}

// LogFlowFilter selects which GCP logs flow into Chronicle.
type LogFlowFilter struct {
	ID               string `json:"id,omitempty"`
	FilterExpression string `json:"filterExpression"`
	State            string `json:"state,omitempty"`
}

// Service performs the remote service management operations.
type Service struct {
	api *client.Client
}

// NewService wraps an API client bound to BaseURL.
func NewService(api *client.Client) *Service {
	return &Service{api: api}
}

// GetGCPSettings retrieves the Chronicle settings for a GCP organization.
func (s *Service) GetGCPSettings(ctx context.Context, organizationID int64) (*GCPSettings, error) {
	if err := validateOrganizationID(organizationID); err != nil {
		return nil, err
	}
	var settings GCPSettings
	path := fmt.Sprintf("/v1/organizations/%d/gcpSettings", organizationID)
	if err := s.api.Do(ctx, http.MethodGet, path, nil, nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateGCPLogFlowFilter replaces the expression of one log flow filter.
func (s *Service) UpdateGCPLogFlowFilter(ctx context.Context, organizationID int64, filterID, filterExpression string) (*LogFlowFilter, error) {
	if err := validateOrganizationID(organizationID); err != nil {
		return nil, err
	}
	if filterID == "" {
		return nil, fmt.Errorf("filter id is required")
	}
	body := LogFlowFilter{FilterExpression: filterExpression}
	var updated LogFlowFilter
	path := fmt.Sprintf("/v1/organizations/%d/gcpLogFlowFilters/%s", organizationID, filterID)
	query := client.UpdateMask("filter_expression")
	if err := s.api.Do(ctx, http.MethodPatch, path, query, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteGCPAssociation disconnects a GCP organization from Chronicle.
func (s *Service) DeleteGCPAssociation(ctx context.Context, organizationID int64) error {
	if err := validateOrganizationID(organizationID); err != nil {
		return err
	}
	path := fmt.Sprintf("/v1/organizations/%d/gcpAssociations/%d", organizationID, organizationID)
	return s.api.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func validateOrganizationID(id int64) error {
	if id < 0 {
		return fmt.Errorf("organization id must not be negative: %d", id)
	}
	return nil
}
