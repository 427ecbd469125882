// Package datatap wraps the Chronicle data tap API. A data tap streams a
// copy of ingested UDM events to a customer-owned sink.
package datatap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chroniclelabs/chronicle-cli/client"
)

// Sink formats supported by data taps.
const (
	SinkFormatMarshalledProto = "MARSHALLED_PROTO"
	SinkFormatJSON            = "JSON"
)

// DataTap routes a filtered copy of ingested events to a cloud pub/sub topic.
type DataTap struct {
	Name          string       `json:"name,omitempty"`
	DisplayName   string       `json:"displayName"`
	CloudPubsub   *CloudPubsub `json:"cloudPubsub,omitempty"`
	Filter        string       `json:"filter,omitempty"`
	SerializedFmt string       `json:"serializedFormat,omitempty"`
	TapID         string       `json:"tapId,omitempty"`
}

// CloudPubsub identifies the destination topic.
type CloudPubsub struct {
	Topic string `json:"topic"`
}

// Service performs the remote data tap operations.
type Service struct {
	api *client.Client
}

// NewService wraps an API client.
func NewService(api *client.Client) *Service {
	return &Service{api: api}
}

// Create registers a new data tap.
func (s *Service) Create(ctx context.Context, tap *DataTap) (*DataTap, error) {
	if tap.DisplayName == "" {
		return nil, fmt.Errorf("data tap display name is required")
	}
	if tap.CloudPubsub == nil || tap.CloudPubsub.Topic == "" {
		return nil, fmt.Errorf("data tap pub/sub topic is required")
	}
	var created DataTap
	if err := s.api.Do(ctx, http.MethodPost, "/v1/dataTaps", nil, tap, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get retrieves one data tap by id.
func (s *Service) Get(ctx context.Context, tapID string) (*DataTap, error) {
	var tap DataTap
	if err := s.api.Do(ctx, http.MethodGet, "/v1/dataTaps/"+tapID, nil, nil, &tap); err != nil {
		return nil, err
	}
	return &tap, nil
}

// List retrieves all data taps for the tenant.
func (s *Service) List(ctx context.Context) ([]DataTap, error) {
	var resp struct {
		DataTaps []DataTap `json:"dataTaps"`
	}
	if err := s.api.Do(ctx, http.MethodGet, "/v1/dataTaps", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.DataTaps, nil
}

// Update replaces a data tap's configuration.
func (s *Service) Update(ctx context.Context, tapID string, tap *DataTap) (*DataTap, error) {
	if tapID == "" {
		return nil, fmt.Errorf("data tap id is required")
	}
	var updated DataTap
	if err := s.api.Do(ctx, http.MethodPatch, "/v1/dataTaps/"+tapID, nil, tap, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a data tap.
func (s *Service) Delete(ctx context.Context, tapID string) error {
	if tapID == "" {
		return fmt.Errorf("data tap id is required")
	}
	return s.api.Do(ctx, http.MethodDelete, "/v1/dataTaps/"+tapID, nil, nil, nil)
}
