package detect

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// RunRetrohunt starts a retrohunt for a rule version over the given event
// time range.
func (s *Service) RunRetrohunt(ctx context.Context, versionID string, startTime, endTime time.Time) (*Retrohunt, error) {
	if !endTime.After(startTime) {
		return nil, fmt.Errorf("retrohunt end time must be after start time")
	}
	body := map[string]string{
		"startTime": startTime.UTC().Format(time.RFC3339),
		"endTime":   endTime.UTC().Format(time.RFC3339),
	}
	var retrohunt Retrohunt
	path := "/v2/detect/rules/" + versionID + ":runRetrohunt"
	if err := s.api.Do(ctx, http.MethodPost, path, nil, body, &retrohunt); err != nil {
		return nil, err
	}
	return &retrohunt, nil
}

// GetRetrohunt retrieves one retrohunt ("oh_<UUID>") for a rule version.
func (s *Service) GetRetrohunt(ctx context.Context, versionID, retrohuntID string) (*Retrohunt, error) {
	var retrohunt Retrohunt
	path := "/v2/detect/rules/" + versionID + "/retrohunts/" + retrohuntID
	if err := s.api.Do(ctx, http.MethodGet, path, nil, nil, &retrohunt); err != nil {
		return nil, err
	}
	return &retrohunt, nil
}

// ListRetrohunts retrieves the retrohunts for a rule version.
func (s *Service) ListRetrohunts(ctx context.Context, versionID string, pageSize int, pageToken string) ([]Retrohunt, string, error) {
	query := pageQuery(pageSize, pageToken)
	var resp struct {
		Retrohunts    []Retrohunt `json:"retrohunts"`
		NextPageToken string      `json:"nextPageToken"`
	}
	path := "/v2/detect/rules/" + versionID + "/retrohunts"
	if err := s.api.Do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Retrohunts, resp.NextPageToken, nil
}

// ListDetections retrieves detections for a rule version.
func (s *Service) ListDetections(ctx context.Context, versionID string, pageSize int, pageToken string) ([]Detection, string, error) {
	query := pageQuery(pageSize, pageToken)
	var resp struct {
		Detections    []Detection `json:"detections"`
		NextPageToken string      `json:"nextPageToken"`
	}
	path := "/v2/detect/rules/" + versionID + "/detections"
	if err := s.api.Do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Detections, resp.NextPageToken, nil
}

// ListErrors retrieves rule execution errors from the health API,
// optionally filtered to one rule or version id.
func (s *Service) ListErrors(ctx context.Context, ruleFilter string, pageSize int, pageToken string) ([]HealthError, string, error) {
	query := pageQuery(pageSize, pageToken)
	if ruleFilter != "" {
		query.Set("rule_filter", ruleFilter)
	}
	var resp struct {
		Errors        []HealthError `json:"errors"`
		NextPageToken string        `json:"nextPageToken"`
	}
	if err := s.api.Do(ctx, http.MethodGet, "/v2/health/errors", query, nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Errors, resp.NextPageToken, nil
}
