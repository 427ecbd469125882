// Package detect wraps the Chronicle Detect API: rule management,
// retrohunts, detections, and health errors.
package detect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chroniclelabs/chronicle-cli/client"
)

// Service performs the remote Detect API operations.
type Service struct {
	api *client.Client
}

// NewService wraps an API client.
func NewService(api *client.Client) *Service {
	return &Service{api: api}
}

// CreateRule compiles and stores a new detection rule.
func (s *Service) CreateRule(ctx context.Context, ruleText string) (*Rule, error) {
	if ruleText == "" {
		return nil, fmt.Errorf("rule text is required")
	}
	body := map[string]string{"ruleText": ruleText}
	var rule Rule
	if err := s.api.Do(ctx, http.MethodPost, "/v2/detect/rules", nil, body, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// GetRule retrieves a rule by version id ("ru_<UUID>" or
// "ru_<UUID>@v_<seconds>_<nanoseconds>"; without a version suffix the
// latest version is returned).
func (s *Service) GetRule(ctx context.Context, versionID string) (*Rule, error) {
	var rule Rule
	if err := s.api.Do(ctx, http.MethodGet, "/v2/detect/rules/"+versionID, nil, nil, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListRules retrieves the latest version of every rule, one page at a time.
func (s *Service) ListRules(ctx context.Context, pageSize int, pageToken string) ([]Rule, string, error) {
	query := pageQuery(pageSize, pageToken)
	var resp struct {
		Rules         []Rule `json:"rules"`
		NextPageToken string `json:"nextPageToken"`
	}
	if err := s.api.Do(ctx, http.MethodGet, "/v2/detect/rules", query, nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Rules, resp.NextPageToken, nil
}

// CreateRuleVersion stores new rule text as a new version of an existing rule.
func (s *Service) CreateRuleVersion(ctx context.Context, ruleID, ruleText string) (*Rule, error) {
	body := map[string]string{"ruleText": ruleText}
	var rule Rule
	path := "/v2/detect/rules/" + ruleID + ":createVersion"
	if err := s.api.Do(ctx, http.MethodPost, path, nil, body, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListRuleVersions retrieves all versions of one rule.
func (s *Service) ListRuleVersions(ctx context.Context, ruleID string, pageSize int, pageToken string) ([]Rule, string, error) {
	query := pageQuery(pageSize, pageToken)
	var resp struct {
		Rules         []Rule `json:"rules"`
		NextPageToken string `json:"nextPageToken"`
	}
	path := "/v2/detect/rules/" + ruleID + ":listVersions"
	if err := s.api.Do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, "", err
	}
	return resp.Rules, resp.NextPageToken, nil
}

// DeleteRule deletes a rule and all its versions.
func (s *Service) DeleteRule(ctx context.Context, ruleID string) error {
	return s.api.Do(ctx, http.MethodDelete, "/v2/detect/rules/"+ruleID, nil, nil, nil)
}

// EnableLiveRule starts running a rule against live ingested events.
func (s *Service) EnableLiveRule(ctx context.Context, ruleID string) error {
	return s.api.Do(ctx, http.MethodPost, "/v2/detect/rules/"+ruleID+":enableLiveRule", nil, nil, nil)
}

// DisableLiveRule stops running a rule against live ingested events.
func (s *Service) DisableLiveRule(ctx context.Context, ruleID string) error {
	return s.api.Do(ctx, http.MethodPost, "/v2/detect/rules/"+ruleID+":disableLiveRule", nil, nil, nil)
}

// EnableAlerting turns detections from a rule into alerts.
func (s *Service) EnableAlerting(ctx context.Context, ruleID string) error {
	return s.api.Do(ctx, http.MethodPost, "/v2/detect/rules/"+ruleID+":enableAlerting", nil, nil, nil)
}

func pageQuery(pageSize int, pageToken string) url.Values {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if pageToken != "" {
		query.Set("page_token", pageToken)
	}
	return query
}
