package detect

import "encoding/json"

// Rule is one version of a detection rule.
type Rule struct {
	RuleID            string   `json:"ruleId,omitempty"`
	VersionID         string   `json:"versionId,omitempty"`
	RuleName          string   `json:"ruleName,omitempty"`
	RuleText          string   `json:"ruleText,omitempty"`
	Metadata          Metadata `json:"metadata,omitempty"`
	RuleType          string   `json:"ruleType,omitempty"`
	VersionCreateTime string   `json:"versionCreateTime,omitempty"`
	CompilationState  string   `json:"compilationState,omitempty"`
	LiveRuleEnabled   bool     `json:"liveRuleEnabled,omitempty"`
	AlertingEnabled   bool     `json:"alertingEnabled,omitempty"`
}

// Metadata is the rule's meta section, free-form key/value.
type Metadata map[string]string

// Retrohunt is one execution of a rule over a historical time range.
type Retrohunt struct {
	RetrohuntID        string  `json:"retrohuntId,omitempty"`
	RuleID             string  `json:"ruleId,omitempty"`
	VersionID          string  `json:"versionId,omitempty"`
	EventStartTime     string  `json:"eventStartTime,omitempty"`
	EventEndTime       string  `json:"eventEndTime,omitempty"`
	RetrohuntStartTime string  `json:"retrohuntStartTime,omitempty"`
	RetrohuntEndTime   string  `json:"retrohuntEndTime,omitempty"`
	State              string  `json:"state,omitempty"`
	ProgressPercentage float64 `json:"progressPercentage,omitempty"`
}

// Detection payloads vary by rule, so they are kept raw for the caller to
// print or post-process.
type Detection = json.RawMessage

// HealthError is one rule execution error from the health API.
type HealthError struct {
	ErrorID   string `json:"errorId,omitempty"`
	Category  string `json:"category,omitempty"`
	ErrorTime string `json:"errorTime,omitempty"`
	RuleID    string `json:"ruleId,omitempty"`
	VersionID string `json:"versionId,omitempty"`
	ErrorText string `json:"errorText,omitempty"`
}
