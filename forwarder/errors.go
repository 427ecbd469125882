package forwarder

import (
	"errors"
	"fmt"
)

// Invariant violations on collector configs.
var (
	ErrNoMechanism        = errors.New("collector config has no ingestion mechanism settings")
	ErrMultipleMechanisms = errors.New("collector config has more than one ingestion mechanism settings block")
)

var (
	errEmptyDisplayName       = errors.New("display name is required")
	errMissingCollectorConfig = errors.New("collector config is required")
	errMissingLogType         = errors.New("collector log type is required")
)

func errBadFilterBehavior(b FilterBehavior) error {
	return fmt.Errorf("regex filter behavior must be %s or %s, got %q", FilterAllow, FilterBlock, b)
}
