package forwarder

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Resource names are opaque ids in the formats
// "forwarders/{uuid}" and "forwarders/{uuid}/collectors/{uuid}".

// ParseForwarderName extracts and validates the forwarder id.
func ParseForwarderName(name string) (string, error) {
	parts := strings.Split(name, "/")
	if len(parts) != 2 || parts[0] != "forwarders" {
		return "", fmt.Errorf("malformed forwarder name %q", name)
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return "", fmt.Errorf("malformed forwarder id in %q: %w", name, err)
	}
	return id.String(), nil
}

// ParseCollectorName extracts and validates the forwarder and collector ids.
func ParseCollectorName(name string) (forwarderID, collectorID string, err error) {
	parts := strings.Split(name, "/")
	if len(parts) != 4 || parts[0] != "forwarders" || parts[2] != "collectors" {
		return "", "", fmt.Errorf("malformed collector name %q", name)
	}
	fid, err := uuid.Parse(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("malformed forwarder id in %q: %w", name, err)
	}
	cid, err := uuid.Parse(parts[3])
	if err != nil {
		return "", "", fmt.Errorf("malformed collector id in %q: %w", name, err)
	}
	return fid.String(), cid.String(), nil
}

// ForwarderName builds a resource name from a forwarder id.
func ForwarderName(forwarderID string) string {
	return "forwarders/" + forwarderID
}

// CollectorName builds a resource name from forwarder and collector ids.
func CollectorName(forwarderID, collectorID string) string {
	return "forwarders/" + forwarderID + "/collectors/" + collectorID
}
