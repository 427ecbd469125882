// Package regions maps Chronicle region selections to regional API hosts.
//
// The set of regions is a fixed enumeration. When Chronicle adds a region
// both Supported and uploadEndpoints must be extended by hand; there is no
// discovery mechanism.
package regions

import (
	"fmt"
	"sort"
	"strings"
)

// Default is the region assumed when none is selected.
const Default = "us"

var supported = map[string]bool{
	"us":                   true,
	"eu":                   true,
	"asia-southeast1":      true,
	"europe-west2":         true,
	"australia-southeast1": true,
}

// uploadEndpoints maps each region to the ingestion endpoint embedded in
// generated forwarder configuration files.
var uploadEndpoints = map[string]string{
	"us":                   "malachiteingestion-pa.googleapis.com:443",
	"eu":                   "europe-malachiteingestion-pa.googleapis.com:443",
	"asia-southeast1":      "asia-southeast1-malachiteingestion-pa.googleapis.com:443",
	"europe-west2":         "europe-west2-malachiteingestion-pa.googleapis.com:443",
	"australia-southeast1": "australia-southeast1-malachiteingestion-pa.googleapis.com:443",
}

// Supported returns the accepted region names, sorted.
func Supported() []string {
	names := make([]string, 0, len(supported))
	for name := range supported {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether region is a known region name.
func Valid(region string) bool {
	return supported[region]
}

// URL returns baseURL adjusted for the given region. The us region uses the
// unprefixed host; every other region prefixes the host with "{region}-".
func URL(baseURL, region string) string {
	if region == Default {
		return baseURL
	}
	return prependRegion(baseURL, region)
}

// URLAlwaysPrependRegion prefixes the host with "{region}-" for every
// region, us included. Applying it twice is a no-op.
func URLAlwaysPrependRegion(baseURL, region string) string {
	return prependRegion(baseURL, region)
}

// UploadURL returns the ingestion endpoint for generated forwarder configs.
func UploadURL(region string) (string, error) {
	endpoint, ok := uploadEndpoints[region]
	if !ok {
		return "", fmt.Errorf("no upload endpoint for region %q", region)
	}
	return endpoint, nil
}

func prependRegion(baseURL, region string) string {
	scheme, host, found := strings.Cut(baseURL, "://")
	if !found {
		host = baseURL
		scheme = ""
	}
	if strings.HasPrefix(host, region+"-") {
		return baseURL
	}
	if scheme == "" {
		return region + "-" + host
	}
	return scheme + "://" + region + "-" + host
}
