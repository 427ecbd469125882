// Package forwarder models Chronicle forwarder and collector resources and
// wraps the remote CRUD operations on them.
package forwarder

// State is the lifecycle state of a forwarder or collector.
type State string

const (
	StateActive    State = "ACTIVE"
	StateSuspended State = "SUSPENDED"
)

// FilterBehavior controls what a regex filter does with matching lines.
type FilterBehavior string

const (
	FilterAllow FilterBehavior = "ALLOW"
	FilterBlock FilterBehavior = "BLOCK"
)

// Forwarder is a logical ingestion endpoint hosting one or more collectors.
type Forwarder struct {
	Name        string  `json:"name,omitempty"`
	DisplayName string  `json:"displayName"`
	Config      *Config `json:"config,omitempty"`
	State       State   `json:"state,omitempty"`
}

// Config is a forwarder's optional configuration block.
type Config struct {
	UploadCompression bool            `json:"uploadCompression,omitempty"`
	Metadata          *Metadata       `json:"metadata,omitempty"`
	RegexFilters      []RegexFilter   `json:"regexFilters,omitempty"`
	ServerSettings    *ServerSettings `json:"serverSettings,omitempty"`
}

// Metadata attaches labels and a namespace to everything a forwarder ingests.
type Metadata struct {
	AssetNamespace string  `json:"assetNamespace,omitempty"`
	Labels         []Label `json:"labels,omitempty"`
}

// Label is one metadata key/value pair.
type Label struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RegexFilter allows or blocks ingested lines matching an RE2 pattern.
// Filter order is significant for config file generation.
type RegexFilter struct {
	Description string         `json:"description"`
	Regexp      string         `json:"regexp"`
	Behavior    FilterBehavior `json:"behavior"`
}

// ServerSettings configure the forwarder's built-in HTTP server.
type ServerSettings struct {
	GracefulTimeout int           `json:"gracefulTimeout,omitempty"`
	DrainTimeout    int           `json:"drainTimeout,omitempty"`
	HTTPSettings    *HTTPSettings `json:"httpSettings,omitempty"`
	State           State         `json:"state,omitempty"`
}

// HTTPSettings configure the forwarder server's listener.
type HTTPSettings struct {
	Port              int            `json:"port,omitempty"`
	Host              string         `json:"host,omitempty"`
	ReadTimeout       int            `json:"readTimeout,omitempty"`
	ReadHeaderTimeout int            `json:"readHeaderTimeout,omitempty"`
	WriteTimeout      int            `json:"writeTimeout,omitempty"`
	IdleTimeout       int            `json:"idleTimeout,omitempty"`
	RouteSettings     *RouteSettings `json:"routeSettings,omitempty"`
}

// RouteSettings are the status codes served by the health routes.
type RouteSettings struct {
	AvailableStatusCode int `json:"availableStatusCode,omitempty"`
	ReadyStatusCode     int `json:"readyStatusCode,omitempty"`
	UnreadyStatusCode   int `json:"unreadyStatusCode,omitempty"`
}

// Validate ensures the forwarder is well-formed enough to send to the API.
func (f *Forwarder) Validate() error {
	if f.DisplayName == "" {
		return errEmptyDisplayName
	}
	if f.Config == nil {
		return nil
	}
	for _, filter := range f.Config.RegexFilters {
		if err := filter.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the filter's behavior enumeration.
func (rf RegexFilter) Validate() error {
	switch rf.Behavior {
	case FilterAllow, FilterBlock:
		return nil
	default:
		return errBadFilterBehavior(rf.Behavior)
	}
}
