package confgen

import "gopkg.in/yaml.v3"

// ConfigDocument is the non-secret configuration file deployed to a
// forwarder host. Field order matters: the host parser is strict, so the
// document is built from declared struct fields and ordered mappings, never
// from Go map iteration.
type ConfigDocument struct {
	Output       Output           `yaml:"output"`
	RegexFilters *OrderedMap      `yaml:"regex_filters,omitempty"`
	Metadata     *Metadata        `yaml:"metadata,omitempty"`
	Collectors   []CollectorEntry `yaml:"collectors"`
}

// Output describes where and how the forwarder uploads.
type Output struct {
	Compression bool     `yaml:"compression"`
	URL         string   `yaml:"url"`
	Identity    Identity `yaml:"identity"`
}

// Identity carries the non-secret upload identifiers.
type Identity struct {
	CollectorID string `yaml:"collector_id"`
	CustomerID  string `yaml:"customer_id"`
}

// Metadata is the labels mapping plus namespace.
type Metadata struct {
	AssetNamespace string      `yaml:"asset_namespace,omitempty"`
	Labels         *OrderedMap `yaml:"labels,omitempty"`
}

// FilterBlock is one regex_filters entry, keyed by filter description.
type FilterBlock struct {
	Regexp   string `yaml:"regexp"`
	Behavior string `yaml:"behavior"`
}

// CollectorEntry is a tagged union: exactly one mechanism field is set and
// its yaml key tags the entry ({syslog: …}, {file: …}, …).
type CollectorEntry struct {
	File   *FileBlock   `yaml:"file,omitempty"`
	Syslog *SyslogBlock `yaml:"syslog,omitempty"`
	Splunk *SplunkBlock `yaml:"splunk,omitempty"`
	Pcap   *PcapBlock   `yaml:"pcap,omitempty"`
	Kafka  *KafkaBlock  `yaml:"kafka,omitempty"`
}

// CommonBlock is shared by every collector entry.
type CommonBlock struct {
	Enabled       bool   `yaml:"enabled"`
	DataType      string `yaml:"data_type"`
	BatchNSeconds int    `yaml:"batch_n_seconds"`
	BatchNBytes   int64  `yaml:"batch_n_bytes"`
}

type FileBlock struct {
	Common   CommonBlock `yaml:"common"`
	FilePath string      `yaml:"file_path"`
}

type SyslogBlock struct {
	Common               CommonBlock `yaml:"common"`
	TCPAddress           string      `yaml:"tcp_address,omitempty"`
	UDPAddress           string      `yaml:"udp_address,omitempty"`
	ConnectionTimeoutSec int         `yaml:"connection_timeout_sec,omitempty"`
}

type SplunkBlock struct {
	Common            CommonBlock `yaml:"common"`
	Host              string      `yaml:"host"`
	Port              int         `yaml:"port"`
	MinimumWindowSize int         `yaml:"minimum_window_size,omitempty"`
	MaximumWindowSize int         `yaml:"maximum_window_size,omitempty"`
	QueryString       string      `yaml:"query_string"`
	QueryMode         string      `yaml:"query_mode"`
	CertIgnored       bool        `yaml:"cert_ignored,omitempty"`
}

type PcapBlock struct {
	Common    CommonBlock `yaml:"common"`
	Interface string      `yaml:"interface"`
	Bpf       string      `yaml:"bpf,omitempty"`
}

type KafkaBlock struct {
	Common    CommonBlock `yaml:"common"`
	Topic     string      `yaml:"topic"`
	GroupID   string      `yaml:"group_id,omitempty"`
	TimeoutMs int         `yaml:"timeout_ms,omitempty"`
	Brokers   []string    `yaml:"brokers"`
}

// AuthDocument is the companion secrets-only file. Its collectors sequence
// is tagged the same way as the config document but carries only the auth
// marker and credentials.
type AuthDocument struct {
	Output     AuthOutput           `yaml:"output"`
	Collectors []AuthCollectorEntry `yaml:"collectors"`
}

type AuthOutput struct {
	Identity AuthIdentity `yaml:"identity"`
}

type AuthIdentity struct {
	SecretKey string `yaml:"secret_key"`
}

type AuthCollectorEntry struct {
	File   *AuthBlock `yaml:"file,omitempty"`
	Syslog *AuthBlock `yaml:"syslog,omitempty"`
	Splunk *AuthBlock `yaml:"splunk,omitempty"`
	Pcap   *AuthBlock `yaml:"pcap,omitempty"`
	Kafka  *AuthBlock `yaml:"kafka,omitempty"`
}

// AuthBlock marks whether a collector authenticates and, when it does,
// carries its credentials.
type AuthBlock struct {
	Auth     bool   `yaml:"auth"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// OrderedMap is a yaml mapping that marshals its keys in insertion order.
// Plain Go maps would marshal sorted, losing the semantic order of regex
// filters and labels.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap creates an empty ordered mapping.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Set inserts or replaces a key. First insertion fixes the key's position.
func (m *OrderedMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Len returns the number of keys.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// MarshalYAML emits the mapping with keys in insertion order.
func (m *OrderedMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
