// Package confgen turns a fetched forwarder and its collectors into the
// two files deployed to a forwarder host: the configuration file and the
// companion secrets file.
//
// Generation is a pure function: identical input produces byte-identical
// output. It performs no remote calls and, unless WriteFiles is used, no
// side effects.
package confgen

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/chroniclelabs/chronicle-cli/forwarder"
	"github.com/chroniclelabs/chronicle-cli/regions"
)

// Default batching thresholds applied when a collector does not set them.
const (
	defaultBatchSeconds = 10
	defaultBatchBytes   = 1 << 20
)

// Options carry the generation inputs that come from the tenant rather
// than the forwarder resource.
type Options struct {
	// Region selects the upload endpoint written into the config file.
	Region string

	// CustomerID identifies the tenant in the output identity block.
	CustomerID string

	// SecretKey is the ingestion secret written into the auth file only.
	SecretKey string
}

// Files holds the two generated documents.
type Files struct {
	// Config is the non-secret configuration document (forwarder.conf).
	Config []byte

	// Auth is the secrets-only document (forwarder_auth.conf).
	Auth []byte
}

// Generate builds both documents from a forwarder and its collectors. The
// collectors sequence in the output preserves the input order. The
// forwarder's id doubles as the upload collector_id.
func Generate(f *forwarder.Forwarder, collectors []forwarder.Collector, opts Options) (*Files, error) {
	if len(collectors) == 0 {
		return nil, &PreconditionError{Reason: "at least one collector is required"}
	}

	forwarderID, err := forwarder.ParseForwarderName(f.Name)
	if err != nil {
		return nil, &PreconditionError{Reason: err.Error()}
	}

	uploadURL, err := regions.UploadURL(opts.Region)
	if err != nil {
		return nil, &PreconditionError{Reason: err.Error()}
	}

	configDoc := ConfigDocument{
		Output: Output{
			URL: uploadURL,
			Identity: Identity{
				CollectorID: forwarderID,
				CustomerID:  opts.CustomerID,
			},
		},
	}
	if f.Config != nil {
		configDoc.Output.Compression = f.Config.UploadCompression
		configDoc.RegexFilters = filtersBlock(f.Config.RegexFilters)
		configDoc.Metadata = metadataBlock(f.Config.Metadata)
	}

	authDoc := AuthDocument{
		Output: AuthOutput{Identity: AuthIdentity{SecretKey: opts.SecretKey}},
	}

	for _, c := range collectors {
		entry, authEntry, err := collectorEntries(c)
		if err != nil {
			return nil, err
		}
		configDoc.Collectors = append(configDoc.Collectors, entry)
		authDoc.Collectors = append(authDoc.Collectors, authEntry)
	}

	configOut, err := yaml.Marshal(&configDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config document: %w", err)
	}
	authOut, err := yaml.Marshal(&authDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auth document: %w", err)
	}

	return &Files{Config: configOut, Auth: authOut}, nil
}

func filtersBlock(filters []forwarder.RegexFilter) *OrderedMap {
	if len(filters) == 0 {
		return nil
	}
	m := NewOrderedMap()
	for _, f := range filters {
		m.Set(f.Description, FilterBlock{
			Regexp:   f.Regexp,
			Behavior: string(f.Behavior),
		})
	}
	return m
}

func metadataBlock(md *forwarder.Metadata) *Metadata {
	if md == nil {
		return nil
	}
	block := &Metadata{AssetNamespace: md.AssetNamespace}
	if len(md.Labels) > 0 {
		labels := NewOrderedMap()
		for _, label := range md.Labels {
			labels.Set(label.Key, label.Value)
		}
		block.Labels = labels
	}
	return block
}

func collectorEntries(c forwarder.Collector) (CollectorEntry, AuthCollectorEntry, error) {
	if c.Config == nil {
		return CollectorEntry{}, AuthCollectorEntry{},
			&PreconditionError{Reason: fmt.Sprintf("collector %s has no config", c.Name)}
	}

	mechanism, err := c.Config.Mechanism()
	if err != nil {
		return CollectorEntry{}, AuthCollectorEntry{},
			&PreconditionError{Reason: fmt.Sprintf("collector %s: %v", c.Name, err)}
	}

	common := commonBlock(c)

	var entry CollectorEntry
	var authEntry AuthCollectorEntry

	switch mechanism {
	case forwarder.MechanismFile:
		entry.File = &FileBlock{
			Common:   common,
			FilePath: c.Config.FileSettings.FilePath,
		}
		authEntry.File = &AuthBlock{Auth: false}

	case forwarder.MechanismSyslog:
		block, err := syslogBlock(c, common)
		if err != nil {
			return CollectorEntry{}, AuthCollectorEntry{}, err
		}
		entry.Syslog = block
		authEntry.Syslog = &AuthBlock{Auth: false}

	case forwarder.MechanismSplunk:
		s := c.Config.SplunkSettings
		entry.Splunk = &SplunkBlock{
			Common:            common,
			Host:              s.Host,
			Port:              s.Port,
			MinimumWindowSize: s.MinimumWindowSize,
			MaximumWindowSize: s.MaximumWindowSize,
			QueryString:       s.QueryString,
			QueryMode:         s.QueryMode,
			CertIgnored:       s.CertIgnored,
		}
		authEntry.Splunk = credentialsBlock(s.Authentication)

	case forwarder.MechanismPcap:
		p := c.Config.PcapSettings
		entry.Pcap = &PcapBlock{
			Common:    common,
			Interface: p.NetworkInterface,
			Bpf:       p.Bpf,
		}
		authEntry.Pcap = &AuthBlock{Auth: false}

	case forwarder.MechanismKafka:
		k := c.Config.KafkaSettings
		entry.Kafka = &KafkaBlock{
			Common:    common,
			Topic:     k.Topic,
			GroupID:   k.GroupID,
			TimeoutMs: k.TimeoutMs,
			Brokers:   k.Brokers,
		}
		authEntry.Kafka = credentialsBlock(k.Authentication)

	default:
		return CollectorEntry{}, AuthCollectorEntry{},
			&UnsupportedMechanismError{Collector: c.Name, Mechanism: string(mechanism)}
	}

	return entry, authEntry, nil
}

func commonBlock(c forwarder.Collector) CommonBlock {
	block := CommonBlock{
		Enabled:       c.State != forwarder.StateSuspended,
		DataType:      c.Config.LogType,
		BatchNSeconds: c.Config.MaxSecondsPerBatch,
		BatchNBytes:   c.Config.MaxBytesPerBatch,
	}
	if block.BatchNSeconds == 0 {
		block.BatchNSeconds = defaultBatchSeconds
	}
	if block.BatchNBytes == 0 {
		block.BatchNBytes = defaultBatchBytes
	}
	return block
}

func syslogBlock(c forwarder.Collector, common CommonBlock) (*SyslogBlock, error) {
	s := c.Config.SyslogSettings
	address := fmt.Sprintf("%s:%d", s.Address, s.Port)

	block := &SyslogBlock{
		Common:               common,
		ConnectionTimeoutSec: s.ConnectionTimeout,
	}
	switch s.Protocol {
	case "TCP":
		block.TCPAddress = address
	case "UDP":
		block.UDPAddress = address
	default:
		return nil, &PreconditionError{
			Reason: fmt.Sprintf("collector %s: syslog protocol must be TCP or UDP, got %q", c.Name, s.Protocol),
		}
	}
	return block, nil
}

func credentialsBlock(auth *forwarder.Authentication) *AuthBlock {
	if auth == nil {
		return &AuthBlock{Auth: false}
	}
	return &AuthBlock{
		Auth:     true,
		Username: auth.Username,
		Password: auth.Password,
	}
}
