package forwarder

// Mechanism identifies how a collector ingests data. The set is closed;
// each value corresponds to exactly one settings block on CollectorConfig.
type Mechanism string

const (
	MechanismFile   Mechanism = "file"
	MechanismSyslog Mechanism = "syslog"
	MechanismSplunk Mechanism = "splunk"
	MechanismPcap   Mechanism = "pcap"
	MechanismKafka  Mechanism = "kafka"
)

// Collector is a child resource of a forwarder representing one ingestion
// mechanism / log type pairing.
type Collector struct {
	Name        string           `json:"name,omitempty"`
	DisplayName string           `json:"displayName"`
	Config      *CollectorConfig `json:"config,omitempty"`
	State       State            `json:"state,omitempty"`
}

// CollectorConfig carries the log type, batching thresholds, and exactly
// one mechanism settings block. int64 values ride the wire as JSON
// strings, hence the ",string" tag options.
type CollectorConfig struct {
	LogType            string          `json:"logType"`
	MaxSecondsPerBatch int             `json:"maxSecondsPerBatch,omitempty"`
	MaxBytesPerBatch   int64           `json:"maxBytesPerBatch,omitempty,string"`
	FileSettings       *FileSettings   `json:"fileSettings,omitempty"`
	SyslogSettings     *SyslogSettings `json:"syslogSettings,omitempty"`
	SplunkSettings     *SplunkSettings `json:"splunkSettings,omitempty"`
	PcapSettings       *PcapSettings   `json:"pcapSettings,omitempty"`
	KafkaSettings      *KafkaSettings  `json:"kafkaSettings,omitempty"`
}

// FileSettings ingest from a flat file on the forwarder host.
type FileSettings struct {
	FilePath string `json:"filePath"`
}

// SyslogSettings ingest from a syslog listener.
type SyslogSettings struct {
	Protocol             string       `json:"protocol"`
	Address              string       `json:"address"`
	Port                 int          `json:"port"`
	BufferSize           int64        `json:"bufferSize,omitempty,string"`
	ConnectionTimeout    int          `json:"connectionTimeout,omitempty"`
	TLSSettings          *TLSSettings `json:"tlsSettings,omitempty"`
}

// SplunkSettings poll a Splunk instance with a search query.
type SplunkSettings struct {
	Authentication    *Authentication `json:"authentication,omitempty"`
	Host              string          `json:"host"`
	Port              int             `json:"port"`
	MinimumWindowSize int             `json:"minimumWindowSize,omitempty"`
	MaximumWindowSize int             `json:"maximumWindowSize,omitempty"`
	QueryString       string          `json:"queryString"`
	QueryMode         string          `json:"queryMode"`
	CertIgnored       bool            `json:"certIgnored,omitempty"`
}

// PcapSettings capture packets from a network interface.
type PcapSettings struct {
	NetworkInterface string `json:"networkInterface"`
	Bpf              string `json:"bpf,omitempty"`
}

// KafkaSettings consume from a Kafka topic.
type KafkaSettings struct {
	Authentication *Authentication `json:"authentication,omitempty"`
	Topic          string          `json:"topic"`
	GroupID        string          `json:"groupId,omitempty"`
	TimeoutMs      int             `json:"timeoutMs,omitempty"`
	Brokers        []string        `json:"brokers"`
	TLSSettings    *TLSSettings    `json:"tlsSettings,omitempty"`
}

// Authentication holds collector credentials. These are secret material
// and only ever appear in the generated auth file, never the config file.
type Authentication struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TLSSettings configure TLS on mechanisms that listen for connections.
type TLSSettings struct {
	Certificate        string `json:"certificate,omitempty"`
	CertificatePathKey string `json:"certificatePathKey,omitempty"`
	MinimumTLSVersion  string `json:"minimumTlsVersion,omitempty"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty"`
}

// Mechanism returns the single mechanism whose settings block is set.
// Zero or multiple settings blocks are invariant violations.
func (c *CollectorConfig) Mechanism() (Mechanism, error) {
	var found []Mechanism
	if c.FileSettings != nil {
		found = append(found, MechanismFile)
	}
	if c.SyslogSettings != nil {
		found = append(found, MechanismSyslog)
	}
	if c.SplunkSettings != nil {
		found = append(found, MechanismSplunk)
	}
	if c.PcapSettings != nil {
		found = append(found, MechanismPcap)
	}
	if c.KafkaSettings != nil {
		found = append(found, MechanismKafka)
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", ErrNoMechanism
	default:
		return "", ErrMultipleMechanisms
	}
}

// Validate ensures the collector is well-formed enough to send to the API.
func (c *Collector) Validate() error {
	if c.DisplayName == "" {
		return errEmptyDisplayName
	}
	if c.Config == nil {
		return errMissingCollectorConfig
	}
	if c.Config.LogType == "" {
		return errMissingLogType
	}
	_, err := c.Config.Mechanism()
	return err
}
