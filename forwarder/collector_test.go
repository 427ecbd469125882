package forwarder

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMechanism(t *testing.T) {
	tests := []struct {
		name    string
		config  CollectorConfig
		want    Mechanism
		wantErr error
	}{
		{
			name:   "file",
			config: CollectorConfig{FileSettings: &FileSettings{FilePath: "/var/log/app.log"}},
			want:   MechanismFile,
		},
		{
			name:   "syslog",
			config: CollectorConfig{SyslogSettings: &SyslogSettings{Protocol: "TCP", Address: "0.0.0.0", Port: 10514}},
			want:   MechanismSyslog,
		},
		{
			name:   "splunk",
			config: CollectorConfig{SplunkSettings: &SplunkSettings{Host: "127.0.0.1", Port: 8089}},
			want:   MechanismSplunk,
		},
		{
			name:   "pcap",
			config: CollectorConfig{PcapSettings: &PcapSettings{NetworkInterface: "eth0"}},
			want:   MechanismPcap,
		},
		{
			name:   "kafka",
			config: CollectorConfig{KafkaSettings: &KafkaSettings{Topic: "logs", Brokers: []string{"broker:9092"}}},
			want:   MechanismKafka,
		},
		{
			name:    "no settings block",
			config:  CollectorConfig{LogType: "WINDOWS_DNS"},
			wantErr: ErrNoMechanism,
		},
		{
			name: "two settings blocks",
			config: CollectorConfig{
				FileSettings:   &FileSettings{FilePath: "/var/log/app.log"},
				SyslogSettings: &SyslogSettings{Protocol: "TCP"},
			},
			wantErr: ErrMultipleMechanisms,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.Mechanism()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Mechanism() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Mechanism() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Mechanism() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCollectorDecodeServerResponse decodes the collector shape the API
// returns: int64 fields arrive as JSON strings and the syslog timeout is
// named connectionTimeout.
func TestCollectorDecodeServerResponse(t *testing.T) {
	body := `{
		"name": "forwarders/928b3c1e-1430-4511-892d-2202206b4d8c/collectors/f1f39d4f-9d5a-4d6e-9f9b-3c9f2b4a0c11",
		"displayName": "SyslogCollector1",
		"config": {
			"logType": "PAN_FIREWALL",
			"maxSecondsPerBatch": 10,
			"maxBytesPerBatch": "1048576",
			"syslogSettings": {
				"protocol": "TCP",
				"address": "0.0.0.0",
				"port": 10514,
				"bufferSize": "65536",
				"connectionTimeout": 60
			}
		},
		"state": "ACTIVE"
	}`

	var c Collector
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Config.MaxBytesPerBatch != 1048576 {
		t.Errorf("MaxBytesPerBatch = %d, want 1048576", c.Config.MaxBytesPerBatch)
	}
	if c.Config.SyslogSettings.BufferSize != 65536 {
		t.Errorf("BufferSize = %d, want 65536", c.Config.SyslogSettings.BufferSize)
	}
	if c.Config.SyslogSettings.ConnectionTimeout != 60 {
		t.Errorf("ConnectionTimeout = %d, want 60", c.Config.SyslogSettings.ConnectionTimeout)
	}

	// the int64-as-string convention holds on the way out too
	out, err := json.Marshal(c.Config)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{`"maxBytesPerBatch":"1048576"`, `"bufferSize":"65536"`, `"connectionTimeout":60`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("encoded config missing %s in %s", want, out)
		}
	}
}

func TestCollectorValidate(t *testing.T) {
	valid := Collector{
		DisplayName: "SyslogCollector1",
		Config: &CollectorConfig{
			LogType:        "PAN_FIREWALL",
			SyslogSettings: &SyslogSettings{Protocol: "TCP", Address: "0.0.0.0", Port: 10514},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	missingName := valid
	missingName.DisplayName = ""
	if err := missingName.Validate(); err == nil {
		t.Error("Validate should reject empty display name")
	}

	missingConfig := valid
	missingConfig.Config = nil
	if err := missingConfig.Validate(); err == nil {
		t.Error("Validate should reject missing config")
	}

	missingLogType := Collector{
		DisplayName: "C",
		Config:      &CollectorConfig{SyslogSettings: &SyslogSettings{Protocol: "TCP"}},
	}
	if err := missingLogType.Validate(); err == nil {
		t.Error("Validate should reject missing log type")
	}
}

func TestForwarderValidate(t *testing.T) {
	f := Forwarder{
		DisplayName: "TestForwarder",
		Config: &Config{
			UploadCompression: true,
			RegexFilters: []RegexFilter{
				{Description: "TestFilter", Regexp: ".*", Behavior: FilterAllow},
			},
		},
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	f.Config.RegexFilters[0].Behavior = "DROP"
	if err := f.Validate(); err == nil {
		t.Error("Validate should reject unknown filter behavior")
	}
}
