package confgen

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chroniclelabs/chronicle-cli/forwarder"
)

func TestFieldNameFixedTranslations(t *testing.T) {
	tests := []struct {
		mechanism forwarder.Mechanism
		api       string
		want      string
	}{
		{forwarder.MechanismSplunk, "queryString", "query_string"},
		{forwarder.MechanismSplunk, "queryMode", "query_mode"},
		{forwarder.MechanismFile, "filePath", "file_path"},
		{forwarder.MechanismPcap, "networkInterface", "interface"},
		{forwarder.MechanismKafka, "groupId", "group_id"},
		{forwarder.MechanismKafka, "timeoutMs", "timeout_ms"},
		{forwarder.MechanismSyslog, "connectionTimeout", "connection_timeout_sec"},
		// common block fields resolve for any mechanism
		{forwarder.MechanismFile, "maxSecondsPerBatch", "batch_n_seconds"},
		{forwarder.MechanismSyslog, "maxBytesPerBatch", "batch_n_bytes"},
		{forwarder.MechanismKafka, "logType", "data_type"},
	}

	for _, tt := range tests {
		got, ok := FieldName(tt.mechanism, tt.api)
		if !ok {
			t.Errorf("FieldName(%s, %s) not found", tt.mechanism, tt.api)
			continue
		}
		if got != tt.want {
			t.Errorf("FieldName(%s, %s) = %q, want %q", tt.mechanism, tt.api, got, tt.want)
		}
	}
}

func TestFieldNameUnknownField(t *testing.T) {
	if _, ok := FieldName(forwarder.MechanismSplunk, "nonexistentField"); ok {
		t.Error("unknown fields must not resolve to a guessed name")
	}
	// splunk fields do not leak into other mechanisms
	if _, ok := FieldName(forwarder.MechanismFile, "queryString"); ok {
		t.Error("queryString must not resolve for the file mechanism")
	}
}

// yamlKeys collects the yaml tag names declared on a block struct.
func yamlKeys(t *testing.T, v any) map[string]bool {
	t.Helper()
	keys := make(map[string]bool)
	typ := reflect.TypeOf(v)
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			keys[name] = true
		}
	}
	return keys
}

// TestTablesMatchDocumentSchema pins the translation tables to the yaml
// tags that actually drive marshaling, so the two declarations cannot
// drift apart silently.
func TestTablesMatchDocumentSchema(t *testing.T) {
	blocks := map[forwarder.Mechanism]any{
		forwarder.MechanismFile:   FileBlock{},
		forwarder.MechanismSyslog: SyslogBlock{},
		forwarder.MechanismSplunk: SplunkBlock{},
		forwarder.MechanismPcap:   PcapBlock{},
		forwarder.MechanismKafka:  KafkaBlock{},
	}

	commonKeys := yamlKeys(t, CommonBlock{})
	for _, fm := range commonFields {
		if !commonKeys[fm.Conf] {
			t.Errorf("commonFields declares %q but CommonBlock has no such yaml key", fm.Conf)
		}
	}

	for mechanism, block := range blocks {
		keys := yamlKeys(t, block)
		for _, fm := range mechanismFields[mechanism] {
			if !keys[fm.Conf] {
				t.Errorf("%s table declares %q but its document block has no such yaml key", mechanism, fm.Conf)
			}
		}
	}

	// The syslog address fields fuse from protocol+address+port and are
	// deliberately absent from the tables.
	syslogKeys := yamlKeys(t, SyslogBlock{})
	if !syslogKeys["tcp_address"] || !syslogKeys["udp_address"] {
		t.Error("SyslogBlock must declare the fused address keys")
	}
}

func TestMechanismTablesCoverClosedSet(t *testing.T) {
	for _, m := range []forwarder.Mechanism{
		forwarder.MechanismFile,
		forwarder.MechanismSyslog,
		forwarder.MechanismSplunk,
		forwarder.MechanismPcap,
		forwarder.MechanismKafka,
	} {
		if len(mechanismFields[m]) == 0 {
			t.Errorf("no field table declared for mechanism %s", m)
		}
	}
}
