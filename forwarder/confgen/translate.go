package confgen

import "github.com/chroniclelabs/chronicle-cli/forwarder"

// FieldMapping pairs an API field name (camelCase) with its fixed config
// file counterpart (snake_case). Translations are declared, never derived
// from string manipulation, so they can be audited field by field.
type FieldMapping struct {
	API  string
	Conf string
}

// commonFields apply to every collector's common block.
var commonFields = []FieldMapping{
	{API: "logType", Conf: "data_type"},
	{API: "maxSecondsPerBatch", Conf: "batch_n_seconds"},
	{API: "maxBytesPerBatch", Conf: "batch_n_bytes"},
}

// mechanismFields lists the one-to-one renames per mechanism. The syslog
// address/port pair is not listed: it fuses into tcp_address or udp_address
// depending on the declared protocol (see syslogBlock).
var mechanismFields = map[forwarder.Mechanism][]FieldMapping{
	forwarder.MechanismFile: {
		{API: "filePath", Conf: "file_path"},
	},
	forwarder.MechanismSyslog: {
		{API: "connectionTimeout", Conf: "connection_timeout_sec"},
	},
	forwarder.MechanismSplunk: {
		{API: "host", Conf: "host"},
		{API: "port", Conf: "port"},
		{API: "minimumWindowSize", Conf: "minimum_window_size"},
		{API: "maximumWindowSize", Conf: "maximum_window_size"},
		{API: "queryString", Conf: "query_string"},
		{API: "queryMode", Conf: "query_mode"},
		{API: "certIgnored", Conf: "cert_ignored"},
	},
	forwarder.MechanismPcap: {
		{API: "networkInterface", Conf: "interface"},
		{API: "bpf", Conf: "bpf"},
	},
	forwarder.MechanismKafka: {
		{API: "topic", Conf: "topic"},
		{API: "groupId", Conf: "group_id"},
		{API: "timeoutMs", Conf: "timeout_ms"},
		{API: "brokers", Conf: "brokers"},
	},
}

// FieldName translates an API field name to its config file name for the
// given mechanism. Common block fields resolve for every mechanism.
func FieldName(m forwarder.Mechanism, apiField string) (string, bool) {
	for _, fm := range commonFields {
		if fm.API == apiField {
			return fm.Conf, true
		}
	}
	for _, fm := range mechanismFields[m] {
		if fm.API == apiField {
			return fm.Conf, true
		}
	}
	return "", false
}
