package mqtt

// Topic hierarchy roots. Everything the collector touches lives under
// the sensorcore prefix.
const (
	TopicPrefix          = "sensorcore"
	TopicPrefixTelemetry = TopicPrefix + "/telemetry"
	TopicPrefixSystem    = TopicPrefix + "/system"
)

// Topics builds the topic names the collector publishes and
// subscribes to. Going through the builders keeps naming in one
// place; the default line topic in the configuration is derived from
// TelemetryLines.
type Topics struct{}

// TelemetryLines is the topic field gateways publish raw device lines
// to. Payloads are one or more newline-separated records in the
// device wire format.
func (Topics) TelemetryLines() string {
	return TopicPrefixTelemetry + "/lines"
}

// DeviceSummary is the retained per-device aggregate topic, one topic
// per device identifier.
func (Topics) DeviceSummary(deviceID string) string {
	return TopicPrefixTelemetry + "/summary/" + deviceID
}

// SystemStatus is the retained collector status topic, also used for
// the last will.
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
