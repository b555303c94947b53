package mqtt

import "fmt"

// Config holds the broker connection settings and the line topic the
// collector ingests from. The application configuration embeds it
// under the mqtt key; DefaultConfig supplies the values used when the
// section is absent.
type Config struct {
	Broker    BrokerConfig    `yaml:"broker"`
	Auth      AuthConfig      `yaml:"auth"`
	QoS       int             `yaml:"qos"`
	LineTopic string          `yaml:"line_topic"`
	Reconnect ReconnectConfig `yaml:"reconnect"`
}

// BrokerConfig identifies the broker endpoint.
type BrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// AuthConfig carries optional broker credentials. An empty username
// means anonymous access.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ReconnectConfig bounds the automatic reconnect backoff, in seconds.
type ReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// DefaultConfig returns the broker settings assumed when the
// configuration file leaves the mqtt section out. The line topic is
// derived from the topic builders so the default cannot drift from
// the hierarchy.
func DefaultConfig() Config {
	return Config{
		Broker: BrokerConfig{
			Host:     "localhost",
			Port:     1883,
			ClientID: "sensorcore",
		},
		QoS:       1,
		LineTopic: Topics{}.TelemetryLines(),
		Reconnect: ReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}
}

// brokerURL renders the paho address for the configured endpoint.
func (c Config) brokerURL() string {
	scheme := "tcp"
	if c.Broker.TLS {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Broker.Host, c.Broker.Port)
}
