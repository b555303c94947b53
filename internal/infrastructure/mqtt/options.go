package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	// connectTimeout bounds the initial broker handshake.
	connectTimeout = 10 * time.Second

	// tokenTimeout bounds publish, subscribe and unsubscribe
	// acknowledgements.
	tokenTimeout = 5 * time.Second

	// disconnectQuiesce is the grace period, in milliseconds, given
	// to in-flight operations on shutdown.
	disconnectQuiesce = 1000

	// keepAlive is the PING cadence used to detect dead connections.
	keepAlive = 60 * time.Second

	maxQoS = 2
)

// clientOptions maps the collector configuration onto paho options:
// endpoint, credentials, clean sessions and a bounded reconnect
// backoff.
func clientOptions(cfg Config) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.brokerURL())
	opts.SetClientID(cfg.Broker.ClientID)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	// The client replays its own subscriptions after a reconnect, so
	// no broker-side session state is wanted.
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second)
	opts.SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAlive)

	if cfg.Broker.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	return opts
}

// statusPayload is the retained collector status published on the
// system status topic. Reason distinguishes a graceful shutdown from
// a broker-detected crash.
type statusPayload struct {
	Status    string `json:"status"`
	ClientID  string `json:"client_id"`
	Reason    string `json:"reason,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (p statusPayload) encode() []byte {
	p.Timestamp = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(p)
	if err != nil {
		// A flat struct of strings; Marshal cannot fail on it.
		return nil
	}
	return data
}

// onlineStatus is published after every successful (re)connect.
func onlineStatus(clientID string) []byte {
	return statusPayload{Status: "online", ClientID: clientID}.encode()
}

// offlineStatus is published on graceful shutdown.
func offlineStatus(clientID string) []byte {
	return statusPayload{Status: "offline", ClientID: clientID, Reason: "shutdown"}.encode()
}

// configureWill registers the crash status as the broker-published
// last will, retained so late subscribers still see it.
func configureWill(opts *pahomqtt.ClientOptions, clientID string) {
	will := statusPayload{Status: "offline", ClientID: clientID, Reason: "connection_lost"}
	opts.SetBinaryWill(Topics{}.SystemStatus(), will.encode(), 1, true)
}
