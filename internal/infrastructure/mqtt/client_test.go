package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
)

// testConfig returns broker settings for a local test broker.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Broker.Host = "127.0.0.1"
	cfg.Broker.ClientID = "sensorcore-test"
	cfg.Reconnect.MaxDelay = 5
	return cfg
}

// newDisconnectedClient builds a client that never dialed a broker.
// Used to exercise validation paths that short-circuit before any
// network activity.
func newDisconnectedClient() *Client {
	return &Client{
		cfg:           testConfig(),
		subscriptions: make(map[string]subscription),
	}
}

func decodeStatus(t *testing.T, payload []byte) statusPayload {
	t.Helper()
	var status statusPayload
	if err := json.Unmarshal(payload, &status); err != nil {
		t.Fatalf("status payload is not valid JSON: %v", err)
	}
	return status
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LineTopic != (Topics{}).TelemetryLines() {
		t.Errorf("default line topic = %q, want %q", cfg.LineTopic, Topics{}.TelemetryLines())
	}
	if cfg.Broker.Port != 1883 {
		t.Errorf("default port = %d, want 1883", cfg.Broker.Port)
	}
	if cfg.QoS != 1 {
		t.Errorf("default qos = %d, want 1", cfg.QoS)
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("plain tcp broker url", func(t *testing.T) {
		cfg := testConfig()

		opts := clientOptions(cfg)

		if len(opts.Servers) != 1 {
			t.Fatalf("expected 1 broker, got %d", len(opts.Servers))
		}
		if got := opts.Servers[0].String(); got != "tcp://127.0.0.1:1883" {
			t.Errorf("broker url = %v, want tcp://127.0.0.1:1883", got)
		}
		if opts.ClientID != "sensorcore-test" {
			t.Errorf("client id = %v, want sensorcore-test", opts.ClientID)
		}
	})

	t.Run("tls switches scheme to ssl", func(t *testing.T) {
		cfg := testConfig()
		cfg.Broker.TLS = true

		opts := clientOptions(cfg)

		if got := opts.Servers[0].Scheme; got != "ssl" {
			t.Errorf("broker scheme = %v, want ssl", got)
		}
		if opts.TLSConfig == nil {
			t.Error("expected TLS config to be set")
		}
	})

	t.Run("credentials applied when present", func(t *testing.T) {
		cfg := testConfig()
		cfg.Auth.Username = "collector"
		cfg.Auth.Password = "secret"

		opts := clientOptions(cfg)

		if opts.Username != "collector" {
			t.Errorf("username = %v, want collector", opts.Username)
		}
		if opts.Password != "secret" {
			t.Errorf("password not applied")
		}
	})
}

func TestConfigureWill(t *testing.T) {
	cfg := testConfig()
	opts := clientOptions(cfg)

	configureWill(opts, cfg.Broker.ClientID)

	if !opts.WillEnabled {
		t.Fatal("expected will to be enabled")
	}
	if opts.WillTopic != "sensorcore/system/status" {
		t.Errorf("will topic = %v, want sensorcore/system/status", opts.WillTopic)
	}

	will := decodeStatus(t, opts.WillPayload)
	if will.Status != "offline" {
		t.Errorf("will status = %q, want offline", will.Status)
	}
	if will.Reason != "connection_lost" {
		t.Errorf("will reason = %q, want connection_lost", will.Reason)
	}
}

func TestStatusPayloads(t *testing.T) {
	online := decodeStatus(t, onlineStatus("sensorcore-test"))
	if online.Status != "online" {
		t.Errorf("online status = %q, want online", online.Status)
	}
	if online.ClientID != "sensorcore-test" {
		t.Errorf("online client id = %q, want sensorcore-test", online.ClientID)
	}
	if online.Reason != "" {
		t.Errorf("online reason = %q, want empty", online.Reason)
	}
	if online.Timestamp == "" {
		t.Error("online payload missing timestamp")
	}

	offline := decodeStatus(t, offlineStatus("sensorcore-test"))
	if offline.Status != "offline" {
		t.Errorf("offline status = %q, want offline", offline.Status)
	}
	if offline.Reason != "shutdown" {
		t.Errorf("offline reason = %q, want shutdown", offline.Reason)
	}
}

func TestTopics(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "telemetry lines",
			got:      Topics{}.TelemetryLines(),
			expected: "sensorcore/telemetry/lines",
		},
		{
			name:     "device summary",
			got:      Topics{}.DeviceSummary("TEMP-001"),
			expected: "sensorcore/telemetry/summary/TEMP-001",
		},
		{
			name:     "system status",
			got:      Topics{}.SystemStatus(),
			expected: "sensorcore/system/status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("topic = %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestPublishValidation(t *testing.T) {
	c := newDisconnectedClient()

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{
			name:    "empty topic",
			topic:   "",
			payload: []byte("x"),
			qos:     1,
			wantErr: ErrInvalidTopic,
		},
		{
			name:    "invalid qos",
			topic:   "sensorcore/telemetry/lines",
			payload: []byte("x"),
			qos:     3,
			wantErr: ErrInvalidQoS,
		},
		{
			name:    "oversized payload",
			topic:   "sensorcore/telemetry/lines",
			payload: make([]byte, maxPayloadSize+1),
			qos:     1,
			wantErr: ErrPublishFailed,
		},
		{
			name:    "not connected",
			topic:   "sensorcore/telemetry/lines",
			payload: []byte("x"),
			qos:     1,
			wantErr: ErrNotConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublishRetainedNotConnected(t *testing.T) {
	c := newDisconnectedClient()

	err := c.PublishRetained(Topics{}.DeviceSummary("TEMP-001"), []byte(`{}`))
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("PublishRetained() error = %v, want ErrNotConnected", err)
	}
}

func TestSubscribeValidation(t *testing.T) {
	c := newDisconnectedClient()
	handler := func(_ string, _ []byte) error { return nil }

	tests := []struct {
		name    string
		topic   string
		qos     byte
		handler MessageHandler
		wantErr error
	}{
		{
			name:    "empty topic",
			topic:   "",
			qos:     1,
			handler: handler,
			wantErr: ErrInvalidTopic,
		},
		{
			name:    "invalid qos",
			topic:   "sensorcore/telemetry/lines",
			qos:     5,
			handler: handler,
			wantErr: ErrInvalidQoS,
		},
		{
			name:    "nil handler",
			topic:   "sensorcore/telemetry/lines",
			qos:     1,
			handler: nil,
			wantErr: ErrSubscribeFailed,
		},
		{
			name:    "not connected",
			topic:   "sensorcore/telemetry/lines",
			qos:     1,
			handler: handler,
			wantErr: ErrNotConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Subscribe(tt.topic, tt.qos, tt.handler)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Subscribe() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if c.HasSubscription("sensorcore/telemetry/lines") {
		t.Error("failed subscribes must not enter the replay set")
	}
}

func TestUnsubscribeValidation(t *testing.T) {
	c := newDisconnectedClient()

	if err := c.Unsubscribe(""); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Unsubscribe(\"\") error = %v, want ErrInvalidTopic", err)
	}

	if err := c.Unsubscribe("sensorcore/telemetry/lines"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Unsubscribe() error = %v, want ErrNotConnected", err)
	}
}

func TestCloseNilClient(t *testing.T) {
	c := &Client{}

	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil inner client error = %v", err)
	}
}

func TestHasSubscription(t *testing.T) {
	c := newDisconnectedClient()
	topic := Topics{}.TelemetryLines()

	if c.HasSubscription(topic) {
		t.Error("HasSubscription() = true for untracked topic")
	}

	c.subscriptions[topic] = subscription{topic: topic, qos: 1}

	if !c.HasSubscription(topic) {
		t.Error("HasSubscription() = false for tracked topic")
	}

	c.dropSubscription(topic)

	if c.HasSubscription(topic) {
		t.Error("HasSubscription() = true after drop")
	}
}
