package mqtt

import (
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/llehouerou/tytimer/internal/app"
	"github.com/llehouerou/tytimer/internal/errmsg"
)

const (
	connectTimeout = 3 * time.Second
	publishTimeout = 5 * time.Second
)

// Options configures a RealPublisher.
type Options struct {
	Broker   string
	Topic    string
	ClientID string
}

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client paho.Client
	topic  string
}

// NewRealPublisher creates a publisher for the given broker. The client keeps
// retrying in the background when the broker is not reachable within the
// connect timeout; only configuration errors are returned.
func NewRealPublisher(o Options) (*RealPublisher, error) {
	p := &RealPublisher{topic: o.Topic}

	opts := paho.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(p.topic+SuffixAvailability, Offline, 1, true).
		SetOnConnectHandler(func(c paho.Client) {
			slog.Info("mqtt connected", "broker", o.Broker)
			c.Publish(p.topic+SuffixAvailability, 1, true, Online)
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			slog.Warn("mqtt connection lost", "error", err)
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		slog.Warn(errmsg.Format(errmsg.OpConnectMQTT, fmt.Errorf("no answer from %s, retrying in background", o.Broker)))
		return p, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return p, nil
}

// SetStatus publishes the retained state message without waiting for the broker.
func (p *RealPublisher) SetStatus(s app.Status) error {
	payload, err := FormatPayload(s)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 0, retained so late subscribers see the current state
	token := p.client.Publish(p.topic+SuffixState, 0, true, payload)
	go func() {
		if !token.WaitTimeout(publishTimeout) {
			slog.Debug(errmsg.Format(errmsg.OpPublishStatus, fmt.Errorf("timeout")))
			return
		}
		if err := token.Error(); err != nil {
			slog.Debug(errmsg.Format(errmsg.OpPublishStatus, err))
		}
	}()
	return nil
}

// Close marks the timer offline and disconnects from the broker.
func (p *RealPublisher) Close() error {
	if p.client.IsConnectionOpen() {
		token := p.client.Publish(p.topic+SuffixAvailability, 1, true, Offline)
		token.WaitTimeout(time.Second)
	}
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
