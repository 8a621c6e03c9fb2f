package rpc

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/utils"
	"github.com/MKhiriev/go-cloud-sync/internal/workers"
	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
)

const (
	qosLevel          = 1
	sessionExpiry     = 60
	unsubscribeWindow = 5 * time.Second
	clientIDPrefix    = "go-cloud-sync-"
)

// MQTTSubscriber is the autopaho implementation of [Subscriber]. It keeps
// one broker connection, re-establishes every subscription each time the
// connection comes up and routes publishes to handlers by exact topic.
//
// MQTTSubscriber is a [workers.Worker]: the connection lives while Run does.
type MQTTSubscriber struct {
	cfg        autopaho.ClientConfig
	codec      Codec
	dispatcher workers.Dispatcher

	mu       sync.RWMutex
	handlers map[string][]*subscription
	cm       *autopaho.ConnectionManager

	logger *logger.Logger
}

type subscription struct {
	fn func(Result)
}

// NewMQTTSubscriber builds a subscriber for the broker in streamCfg. The
// connection is opened by Run. Messages are wrapped with the codec named in
// streamCfg.Codec and handed to dispatcher.
func NewMQTTSubscriber(streamCfg config.ClientStream, dispatcher workers.Dispatcher, log *logger.Logger) (*MQTTSubscriber, error) {
	u, err := url.Parse(streamCfg.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid broker url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid broker url %q: scheme and host required", streamCfg.BrokerURL)
	}

	codec, err := CodecByName(streamCfg.Codec)
	if err != nil {
		return nil, err
	}
	if dispatcher == nil {
		dispatcher = workers.Inline{}
	}
	if log == nil {
		log = logger.Nop()
	}

	clientID := streamCfg.ClientID
	if clientID == "" {
		clientID = utils.NewClientID(clientIDPrefix)
	}

	m := &MQTTSubscriber{
		codec:      codec,
		dispatcher: dispatcher,
		handlers:   make(map[string][]*subscription),
		logger:     log,
	}

	m.cfg = autopaho.ClientConfig{
		ServerUrls:                    []*url.URL{u},
		KeepAlive:                     streamCfg.KeepAlive,
		CleanStartOnInitialConnection: true,
		SessionExpiryInterval:         sessionExpiry,
		OnConnectionUp:                m.onConnectionUp,
		OnConnectError: func(err error) {
			log.Warn().Err(err).Msg("error whilst attempting broker connection")
		},
		ClientConfig: paho.ClientConfig{
			ClientID: clientID,
			OnPublishReceived: []func(paho.PublishReceived) (bool, error){
				func(pr paho.PublishReceived) (bool, error) {
					m.route(pr.Packet.Topic, pr.Packet.Payload)
					return true, nil
				},
			},
			OnClientError: func(err error) {
				log.Error().Err(err).Msg("mqtt client error")
			},
			OnServerDisconnect: func(d *paho.Disconnect) {
				if d.Properties != nil {
					log.Warn().Str("reason", d.Properties.ReasonString).Msg("broker requested disconnect")
					return
				}
				log.Warn().Int("reason_code", int(d.ReasonCode)).Msg("broker requested disconnect")
			},
		},
	}

	return m, nil
}

// Run connects to the broker and keeps reconnecting until ctx is done.
func (m *MQTTSubscriber) Run(ctx context.Context) {
	cm, err := autopaho.NewConnection(ctx, m.cfg)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to start broker connection")
		return
	}

	m.mu.Lock()
	m.cm = cm
	m.mu.Unlock()

	<-ctx.Done()
	<-cm.Done()

	m.mu.Lock()
	m.cm = nil
	m.mu.Unlock()
	m.logger.Info().Msg("broker connection closed")
}

// Subscribe implements [Subscriber].
func (m *MQTTSubscriber) Subscribe(ctx context.Context, topic string, fn func(Result)) error {
	if fn == nil {
		return fmt.Errorf("subscribe %s: nil handler", topic)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sub := &subscription{fn: fn}

	m.mu.Lock()
	first := len(m.handlers[topic]) == 0
	m.handlers[topic] = append(m.handlers[topic], sub)
	cm := m.cm
	m.mu.Unlock()

	if first && cm != nil {
		go m.subscribe(ctx, cm, topic)
	}

	go func() {
		<-ctx.Done()
		m.remove(topic, sub)
	}()

	return nil
}

// Topics returns the topics that currently have at least one handler.
func (m *MQTTSubscriber) Topics() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topicsLocked()
}

// topicsLocked must be called with m.mu held.
func (m *MQTTSubscriber) topicsLocked() []string {
	topics := make([]string, 0, len(m.handlers))
	for t := range m.handlers {
		topics = append(topics, t)
	}
	return topics
}

func (m *MQTTSubscriber) onConnectionUp(cm *autopaho.ConnectionManager, _ *paho.Connack) {
	m.logger.Info().Msg("mqtt connection up")

	// Publishing cm and taking the topic snapshot under one lock means a
	// concurrent Subscribe is either in the snapshot or sees cm and
	// subscribes itself.
	m.mu.Lock()
	m.cm = cm
	topics := m.topicsLocked()
	m.mu.Unlock()

	if len(topics) == 0 {
		return
	}

	opts := make([]paho.SubscribeOptions, 0, len(topics))
	for _, t := range topics {
		opts = append(opts, paho.SubscribeOptions{Topic: t, QoS: qosLevel})
	}
	if _, err := cm.Subscribe(context.Background(), &paho.Subscribe{Subscriptions: opts}); err != nil {
		m.logger.Error().Err(err).Strs("topics", topics).Msg("failed to restore subscriptions")
	}
}

func (m *MQTTSubscriber) subscribe(ctx context.Context, cm *autopaho.ConnectionManager, topic string) {
	_, err := cm.Subscribe(ctx, &paho.Subscribe{
		Subscriptions: []paho.SubscribeOptions{{Topic: topic, QoS: qosLevel}},
	})
	if err != nil && ctx.Err() == nil {
		m.logger.Error().Err(err).Str("topic", topic).Msg("failed to subscribe")
	}
}

func (m *MQTTSubscriber) remove(topic string, sub *subscription) {
	m.mu.Lock()
	subs := m.handlers[topic]
	for i, s := range subs {
		if s == sub {
			subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	last := len(subs) == 0
	if last {
		delete(m.handlers, topic)
	} else {
		m.handlers[topic] = subs
	}
	cm := m.cm
	m.mu.Unlock()

	if !last || cm == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), unsubscribeWindow)
	defer cancel()
	if _, err := cm.Unsubscribe(ctx, &paho.Unsubscribe{Topics: []string{topic}}); err != nil {
		m.logger.Debug().Err(err).Str("topic", topic).Msg("unsubscribe failed")
	}
}

// route hands payload to every handler of topic through the dispatcher.
func (m *MQTTSubscriber) route(topic string, payload []byte) {
	m.mu.RLock()
	subs := append([]*subscription(nil), m.handlers[topic]...)
	m.mu.RUnlock()

	if len(subs) == 0 {
		m.logger.Debug().Str("topic", topic).Msg("message on topic without handlers")
		return
	}

	data := append([]byte(nil), payload...)
	for _, s := range subs {
		res := NewResult(data, m.codec)
		fn := s.fn
		if !m.dispatcher.Post(func() { fn(res) }) {
			m.logger.Warn().Str("topic", topic).Msg("dispatcher stopped, message dropped")
			return
		}
	}
}
