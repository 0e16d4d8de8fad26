package relay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/quizclash/quizclash/go/internal/game/events"
	"github.com/rs/zerolog/log"
)

// Config holds NATS relay settings.
type Config struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConfig returns default relay configuration.
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		SubjectPrefix: "trivia.events",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Relay mirrors every room broadcast onto NATS so external consumers
// (spectator views, analytics) can follow games without holding a
// websocket seat. It implements session.EventSink.
type Relay struct {
	nc     *nats.Conn
	config Config
}

// New connects to NATS and returns a relay.
func New(config Config) (*Relay, error) {
	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &Relay{nc: nc, config: config}, nil
}

// Publish mirrors one room event. Failures are logged; game handling
// never blocks on the relay.
func (r *Relay) Publish(roomCode string, ev events.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("room_code", roomCode).Msg("failed to marshal relay event")
		return
	}

	subject := fmt.Sprintf("%s.%s", r.config.SubjectPrefix, roomCode)
	if err := r.nc.Publish(subject, data); err != nil {
		log.Error().
			Err(err).
			Str("subject", subject).
			Str("event_type", string(ev.Type)).
			Msg("failed to publish relay event")
	}
}

// Close drains and closes the NATS connection.
func (r *Relay) Close() {
	if err := r.nc.Drain(); err != nil {
		log.Error().Err(err).Msg("failed to drain NATS connection")
	}
}
