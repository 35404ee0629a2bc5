package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// Message is one league notification. The engine produces the text; delivery
// is fire-and-forget.
type Message struct {
	ID       uuid.UUID  `json:"id"`
	LeagueID uuid.UUID  `json:"league_id"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
	Event    string     `json:"event"`
	Text     string     `json:"text"`
}

type JetStreamConfig struct {
	URL           string
	StreamName    string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
	MaxAge        time.Duration
}

func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		URL:           nats.DefaultURL,
		StreamName:    "LEAGUE_NOTIFICATIONS",
		SubjectPrefix: "league.notifications",
		MaxReconnects: -1, // infinite
		ReconnectWait: 2 * time.Second,
		MaxAge:        7 * 24 * time.Hour,
	}
}

// Dispatcher publishes league notifications to NATS JetStream. Chat and
// webhook consumers subscribe downstream; a publish failure is the caller's
// to log and ignore.
type Dispatcher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config JetStreamConfig
}

func NewDispatcher(cfg JetStreamConfig) (*Dispatcher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	d := &Dispatcher{nc: nc, js: js, config: cfg}
	if err := d.ensureStream(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	return d, nil
}

func (d *Dispatcher) ensureStream(ctx context.Context) error {
	sc := jetstream.StreamConfig{
		Name:      d.config.StreamName,
		Subjects:  []string{fmt.Sprintf("%s.>", d.config.SubjectPrefix)},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    d.config.MaxAge,
		Storage:   jetstream.FileStorage,
	}
	if _, err := d.js.Stream(ctx, d.config.StreamName); err != nil {
		if _, err := d.js.CreateStream(ctx, sc); err != nil {
			return fmt.Errorf("create stream: %w", err)
		}
		log.Info().Str("stream", d.config.StreamName).Msg("created JetStream stream")
	}
	return nil
}

// Notify publishes one message. The message ID doubles as the JetStream
// dedup key so a retried compensation cannot deliver twice.
func (d *Dispatcher) Notify(ctx context.Context, msg Message) error {
	subject := fmt.Sprintf("%s.%s", d.config.SubjectPrefix, msg.Event)

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	_, err = d.js.PublishMsg(ctx, &nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"Event":     []string{msg.Event},
			"League-ID": []string{msg.LeagueID.String()},
		},
	}, jetstream.WithMsgID(msg.ID.String()))
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	log.Debug().
		Str("subject", subject).
		Str("league_id", msg.LeagueID.String()).
		Msg("published notification")
	return nil
}

func (d *Dispatcher) Close() error {
	if d.nc != nil {
		d.nc.Close()
	}
	return nil
}
