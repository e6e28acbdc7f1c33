// Package realtime feeds remote row changes published through Postgres
// LISTEN/NOTIFY into the tracker.
package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/simaogato/finpulse-backend/internal/domain"
)

// Applier receives decoded change events
// Load is called after the connection was re-established, since
// notifications sent while disconnected are lost
type Applier interface {
	ApplyChange(event domain.ChangeEvent) bool
	Load(ctx context.Context) error
}

// Config holds the listener connection settings
type Config struct {
	ConnString           string
	Channel              string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
	PingInterval         time.Duration
}

// Listener subscribes to the change channel and forwards every change
type Listener struct {
	cfg     Config
	applier Applier
	logger  zerolog.Logger
}

// NewListener creates a new Listener
func NewListener(cfg Config, applier Applier, logger zerolog.Logger) *Listener {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 90 * time.Second
	}
	return &Listener{
		cfg:     cfg,
		applier: applier,
		logger:  logger.With().Str("component", "realtime").Str("channel", cfg.Channel).Logger(),
	}
}

// Run listens until ctx is cancelled
func (l *Listener) Run(ctx context.Context) error {
	pl := pq.NewListener(l.cfg.ConnString, l.cfg.MinReconnectInterval, l.cfg.MaxReconnectInterval, l.onEvent)
	defer pl.Close()

	if err := pl.Listen(l.cfg.Channel); err != nil {
		return fmt.Errorf("failed to listen on channel %s: %w", l.cfg.Channel, err)
	}
	l.logger.Info().Msg("listening for remote changes")

	return l.consume(ctx, pl.Notify, pl.Ping)
}

func (l *Listener) onEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		l.logger.Debug().Msg("listener connected")
	case pq.ListenerEventDisconnected:
		l.logger.Warn().Err(err).Msg("listener disconnected")
	case pq.ListenerEventReconnected:
		l.logger.Info().Msg("listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Error().Err(err).Msg("listener connection attempt failed")
	}
}

// consume applies notifications until ctx is done or the channel is closed
// A nil notification means the connection was lost and re-established.
func (l *Listener) consume(ctx context.Context, notifications <-chan *pq.Notification, ping func() error) error {
	ticker := time.NewTicker(l.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case n, ok := <-notifications:
			if !ok {
				return nil
			}
			if n == nil {
				l.logger.Info().Msg("reloading snapshot after reconnect")
				if err := l.applier.Load(ctx); err != nil {
					l.logger.Error().Err(err).Msg("failed to reload snapshot")
				}
				continue
			}
			l.handle(n.Extra)

		case <-ticker.C:
			if err := ping(); err != nil {
				l.logger.Warn().Err(err).Msg("listener ping failed")
			}
		}
	}
}

func (l *Listener) handle(extra string) {
	event, err := Decode([]byte(extra))
	if err != nil {
		l.logger.Warn().Err(err).Msg("dropping change notification")
		return
	}

	changed := l.applier.ApplyChange(event)
	l.logger.Debug().
		Str("table", string(event.Table)).
		Str("type", string(event.Type)).
		Bool("changed", changed).
		Msg("applied remote change")
}
