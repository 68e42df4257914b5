package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/models"
)

const (
	streamBuffer = 256

	reconnectBase = 250 * time.Millisecond
	reconnectCap  = 5 * time.Second
)

// eventSource is what a transport must provide to drive a subscription.
type eventSource interface {
	// fetchRows returns the full table and the cursor it reflects.
	fetchRows(ctx context.Context) ([]models.WorldObject, uint64, error)

	// fetchEvents returns events after the cursor, waiting for a while if
	// there are none. An empty batch is not an error.
	fetchEvents(ctx context.Context, after uint64) ([]models.RowEvent, uint64, error)
}

type linkState int

const (
	linkUnknown linkState = iota
	linkUp
	linkDown
)

type subscription struct {
	src        eventSource
	out        chan models.RemoteMessage
	newBackoff func() retry.Backoff
	state      linkState
	logger     *logger.Logger
}

func defaultBackoff() retry.Backoff {
	b := retry.NewExponential(reconnectBase)
	b = retry.WithJitterPercent(10, b)
	return retry.WithCappedDuration(reconnectCap, b)
}

// subscribe runs the subscription loop for src until ctx is done.
func subscribe(ctx context.Context, src eventSource, newBackoff func() retry.Backoff, log *logger.Logger) <-chan models.RemoteMessage {
	if newBackoff == nil {
		newBackoff = defaultBackoff
	}
	s := &subscription{
		src:        src,
		out:        make(chan models.RemoteMessage, streamBuffer),
		newBackoff: newBackoff,
		logger:     log,
	}
	go s.run(ctx)
	return s.out
}

func (s *subscription) run(ctx context.Context) {
	defer close(s.out)

	for ctx.Err() == nil {
		rows, seq, err := s.connect(ctx)
		if err != nil {
			return
		}

		s.state = linkUp
		s.logger.Info().
			Str("func", "subscription.run").
			Int("rows", len(rows)).
			Uint64("seq", seq).
			Msg("subscription applied")
		if !s.send(ctx, models.RemoteMessage{Kind: models.MessageInitialRows, Rows: rows}) {
			return
		}

		err = s.follow(ctx, seq)
		switch {
		case ctx.Err() != nil:
			return
		case errors.Is(err, ErrEventsExpired):
			s.logger.Warn().Err(err).Str("func", "subscription.run").Msg("event cursor expired, re-reading rows")
		default:
			s.lost(ctx, err)
		}
	}
}

// connect fetches the initial rows, retrying with backoff until it succeeds
// or ctx is done.
func (s *subscription) connect(ctx context.Context) ([]models.WorldObject, uint64, error) {
	var (
		rows []models.WorldObject
		seq  uint64
	)
	err := retry.Do(ctx, s.newBackoff(), func(ctx context.Context) error {
		var err error
		rows, seq, err = s.src.fetchRows(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.lost(ctx, err)
			return retry.RetryableError(err)
		}
		return nil
	})
	return rows, seq, err
}

func (s *subscription) follow(ctx context.Context, seq uint64) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		events, next, err := s.src.fetchEvents(ctx, seq)
		if err != nil {
			return err
		}
		for _, ev := range events {
			if !s.send(ctx, models.RemoteMessage{Kind: models.MessageRowEvent, Event: ev}) {
				return ctx.Err()
			}
		}
		seq = next
	}
}

// lost reports a connection failure once per outage.
func (s *subscription) lost(ctx context.Context, err error) {
	if s.state == linkDown {
		return
	}
	s.state = linkDown
	s.logger.Warn().Err(err).Str("func", "subscription.lost").Msg("remote store disconnected")
	s.send(ctx, models.RemoteMessage{Kind: models.MessageDisconnected, Err: err})
}

func (s *subscription) send(ctx context.Context, msg models.RemoteMessage) bool {
	select {
	case s.out <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}
