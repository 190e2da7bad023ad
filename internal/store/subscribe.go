package store

import (
	"context"
	"fmt"

	"rent-kart/internal/model"
)

// Subscribe watches one customer record. The handler runs on a dedicated
// goroutine; each notification triggers a fresh fetch of the authoritative
// copy, so bursts of writes coalesce into the latest snapshot.
func (s *pgStore) Subscribe(ctx context.Context, customerID string, handler ChangeHandler) (CancelFunc, error) {
	return s.subscribe(ctx, fmt.Sprintf(channelRecord, customerID), handler)
}

// SubscribeCollection watches every customer record.
func (s *pgStore) SubscribeCollection(ctx context.Context, handler ChangeHandler) (CancelFunc, error) {
	return s.subscribe(ctx, channelCollection, handler)
}

func (s *pgStore) subscribe(ctx context.Context, channel string, handler ChangeHandler) (CancelFunc, error) {
	pubsub := s.rdb.Subscribe(ctx, channel)

	// Force the SUBSCRIBE round-trip so a broken connection fails here
	// instead of silently never delivering.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s.deliver(subCtx, msg.Payload, handler)
			}
		}
	}()

	return func() {
		cancel()
		if err := pubsub.Close(); err != nil {
			s.logger.Warn().Err(err).Str("channel", channel).Msg("failed to close subscription")
		}
	}, nil
}

// deliver fetches the changed record and hands a fresh snapshot to the
// handler. The message payload is the customer id.
func (s *pgStore) deliver(ctx context.Context, customerID string, handler ChangeHandler) {
	record, err := s.GetRecord(ctx, customerID)
	if err != nil {
		if err == model.ErrNotFound {
			return
		}
		s.logger.Warn().Err(err).Str("customer_id", customerID).Msg("failed to fetch changed record")
		return
	}
	handler(record)
}
