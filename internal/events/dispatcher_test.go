package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var calls []string
	dispatcher.Subscribe(EventMatchCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("handler down")
	})
	dispatcher.Subscribe(EventMatchCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventMatchCreated})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishOnlyReachesSubscribedType(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)

	delivered := 0
	dispatcher.Subscribe(EventRecordCreated, func(ctx context.Context, e Event) error {
		delivered++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventMatchRemoved}))
	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventRecordCreated}))
	require.Equal(t, 1, delivered)
}
