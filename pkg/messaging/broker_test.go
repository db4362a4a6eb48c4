package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopBroker(t *testing.T) {
	b := NewNopBroker()
	assert.NoError(t, b.Publish(context.Background(), "hms.events", Message{ID: "1"}))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := b.Subscribe(ctx, "hms.events")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription channel not closed after cancel")
	}
	assert.NoError(t, b.Close())
}
