package changefeed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChannelFor(t *testing.T) {
	assert.Equal(t, "feed:budi@example.com", channelFor("budi@example.com"))
}

func TestFeed_Disabled(t *testing.T) {
	ctx := context.Background()

	t.Run("Nil Client Publish Is No-Op", func(t *testing.T) {
		feed := New(nil)
		feed.Publish(ctx, "budi@example.com", Event{
			Type:     EventTransferUpdated,
			RecordID: uuid.New(),
		})
	})

	t.Run("Nil Feed Publish Is No-Op", func(t *testing.T) {
		var feed *Feed
		feed.Publish(ctx, "budi@example.com", Event{Type: EventVehicleUpdated})
	})

	t.Run("Subscribe Fails Without Client", func(t *testing.T) {
		feed := New(nil)
		events, err := feed.Subscribe(ctx, "budi@example.com")
		assert.Error(t, err)
		assert.Nil(t, events)
	})
}
