package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_ReceivesPublishedSnapshot(t *testing.T) {
	hub := NewHub[[]int]()
	defer hub.Close()

	feed, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish([]int{1, 2, 3})

	select {
	case snap := <-feed:
		assert.Equal(t, []int{1, 2, 3}, snap)
	case <-time.After(time.Second):
		t.Fatal("snapshot was not delivered")
	}
}

func TestPublish_LastWriteWinsForSlowSubscriber(t *testing.T) {
	hub := NewHub[int]()
	defer hub.Close()

	feed, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(1)
	hub.Publish(2)
	hub.Publish(3)

	snap := <-feed
	assert.Equal(t, 3, snap)
}

func TestCancel_StopsDeliveriesAndClosesFeed(t *testing.T) {
	hub := NewHub[int]()
	defer hub.Close()

	feed, cancel := hub.Subscribe()
	cancel()

	hub.Publish(42)

	v, open := <-feed
	assert.False(t, open, "feed should be closed after cancel")
	assert.Zero(t, v)

	// Cancelling twice must not panic.
	assert.NotPanics(t, cancel)
}

func TestClose_ClosesAllFeedsAndRejectsNewSubscribers(t *testing.T) {
	hub := NewHub[int]()

	feed1, cancel1 := hub.Subscribe()
	defer cancel1()

	hub.Close()

	_, open := <-feed1
	require.False(t, open)

	feed2, cancel2 := hub.Subscribe()
	defer cancel2()
	_, open = <-feed2
	assert.False(t, open, "subscribing after close should yield a closed feed")
}

func TestPublish_IndependentSubscribers(t *testing.T) {
	hub := NewHub[string]()
	defer hub.Close()

	feedA, cancelA := hub.Subscribe()
	feedB, cancelB := hub.Subscribe()
	defer cancelB()

	cancelA()
	hub.Publish("snapshot")

	_, open := <-feedA
	assert.False(t, open)

	select {
	case snap := <-feedB:
		assert.Equal(t, "snapshot", snap)
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber did not receive snapshot")
	}
}
