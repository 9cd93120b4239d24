package order

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	m        sync.Mutex
	messages []kafka.Message
	err      error
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.m.Lock()
	defer w.m.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *mockWriter) written() []kafka.Message {
	w.m.Lock()
	defer w.m.Unlock()
	out := make([]kafka.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

func pollerWith(repo OutboxRepository, writer messageWriter) *OutboxPoller {
	return &OutboxPoller{
		tick:   time.Millisecond,
		batch:  100,
		repo:   repo,
		writer: writer,
	}
}

func TestProcessUnpublishedEvents_PublishesAndMarks(t *testing.T) {
	repo := newMockRepository()
	repo.events = []*OutboxEvent{
		{ID: 1, AggregateID: "order-1", EventType: "order.placed", Payload: []byte(`{"order_id":"order-1"}`)},
		{ID: 2, AggregateID: "order-2", EventType: "order.placed", Payload: []byte(`{"order_id":"order-2"}`)},
	}
	writer := &mockWriter{}
	sut := pollerWith(repo, writer)

	sut.processUnpublishedEvents(context.Background())

	msgs := writer.written()
	require.Len(t, msgs, 2)
	assert.Equal(t, []byte("order-1"), msgs[0].Key)
	assert.Equal(t, []byte(`{"order_id":"order-1"}`), msgs[0].Value)
	require.Len(t, msgs[0].Headers, 1)
	assert.Equal(t, "event_type", msgs[0].Headers[0].Key)
	assert.Equal(t, []byte("order.placed"), msgs[0].Headers[0].Value)

	assert.Empty(t, repo.events, "published events must be marked processed")
}

func TestProcessUnpublishedEvents_PublishFailureLeavesEventPending(t *testing.T) {
	repo := newMockRepository()
	repo.events = []*OutboxEvent{
		{ID: 1, AggregateID: "order-1", EventType: "order.placed", Payload: []byte(`{}`)},
	}
	writer := &mockWriter{err: fmt.Errorf("broker unavailable")}
	sut := pollerWith(repo, writer)

	sut.processUnpublishedEvents(context.Background())

	require.Len(t, repo.events, 1, "failed publish must keep the event for retry")

	// Broker recovers; the next pass drains it.
	writer.err = nil
	sut.processUnpublishedEvents(context.Background())
	assert.Empty(t, repo.events)
	assert.Len(t, writer.written(), 1)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := newMockRepository()
	writer := &mockWriter{}
	sut := pollerWith(repo, writer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sut.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}
