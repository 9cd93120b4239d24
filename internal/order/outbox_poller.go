package order

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// OutboxRepository is the slice of the repository the poller needs.
type OutboxRepository interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OutboxPoller drains the order outbox into Kafka. Events stay in the
// outbox until both the publish and the processed mark succeed, so a
// crash in between can only cause redelivery, never loss.
type OutboxPoller struct {
	tick   time.Duration
	batch  int
	repo   OutboxRepository
	writer messageWriter
}

func NewOutboxPoller(repo OutboxRepository, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "orders-outbox",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		tick:   time.Second,
		batch:  100,
		repo:   repo,
		writer: w,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close releases the Kafka writer. Call after Run has returned.
func (p *OutboxPoller) Close() error {
	if closer, ok := p.writer.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.GetUnprocessedEvents(ctx, p.batch)
	if err != nil {
		log.Printf("failed to fetch outbox events: %v", err)
		return
	}

	for _, event := range events {
		if errPublish := p.publish(ctx, event); errPublish != nil {
			log.Printf("failed to publish event id=%v: %v", event.ID, errPublish)
			continue
		}

		if errMark := p.repo.MarkEventAsProcessed(ctx, event.ID); errMark != nil {
			log.Printf("failed to mark event as processed id=%v: %v", event.ID, errMark)
			continue
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event *OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order id, for partition ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
