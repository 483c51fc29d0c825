// Package events publishes post lifecycle events to Kafka. Publishing
// is optional: with no brokers configured the service runs with the
// no-op publisher and nothing is emitted.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	kgo "github.com/segmentio/kafka-go"
)

const TopicPostCreated = "posts.created"

type PostCreated struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

type Publisher interface {
	PostCreated(ctx context.Context, e PostCreated) error
	Close() error
}

type kafkaPublisher struct {
	w *kgo.Writer
}

// NewKafka builds a publisher for the given comma-separated broker list.
// The writer connects lazily, so a broker that is down at startup only
// fails individual publishes.
func NewKafka(brokers string) Publisher {
	addrs := strings.Split(brokers, ",")
	for i := range addrs {
		addrs[i] = strings.TrimSpace(addrs[i])
	}
	w := &kgo.Writer{
		Addr:                   kgo.TCP(addrs...),
		Topic:                  TopicPostCreated,
		Balancer:               &kgo.LeastBytes{},
		RequiredAcks:           kgo.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &kafkaPublisher{w: w}
}

func (p *kafkaPublisher) PostCreated(ctx context.Context, e PostCreated) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kgo.Message{
		Key:   []byte(e.ID.String()),
		Value: b,
		Time:  time.Now(),
	})
}

func (p *kafkaPublisher) Close() error { return p.w.Close() }

type noop struct{}

func NewNoop() Publisher { return noop{} }

func (noop) PostCreated(context.Context, PostCreated) error { return nil }
func (noop) Close() error                                   { return nil }
