package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
)

// KafkaSink publishes the same events to a topic so other services
// (an analytics consumer, a second API gateway instance) can observe
// a run's progress without holding an HTTP connection open. This is
// additive to ChannelSink, never a replacement — the HTTP/SSE layer
// still reads from the channel sink per request.
type KafkaSink struct {
	writer *kafka.Writer
	log    *applogger.Logger
}

func NewKafkaSink(brokers []string, topic string, log *applogger.Logger) *KafkaSink {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
	}
	return &KafkaSink{writer: w, log: log}
}

func (s *KafkaSink) Publish(ctx context.Context, e Event) {
	e.Ts = time.Now()
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	s.write(ctx, raw)
}

func (s *KafkaSink) PublishFinal(ctx context.Context, data interface{}) {
	raw, err := json.Marshal(Final{Event: "finalData", Data: data})
	if err != nil {
		return
	}
	s.write(ctx, raw)
}

func (s *KafkaSink) write(ctx context.Context, raw []byte) {
	if err := s.writer.WriteMessages(ctx, kafka.Message{Value: raw}); err != nil {
		if s.log != nil {
			s.log.Warn("kafka event publish failed", "error", err)
		}
	}
}

func (s *KafkaSink) Close() { _ = s.writer.Close() }

// MultiSink fans a single publish out to several sinks, used when both
// the channel sink (for this request's HTTP response) and the Kafka
// sink (for external consumers) are active at once.
type MultiSink struct {
	Sinks []Sink
}

func (m MultiSink) Publish(ctx context.Context, e Event) {
	for _, s := range m.Sinks {
		s.Publish(ctx, e)
	}
}

func (m MultiSink) PublishFinal(ctx context.Context, data interface{}) {
	for _, s := range m.Sinks {
		s.PublishFinal(ctx, data)
	}
}

func (m MultiSink) Close() {
	for _, s := range m.Sinks {
		s.Close()
	}
}
