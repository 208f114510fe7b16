package coset

import (
	"context"

	"github.com/segmentio/kafka-go"
)

const OracleEventTopic = "coset_oracle_events"

// KWriter exports oracle lifecycle events for downstream consumers
// (dashboards, usage accounting). Optional; nil disables export.
type KWriter struct {
	w *kafka.Writer
}

func NewKWriter(topic string, uri string) (*KWriter, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(uri),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KWriter{
		w: w,
	}, nil
}

func (kw *KWriter) Write(body []byte) error {
	err := kw.w.WriteMessages(
		context.Background(),
		kafka.Message{
			Value: body,
		},
	)
	return err
}

func (kw *KWriter) Close() {
	kw.w.Close()
}
