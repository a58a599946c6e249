package consumer

import (
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// NewReader membuat reader dengan setelan standar untuk semua consumer.
func NewReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: time.Second,
		StartOffset:    kafkago.FirstOffset,
	})
}
