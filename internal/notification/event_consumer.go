package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-hrms/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventConsumer menerjemahkan event domain menjadi baris notifikasi.
// Satu reader per topik, semuanya commit per pesan (at-least-once).
type EventConsumer struct {
	readers []*kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewEventConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *EventConsumer {
	l := zap.L().Named("notification.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.consumer")
	}

	newReader := func(topic string) *kafka.Reader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          topic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		})
	}

	return &EventConsumer{
		readers: []*kafka.Reader{
			newReader(events.LeaveApprovedTopic),
			newReader(events.ReviewSubmittedTopic),
			newReader(events.GoalDeadlineApproachingTopic),
		},
		service: service,
		logger:  l,
	}
}

func (c *EventConsumer) Start(ctx context.Context) {
	for _, reader := range c.readers {
		go c.consume(ctx, reader)
	}
}

func (c *EventConsumer) consume(ctx context.Context, reader *kafka.Reader) {
	topic := reader.Config().Topic
	log := c.logger.With(zap.String("topic", topic))
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification event failed", zap.Error(err))
			continue
		}

		companyID, employeeID, notifType, title, body, decodeErr := translateEvent(topic, msg.Value)
		if decodeErr != nil {
			log.Error("decode notification event failed", zap.Error(decodeErr))
			if commitErr := reader.CommitMessages(ctx, msg); commitErr != nil {
				log.Error("commit invalid notification event failed", zap.Error(commitErr))
			}
			continue
		}

		if _, err := c.service.Notify(ctx, companyID, employeeID, notifType, title, body); err != nil {
			log.Error("create notification failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification event failed", zap.Error(err))
		}
	}
}

func translateEvent(topic string, payload []byte) (companyID, employeeID, notifType, title, body string, err error) {
	switch topic {
	case events.LeaveApprovedTopic:
		var event events.LeaveApprovedEvent
		if err = json.Unmarshal(payload, &event); err != nil {
			return
		}
		companyID = event.CompanyID
		employeeID = event.EmployeeID
		notifType = "leave_approved"
		title = "Pengajuan cuti disetujui"
		body = fmt.Sprintf("Cuti %s kamu dari %s sampai %s sudah disetujui.",
			event.LeaveType, event.StartDate, event.EndDate)
		return
	case events.ReviewSubmittedTopic:
		var event events.ReviewSubmittedEvent
		if err = json.Unmarshal(payload, &event); err != nil {
			return
		}
		companyID = event.CompanyID
		employeeID = event.EmployeeID
		notifType = "review_submitted"
		title = "Performance review diterbitkan"
		body = fmt.Sprintf("Review performa untuk periode %s sudah diterbitkan.", event.Period)
		return
	case events.GoalDeadlineApproachingTopic:
		var event events.GoalDeadlineApproachingEvent
		if err = json.Unmarshal(payload, &event); err != nil {
			return
		}
		companyID = event.CompanyID
		employeeID = event.EmployeeID
		notifType = "goal_deadline_approaching"
		title = "Deadline goal mendekat"
		body = fmt.Sprintf("Goal %q jatuh tempo pada %s.", event.Title, event.DueDate)
		return
	default:
		err = fmt.Errorf("unknown notification topic: %s", topic)
		return
	}
}
