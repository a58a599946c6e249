package goal

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultDeadlineWindowDays = 3

// DeadlineScanner dijalankan worker secara berkala. Event outbox memakai
// id deterministik per goal per hari, jadi scan ulang di hari yang sama
// tidak menghasilkan event ganda.
type DeadlineScanner struct {
	db         *sql.DB
	repo       Repository
	outbox     kafka.OutboxRepository
	windowDays int
	now        func() time.Time
	logger     *zap.Logger
}

type ScannerOption func(*DeadlineScanner)

func WithWindowDays(days int) ScannerOption {
	return func(s *DeadlineScanner) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

func WithScannerClock(now func() time.Time) ScannerOption {
	return func(s *DeadlineScanner) {
		if now != nil {
			s.now = now
		}
	}
}

func NewDeadlineScanner(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	opts ...ScannerOption,
) *DeadlineScanner {
	s := &DeadlineScanner{
		db:         db,
		repo:       repo,
		outbox:     outboxRepo,
		windowDays: DefaultDeadlineWindowDays,
		now:        time.Now,
		logger:     zap.L().Named("goal.deadline_scanner"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DeadlineScanner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("goal deadline scanner started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("goal deadline scanner stopped")
			return
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				s.logger.Error("goal deadline scan failed", zap.Error(err))
			}
		}
	}
}

func (s *DeadlineScanner) Scan(ctx context.Context) error {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, s.windowDays)

	goals, err := s.repo.FindActiveDueWithin(ctx, today, horizon)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qoutbox := s.outbox.WithTx(tx)
	queued := 0

	for _, g := range goals {
		event := events.GoalDeadlineApproachingEvent{
			EventType:  "goal_deadline_approaching",
			GoalID:     g.ID.String(),
			CompanyID:  g.CompanyID.String(),
			EmployeeID: g.EmployeeID.String(),
			Title:      g.Title,
			DueDate:    g.DueDate.Format("2006-01-02"),
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := qoutbox.Create(ctx, kafka.OutboxEvent{
			ID:            deadlineEventID(g.ID.String(), today),
			AggregateType: "goal",
			AggregateID:   g.ID.String(),
			EventType:     event.EventType,
			Topic:         events.GoalDeadlineApproachingTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("queue goal deadline event failed",
				zap.String("goal_id", g.ID.String()),
				zap.Error(err),
			)
			return err
		}
		queued++
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("goal deadline scan finished",
		zap.Int("goals_due", len(goals)),
		zap.Int("events_queued", queued),
	)
	return nil
}

func deadlineEventID(goalID string, day time.Time) string {
	seed := goalID + "|" + day.Format("2006-01-02")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}
