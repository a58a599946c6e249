package events

import "time"

const GoalDeadlineApproachingTopic = "hr.goal.deadline.v1"

type GoalDeadlineApproachingEvent struct {
	EventType  string    `json:"event_type"`
	GoalID     string    `json:"goal_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Title      string    `json:"title"`
	DueDate    string    `json:"due_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
