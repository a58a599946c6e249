package events

import "time"

const ReviewSubmittedTopic = "hr.review.submitted.v1"

type ReviewSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ReviewID   string    `json:"review_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	ReviewerID string    `json:"reviewer_id"`
	Period     string    `json:"period"`
	OccurredAt time.Time `json:"occurred_at"`
}
