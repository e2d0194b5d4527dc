package events

import "time"

const AccessRequestReviewedTopic = "hr.access_request.reviewed.v1"

type AccessRequestReviewedEvent struct {
	EventType       string    `json:"event_type"`
	AccessRequestID string    `json:"access_request_id"`
	Email           string    `json:"email"`
	Decision        string    `json:"decision"`
	ReviewedBy      string    `json:"reviewed_by"`
	CompanyID       string    `json:"company_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}
