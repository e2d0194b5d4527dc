package events

import "time"

const TakeOnSheetCompletedTopic = "hr.take_on_sheet.completed.v1"

type TakeOnSheetCompletedEvent struct {
	EventType   string    `json:"event_type"`
	SheetID     string    `json:"sheet_id"`
	SheetNumber string    `json:"sheet_number"`
	CompanyID   string    `json:"company_id"`
	ChangedBy   string    `json:"changed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
