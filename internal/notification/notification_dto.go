package notification

type NotificationResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	RecipientEmail string  `json:"recipient_email"`
	Type           string  `json:"type"`
	Subject        string  `json:"subject"`
	Body           string  `json:"body"`
	ReadAt         *string `json:"read_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
