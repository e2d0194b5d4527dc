package accessrequest

type CreateAccessRequestRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type ApproveAccessRequestRequest struct {
	AssignedRole      string  `json:"assigned_role" binding:"required"`
	AssignedCompanyID string  `json:"assigned_company_id" binding:"required,uuid"`
	LinkedEmployeeID  *string `json:"linked_employee_id" binding:"omitempty,uuid"`
	// OverrideOnboarding skips the take-on sheet completeness gate for
	// legacy requests that predate onboarding sheets.
	OverrideOnboarding bool `json:"override_onboarding"`
}

type AccessRequestResponse struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Status            string  `json:"status"`
	ReviewedAt        *string `json:"reviewed_at,omitempty"`
	ReviewedBy        *string `json:"reviewed_by,omitempty"`
	AssignedRole      *string `json:"assigned_role,omitempty"`
	AssignedCompanyID *string `json:"assigned_company_id,omitempty"`
	LinkedEmployeeID  *string `json:"linked_employee_id,omitempty"`
	TakeOnSheetID     *string `json:"take_on_sheet_id,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

type PendingCountResponse struct {
	Count int64 `json:"count"`
}
