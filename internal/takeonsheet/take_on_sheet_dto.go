package takeonsheet

// Section inputs use pointer fields so a shallow merge can distinguish
// "overwrite with value" from "field omitted, keep stored value".

type EmploymentInfoInput struct {
	Position       *string `json:"position"`
	Department     *string `json:"department"`
	StartDate      *string `json:"start_date"`
	EmploymentType *string `json:"employment_type"`
	LineManager    *string `json:"line_manager"`
	PayGrade       *string `json:"pay_grade"`
}

type PersonalDetailsInput struct {
	Title     *string `json:"title"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IDNumber  *string `json:"id_number"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Country   *string `json:"country"`
	Address   *string `json:"address"`
}

type SystemAccessInput struct {
	RequestedRole  *string  `json:"requested_role"`
	Modules        []string `json:"modules"`
	EmailAccount   *string  `json:"email_account"`
	EquipmentNotes *string  `json:"equipment_notes"`
}

type CreateTakeOnSheetRequest struct {
	EmploymentInfo  *EmploymentInfoInput `json:"employment_info"`
	AccessRequestID *string              `json:"access_request_id" binding:"omitempty,uuid"`
}

// UpdateTakeOnSheetRequest carries only the mergeable sections; documents
// go through their own upload path and are not mergeable here.
type UpdateTakeOnSheetRequest struct {
	EmploymentInfo  *EmploymentInfoInput  `json:"employment_info"`
	PersonalDetails *PersonalDetailsInput `json:"personal_details"`
	SystemAccess    *SystemAccessInput    `json:"system_access"`
}

type TransitionStatusRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
	Notes     string `json:"notes"`
}

type LinkEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type StatusChangeResponse struct {
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ChangedBy  string `json:"changed_by"`
	ChangedAt  string `json:"changed_at"`
	Notes      string `json:"notes,omitempty"`
}

type TakeOnSheetResponse struct {
	ID              string                 `json:"id"`
	CompanyID       string                 `json:"company_id"`
	SheetNumber     string                 `json:"sheet_number"`
	Status          string                 `json:"status"`
	EmploymentInfo  EmploymentInfo         `json:"employment_info"`
	PersonalDetails PersonalDetails        `json:"personal_details"`
	SystemAccess    SystemAccess           `json:"system_access"`
	Documents       Documents              `json:"documents"`
	StatusHistory   []StatusChangeResponse `json:"status_history"`
	AccessRequestID *string                `json:"access_request_id,omitempty"`
	EmployeeID      *string                `json:"employee_id,omitempty"`
	CreatedBy       string                 `json:"created_by"`
	UpdatedBy       *string                `json:"updated_by,omitempty"`
	CreatedAt       string                 `json:"created_at"`
	UpdatedAt       string                 `json:"updated_at"`
}

type StatusCounts struct {
	Draft           int64 `json:"draft"`
	PendingHRReview int64 `json:"pending_hr_review"`
	PendingITSetup  int64 `json:"pending_it_setup"`
	Complete        int64 `json:"complete"`
}

// EmployeeReadiness is the answer to "can an employee record be created from
// this sheet"; Reason is set whenever CanCreate is false.
type EmployeeReadiness struct {
	CanCreate bool   `json:"can_create"`
	Reason    string `json:"reason,omitempty"`
}
