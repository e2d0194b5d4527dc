package takeonsheet

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft           = "draft"
	StatusPendingHRReview = "pending_hr_review"
	StatusPendingITSetup  = "pending_it_setup"
	StatusComplete        = "complete"
)

// validNextStatuses is the forward-only onboarding chain. No skips, no
// backward moves, no self-loops.
var validNextStatuses = map[string][]string{
	StatusDraft:           {StatusPendingHRReview},
	StatusPendingHRReview: {StatusPendingITSetup},
	StatusPendingITSetup:  {StatusComplete},
	StatusComplete:        {},
}

// AllowedNextStatuses returns the valid forward moves from status. The slice
// is empty for complete and for unknown statuses.
func AllowedNextStatuses(status string) []string {
	next := validNextStatuses[status]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

func isValidTransition(from, to string) bool {
	for _, s := range validNextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	_, ok := validNextStatuses[status]
	return ok
}

type EmploymentInfo struct {
	Position       string `json:"position"`
	Department     string `json:"department"`
	StartDate      string `json:"start_date"`
	EmploymentType string `json:"employment_type"`
	LineManager    string `json:"line_manager"`
	PayGrade       string `json:"pay_grade"`
}

type PersonalDetails struct {
	Title     string `json:"title"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IDNumber  string `json:"id_number"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Address   string `json:"address"`
}

type SystemAccess struct {
	RequestedRole  string   `json:"requested_role"`
	Modules        []string `json:"modules"`
	EmailAccount   string   `json:"email_account"`
	EquipmentNotes string   `json:"equipment_notes"`
}

type Documents struct {
	IDDocument     string `json:"id_document"`
	ProofOfAddress string `json:"proof_of_address"`
	BankLetter     string `json:"bank_letter"`
	SignedContract string `json:"signed_contract"`
}

type StatusChange struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
	Notes      string    `json:"notes,omitempty"`
}

// StatusHistory is append-only; each entry's FromStatus equals the sheet's
// status immediately before that transition.
type StatusHistory []StatusChange

// scanJSONB decodes a jsonb column into dst, failing loudly on corrupt or
// legacy documents instead of letting zero values propagate.
func scanJSONB(dst any, value any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("decode take-on sheet document: %w", err)
		}
		return nil
	case string:
		if err := json.Unmarshal([]byte(v), dst); err != nil {
			return fmt.Errorf("decode take-on sheet document: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("decode take-on sheet document: unsupported source type %T", value)
	}
}

func (e *EmploymentInfo) Scan(value any) error { return scanJSONB(e, value) }
func (e EmploymentInfo) Value() (driver.Value, error) { return json.Marshal(e) }

func (p *PersonalDetails) Scan(value any) error { return scanJSONB(p, value) }
func (p PersonalDetails) Value() (driver.Value, error) { return json.Marshal(p) }

func (s *SystemAccess) Scan(value any) error { return scanJSONB(s, value) }
func (s SystemAccess) Value() (driver.Value, error) { return json.Marshal(s) }

func (d *Documents) Scan(value any) error { return scanJSONB(d, value) }
func (d Documents) Value() (driver.Value, error) { return json.Marshal(d) }

func (h *StatusHistory) Scan(value any) error { return scanJSONB(h, value) }
func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal(StatusHistory{})
	}
	return json.Marshal(h)
}

type TakeOnSheet struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_take_on_sheets_company_status"`
	SheetNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_take_on_sheet_number"`
	Status      string    `gorm:"type:varchar(30);not null;default:'draft';index:idx_take_on_sheets_company_status"`

	EmploymentInfo  EmploymentInfo  `gorm:"type:jsonb;not null"`
	PersonalDetails PersonalDetails `gorm:"type:jsonb;not null"`
	SystemAccess    SystemAccess    `gorm:"type:jsonb;not null"`
	Documents       Documents       `gorm:"type:jsonb;not null"`
	StatusHistory   StatusHistory   `gorm:"type:jsonb;not null"`

	AccessRequestID *uuid.UUID `gorm:"type:uuid;index:idx_take_on_sheets_access_request"`
	EmployeeID      *uuid.UUID `gorm:"type:uuid"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null;index"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// defaultPersonalDetails returns a structurally complete section: every
// field present, placeholders where the business has a sensible default.
func defaultPersonalDetails() PersonalDetails {
	return PersonalDetails{
		Title:   "Mr",
		Country: "South Africa",
	}
}

func defaultSystemAccess() SystemAccess {
	return SystemAccess{
		Modules: []string{},
	}
}
