// Package roles holds the static role/permission data consumed by the
// take-on sheet store and the approval flow. The table is built once at
// startup and injected; nothing mutates it afterwards.
package roles

const (
	RoleSystemAdmin  = "System Admin"
	RoleHRAdmin      = "HR Admin"
	RoleHRManager    = "HR Manager"
	RoleLineManager  = "Line Manager"
	RolePayrollAdmin = "Payroll Admin"
	RoleEmployee     = "Employee"
)

// Take-on sheet sections.
const (
	SectionEmploymentInfo  = "employment_info"
	SectionPersonalDetails = "personal_details"
	SectionSystemAccess    = "system_access"
	SectionDocuments       = "documents"
)

const (
	PermAccessRequestRead   = "access_request:read"
	PermAccessRequestReview = "access_request:review"
	PermSheetRead           = "take_on_sheet:read"
	PermSheetCreate         = "take_on_sheet:create"
	PermSheetUpdate         = "take_on_sheet:update"
	PermSheetDelete         = "take_on_sheet:delete"
	PermSheetTransition     = "take_on_sheet:transition"
	PermSheetLinkEmployee   = "take_on_sheet:link_employee"
	PermNotificationRead    = "notification:read"
)

// TransitionLevel ranks how far along the onboarding chain a role may push
// a sheet. The chain itself lives in the takeonsheet package; the level only
// decides which of the valid forward moves the role is trusted with.
type TransitionLevel int

const (
	// TransitionNone forbids every transition.
	TransitionNone TransitionLevel = iota
	// TransitionInitiate allows draft -> pending_hr_review only.
	TransitionInitiate
	// TransitionHRReview additionally allows pending_hr_review -> pending_it_setup.
	TransitionHRReview
	// TransitionAll allows any valid forward transition.
	TransitionAll
)

// Definition is the per-role row of the static table.
type Definition struct {
	Permissions []string
	// SectionEdit maps a sheet section to the statuses in which the role
	// may edit it. A missing section means no edit right at all.
	SectionEdit map[string][]string
	Level       TransitionLevel
}

type Table struct {
	defs map[string]Definition
}

const (
	statusDraft           = "draft"
	statusPendingHRReview = "pending_hr_review"
	statusPendingITSetup  = "pending_it_setup"
	statusComplete        = "complete"
)

var allStatuses = []string{statusDraft, statusPendingHRReview, statusPendingITSetup, statusComplete}

var allPermissions = []string{
	PermAccessRequestRead,
	PermAccessRequestReview,
	PermSheetRead,
	PermSheetCreate,
	PermSheetUpdate,
	PermSheetDelete,
	PermSheetTransition,
	PermSheetLinkEmployee,
	PermNotificationRead,
}

func fullSectionEdit() map[string][]string {
	return map[string][]string{
		SectionEmploymentInfo:  allStatuses,
		SectionPersonalDetails: allStatuses,
		SectionSystemAccess:    allStatuses,
		SectionDocuments:       allStatuses,
	}
}

// NewTable builds the immutable role table. Callers share one instance.
func NewTable() *Table {
	return &Table{defs: map[string]Definition{
		RoleSystemAdmin: {
			Permissions: allPermissions,
			SectionEdit: fullSectionEdit(),
			Level:       TransitionAll,
		},
		RoleHRAdmin: {
			Permissions: allPermissions,
			SectionEdit: fullSectionEdit(),
			Level:       TransitionAll,
		},
		RoleHRManager: {
			Permissions: []string{
				PermAccessRequestRead,
				PermSheetRead,
				PermSheetCreate,
				PermSheetUpdate,
				PermSheetTransition,
			},
			SectionEdit: map[string][]string{
				SectionEmploymentInfo:  {statusDraft, statusPendingHRReview},
				SectionPersonalDetails: {statusDraft, statusPendingHRReview},
				SectionDocuments:       {statusDraft, statusPendingHRReview},
			},
			Level: TransitionHRReview,
		},
		RoleLineManager: {
			Permissions: []string{
				PermSheetRead,
				PermSheetCreate,
				PermSheetUpdate,
				PermSheetTransition,
			},
			SectionEdit: map[string][]string{
				SectionEmploymentInfo:  {statusDraft},
				SectionPersonalDetails: {statusDraft},
				SectionDocuments:       {statusDraft},
			},
			Level: TransitionInitiate,
		},
		RolePayrollAdmin: {
			Permissions: []string{PermNotificationRead},
			SectionEdit: map[string][]string{},
			Level:       TransitionNone,
		},
		RoleEmployee: {
			Permissions: []string{},
			SectionEdit: map[string][]string{},
			Level:       TransitionNone,
		},
	}}
}

// HasPermission reports whether role carries perm. Unknown roles have no
// permissions.
func (t *Table) HasPermission(role, perm string) bool {
	def, ok := t.defs[role]
	if !ok {
		return false
	}
	for _, p := range def.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// CanEditSection reports whether role may edit section while the sheet is in
// currentStatus. Unknown roles and unknown sections fail closed.
func (t *Table) CanEditSection(role, section, currentStatus string) bool {
	def, ok := t.defs[role]
	if !ok {
		return false
	}
	statuses, ok := def.SectionEdit[section]
	if !ok {
		return false
	}
	for _, s := range statuses {
		if s == currentStatus {
			return true
		}
	}
	return false
}

// Level returns the transition level for role, TransitionNone for unknown
// roles.
func (t *Table) Level(role string) TransitionLevel {
	def, ok := t.defs[role]
	if !ok {
		return TransitionNone
	}
	return def.Level
}

// Roles lists every role the table knows about.
func (t *Table) Roles() []string {
	out := make([]string, 0, len(t.defs))
	for r := range t.defs {
		out = append(out, r)
	}
	return out
}

// IsKnown reports whether role exists in the table.
func (t *Table) IsKnown(role string) bool {
	_, ok := t.defs[role]
	return ok
}
