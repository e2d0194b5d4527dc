package takeonsheeterrors

import (
	"fmt"
	"net/http"
	"strings"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrSheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Take-on sheet not found",
		http.StatusNotFound,
	)
	ErrInvalidSheetID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid take-on sheet ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrUnknownStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown take-on sheet status",
		http.StatusBadRequest,
	)
)

// DeleteNotAllowed is returned when deleting a sheet that already left draft.
func DeleteNotAllowed(currentStatus string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("Take-on sheet can only be deleted while in draft, current status is %s", currentStatus),
		http.StatusConflict,
	)
}

// InvalidTransition enumerates the allowed forward set, which is empty for
// complete sheets.
func InvalidTransition(fromStatus, toStatus string, allowed []string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf(
			"Cannot transition take-on sheet from %s to %s, allowed next statuses: [%s]",
			fromStatus, toStatus, strings.Join(allowed, ", "),
		),
		http.StatusConflict,
	)
}

// LinkNotAllowed is returned when linking an employee before the sheet
// reaches complete.
func LinkNotAllowed(currentStatus string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("Employee can only be linked once onboarding is complete, current status is %s", currentStatus),
		http.StatusConflict,
	)
}

// AlreadyLinked carries the employee id that already occupies the slot.
func AlreadyLinked(existingEmployeeID string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("Take-on sheet is already linked to employee %s", existingEmployeeID),
		http.StatusConflict,
	)
}

// TransitionForbidden is the role-gate refusal, distinct from an invalid
// move on the chain.
func TransitionForbidden(role, fromStatus, toStatus string) *apperror.AppError {
	return apperror.New(
		apperror.CodeForbidden,
		fmt.Sprintf("Role %s may not transition a take-on sheet from %s to %s", role, fromStatus, toStatus),
		http.StatusForbidden,
	)
}

// SectionEditForbidden names the section and status so the UI can explain
// why the edit was refused.
func SectionEditForbidden(role, section, currentStatus string) *apperror.AppError {
	return apperror.New(
		apperror.CodeForbidden,
		fmt.Sprintf("Role %s may not edit %s while the sheet is in %s", role, section, currentStatus),
		http.StatusForbidden,
	)
}
