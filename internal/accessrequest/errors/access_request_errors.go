package accessrequesterrors

import (
	"fmt"
	"net/http"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Access request not found",
		http.StatusNotFound,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid access request ID",
		http.StatusBadRequest,
	)
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid reviewer ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrUnknownStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown access request status",
		http.StatusBadRequest,
	)

	// ErrRequestAlreadyPending and ErrAccountAlreadyExists are the two faces
	// of the duplicate-active rule: same category, distinct messages.
	ErrRequestAlreadyPending = apperror.New(
		apperror.CodeConflict,
		"An access request for this email is already pending review",
		http.StatusConflict,
	)
	ErrAccountAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An account with this email already exists",
		http.StatusConflict,
	)

	// ErrDuplicateActiveRequest covers the constraint-violation race window
	// where the pre-check saw nothing but the partial unique index fired.
	ErrDuplicateActiveRequest = apperror.New(
		apperror.CodeConflict,
		"An access request for this email is already pending or approved",
		http.StatusConflict,
	)
)

// RequestNotPending names the current status so the reviewer knows why the
// decision was refused.
func RequestNotPending(currentStatus string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("Access request has already been reviewed, current status is %s", currentStatus),
		http.StatusConflict,
	)
}

// OnboardingIncomplete blocks approval while the linked take-on sheet has
// not reached complete.
func OnboardingIncomplete(sheetStatus string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("Linked take-on sheet has not completed onboarding, current status is %s", sheetStatus),
		http.StatusConflict,
	)
}
