package request

import "lab-inventory/internal/domain/apperr"

var (
	ErrNotFound         = apperr.New(apperr.KindNotFound, "request_not_found", "Request not found.")
	ErrAlreadyReviewed  = apperr.New(apperr.KindConflict, "already_reviewed", "Request already reviewed.")
	ErrSelfReview       = apperr.New(apperr.KindAuthorization, "self_review", "Cannot review your own request.")
	ErrPermissionDenied = apperr.New(apperr.KindAuthorization, "permission_denied", "Request permission disabled for your department.")
	ErrCrossDepartment  = apperr.New(apperr.KindAuthorization, "cross_department", "Cannot request items outside your department.")
	ErrStaffOnly        = apperr.New(apperr.KindAuthorization, "staff_only", "Only staff can submit requests.")
	ErrInvalidPayload   = apperr.New(apperr.KindValidation, "invalid_payload", "Invalid request payload.")
	ErrInvalidQuantity  = apperr.New(apperr.KindValidation, "invalid_quantity", "Quantity must be a positive integer.")
	ErrInvalidDecision  = apperr.New(apperr.KindValidation, "invalid_decision", "Invalid review payload.")
)
