package user

import "lab-inventory/internal/domain/apperr"

var (
	ErrNotFound           = apperr.New(apperr.KindNotFound, "user_not_found", "User not found.")
	ErrEmailExists        = apperr.New(apperr.KindConflict, "email_exists", "Email already exists.")
	ErrSelfDeactivation   = apperr.New(apperr.KindAuthorization, "self_deactivation", "You cannot deactivate your own account.")
	ErrLastAdminProtected = apperr.New(apperr.KindAuthorization, "last_admin_protected", "At least one active admin account is required.")
	ErrAdminOnly          = apperr.New(apperr.KindAuthorization, "admin_only", "Admin role required.")
	ErrInactive           = apperr.New(apperr.KindAuthorization, "account_inactive", "Account is inactive.")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "invalid_credentials", "Invalid credentials.")
	ErrUnauthenticated    = apperr.New(apperr.KindUnauthenticated, "unauthenticated", "Authentication required.")
	ErrInvalidUser        = apperr.New(apperr.KindValidation, "invalid_user", "Invalid user payload.")
	ErrEmptyPatch         = apperr.New(apperr.KindValidation, "empty_patch", "No update fields provided.")
)
