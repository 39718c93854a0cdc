package permission

import "lab-inventory/internal/domain/apperr"

var (
	ErrNotFound    = apperr.New(apperr.KindNotFound, "department_not_found", "Department not found.")
	ErrExists      = apperr.New(apperr.KindConflict, "department_exists", "Department already exists.")
	ErrInvalidName = apperr.New(apperr.KindValidation, "invalid_department", "Invalid department name.")
	ErrEmptyPatch  = apperr.New(apperr.KindValidation, "empty_patch", "No permission fields provided.")
	// ErrMissing is returned when another entity references an unknown department.
	ErrMissing = apperr.New(apperr.KindValidation, "department_missing", "Department does not exist.")
)
