package snapshot

import "lab-inventory/internal/domain/apperr"

var (
	ErrInvalidBackup = apperr.New(apperr.KindValidation, "invalid_backup", "Invalid backup payload.")
	ErrNoActiveAdmin = apperr.New(apperr.KindValidation, "backup_without_admin", "Backup must contain at least one active admin.")
)
