package inventory

import "lab-inventory/internal/domain/apperr"

var (
	ErrNotFound = apperr.New(apperr.KindNotFound, "item_not_found", "Inventory item not found.")
	// ErrItemMissing is raised when a request points at an item that no longer exists.
	ErrItemMissing  = apperr.New(apperr.KindNotFound, "item_missing", "Inventory item missing.")
	ErrDuplicate    = apperr.New(apperr.KindConflict, "item_exists", "Item already exists in this department.")
	ErrInvalidStock = apperr.New(apperr.KindValidation, "invalid_stock", "Stock values must be non-negative integers.")
	ErrEmptyPatch   = apperr.New(apperr.KindValidation, "empty_patch", "No update fields provided.")
	ErrInvalidItem  = apperr.New(apperr.KindValidation, "invalid_item", "Name, category and unit are required.")
)
