package request

import "lab-inventory/internal/domain/request"

type SubmitInput struct {
	ItemID       string
	RequestedQty int
	Priority     request.Priority
	Note         string
}

type ReviewInput struct {
	RequestID string
	Decision  request.Decision
	// ApprovedQty overrides the requested quantity on the approval path.
	ApprovedQty *int
	Note        string
}
