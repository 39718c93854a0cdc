package audit

import (
	"fmt"
	"time"

	"lab-inventory/pkg/id"
)

func New(actorID, actorName string, action Action, target, details string, at time.Time) *Entry {
	return &Entry{
		ID:        id.New(id.PrefixLog),
		ActorID:   actorID,
		ActorName: actorName,
		Action:    action,
		Target:    target,
		Details:   details,
		CreatedAt: at,
	}
}

// LowStock is the system entry written when an item crosses its minimum.
func LowStock(systemID, systemName, itemID, itemName string, at time.Time) *Entry {
	return New(systemID, systemName, ActionLowStockAlert, itemID,
		fmt.Sprintf("%s reached critical stock level", itemName), at)
}
