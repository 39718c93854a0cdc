package inventory

import (
	"context"
	"time"
)

// LowStockAlert describes an item that just crossed its minimum.
type LowStockAlert struct {
	ItemID       string    `json:"itemId"`
	ItemName     string    `json:"itemName"`
	Department   string    `json:"department"`
	CurrentStock int       `json:"currentStock"`
	MinStock     int       `json:"minStock"`
	Unit         string    `json:"unit"`
	At           time.Time `json:"at"`
}

func (i *Item) Alert() LowStockAlert {
	return LowStockAlert{
		ItemID:       i.ID,
		ItemName:     i.Name,
		Department:   i.Department,
		CurrentStock: i.CurrentStock,
		MinStock:     i.MinStock,
		Unit:         i.Unit,
		At:           i.LastUpdated,
	}
}

// Notifier fans alerts out to external listeners. It is called after commit,
// so a failure never undoes the stock change.
type Notifier interface {
	NotifyLowStock(ctx context.Context, a LowStockAlert) error
}
