package inventory

import "time"

// Item is owned by a single department. CurrentStock and MinStock never go
// below zero and LastUpdated moves on every stock-affecting write.
type Item struct {
	ID           string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(160);not null" json:"name"`
	Category     string    `gorm:"column:category;type:varchar(120);not null" json:"category"`
	Department   string    `gorm:"column:department;type:varchar(64);not null;index" json:"department"`
	CurrentStock int       `gorm:"column:current_stock;not null" json:"currentStock"`
	MinStock     int       `gorm:"column:min_stock;not null" json:"minStock"`
	Unit         string    `gorm:"column:unit;type:varchar(32);not null" json:"unit"`
	LastUpdated  time.Time `gorm:"column:last_updated;not null" json:"lastUpdated"`
}

func (Item) TableName() string { return "inventory_items" }

// IsLow reports whether the item sits at or below its minimum.
func (i *Item) IsLow() bool { return i.CurrentStock <= i.MinStock }

// Release takes qty units out of stock, flooring at zero. It reports whether
// the release crossed the minimum: above it before, at-or-below after. An item
// that was already low never re-crosses.
func (i *Item) Release(qty int, now time.Time) (crossed bool) {
	wasLow := i.IsLow()
	next := i.CurrentStock - qty
	if next < 0 {
		next = 0
	}
	i.CurrentStock = next
	i.LastUpdated = now
	return !wasLow && i.IsLow()
}

// Patch is a partial admin edit; nil fields stay untouched.
type Patch struct {
	Name         *string
	Category     *string
	Unit         *string
	CurrentStock *int
	MinStock     *int
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Unit == nil && p.CurrentStock == nil && p.MinStock == nil
}

// Apply writes the patch and runs the same crossing check as Release, using
// the pre-edit state on one side and the post-edit state on the other.
func (i *Item) Apply(p Patch, now time.Time) (crossed bool) {
	wasLow := i.IsLow()
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Unit != nil {
		i.Unit = *p.Unit
	}
	if p.CurrentStock != nil {
		i.CurrentStock = max(*p.CurrentStock, 0)
	}
	if p.MinStock != nil {
		i.MinStock = max(*p.MinStock, 0)
	}
	i.LastUpdated = now
	return !wasLow && i.IsLow()
}
