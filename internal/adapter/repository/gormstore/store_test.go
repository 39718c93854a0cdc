package gormstore

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/user"
)

// openTestDB returns a migrated in-memory sqlite database. Every ":memory:"
// connection is a separate database, so the pool is pinned to one.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func makeUser(id, email string, role user.Role, active bool) *user.User {
	return &user.User{
		ID:           id,
		Name:         "User " + id,
		Email:        email,
		Role:         role,
		Department:   "Chemistry",
		IsActive:     active,
		PasswordHash: "x",
	}
}

func makeItem(id, name string, stock, minStock int) *inventory.Item {
	return &inventory.Item{
		ID:           id,
		Name:         name,
		Category:     "Reagents",
		Department:   "Chemistry",
		CurrentStock: stock,
		MinStock:     minStock,
		Unit:         "bottle",
		LastUpdated:  t0,
	}
}

func makeRequest(id, requesterID, itemID string, qty int) *request.Request {
	return &request.Request{
		ID:            id,
		RequesterID:   requesterID,
		RequesterName: "User " + requesterID,
		Department:    "Chemistry",
		ItemID:        itemID,
		ItemName:      "Ethanol",
		RequestedQty:  qty,
		Unit:          "bottle",
		Status:        request.StatusPending,
		Priority:      request.PriorityMedium,
		RequestDate:   t0,
	}
}
