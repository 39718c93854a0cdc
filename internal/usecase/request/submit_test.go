package request

import (
	"context"
	"errors"
	"testing"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/inventory"
	"lab-inventory/internal/domain/permission"
	"lab-inventory/internal/domain/request"
	"lab-inventory/internal/domain/user"
)

func TestSubmit_Success(t *testing.T) {
	w := newWorld()
	w.addItem("INV-1", 10, 2)

	got, err := w.usecase().Submit(context.Background(), staff, SubmitInput{
		ItemID: "INV-1", RequestedQty: 4, Priority: request.PriorityHigh, Note: " for titration ",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.Status != request.StatusPending || got.ApprovedQty != nil {
		t.Fatalf("new request must be pending without approvedQty: %+v", got)
	}
	if got.RequesterName != "Ada" || got.Department != "Chemistry" || got.ItemName != "Ethanol" || got.Unit != "bottle" {
		t.Fatalf("requester/item attributes not copied: %+v", got)
	}
	if got.ReviewNote == nil || *got.ReviewNote != "for titration" {
		t.Fatalf("note not stored: %v", got.ReviewNote)
	}
	if _, ok := w.reqs[got.ID]; !ok {
		t.Fatalf("request not persisted")
	}
	if len(w.audit.Entries) != 1 {
		t.Fatalf("want one audit entry, got %d", len(w.audit.Entries))
	}
	e := w.audit.Entries[0]
	if e.Action != audit.ActionRequestSubmitted || e.Target != got.ID || e.Details != "Ethanol: 4 bottle" {
		t.Fatalf("unexpected audit entry: %+v", e)
	}
	// stock is untouched until review
	if w.items["INV-1"].CurrentStock != 10 {
		t.Fatalf("submit must not move stock")
	}
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(w *world)
		actor   user.Actor
		in      SubmitInput
		wantErr error
	}{
		{"zero quantity", nil, staff, SubmitInput{ItemID: "INV-1", RequestedQty: 0, Priority: request.PriorityLow}, request.ErrInvalidQuantity},
		{"negative quantity", nil, staff, SubmitInput{ItemID: "INV-1", RequestedQty: -2, Priority: request.PriorityLow}, request.ErrInvalidQuantity},
		{"bad priority", nil, staff, SubmitInput{ItemID: "INV-1", RequestedQty: 1, Priority: "urgent"}, request.ErrInvalidPayload},
		{"missing item id", nil, staff, SubmitInput{RequestedQty: 1, Priority: request.PriorityLow}, request.ErrInvalidPayload},
		{"admin cannot submit", nil, admin, SubmitInput{ItemID: "INV-1", RequestedQty: 1, Priority: request.PriorityLow}, request.ErrStaffOnly},
		{
			"unknown requester", nil,
			user.Actor{ID: "USR-GONE", Role: user.RoleStaff},
			SubmitInput{ItemID: "INV-1", RequestedQty: 1, Priority: request.PriorityLow},
			user.ErrNotFound,
		},
		{
			"inactive requester",
			func(w *world) {
				u := w.users[staff.ID]
				u.IsActive = false
				w.users[staff.ID] = u
			},
			staff, SubmitInput{ItemID: "INV-1", RequestedQty: 1, Priority: request.PriorityLow}, user.ErrInactive,
		},
		{
			"request rights disabled",
			func(w *world) {
				p := w.perms["Chemistry"]
				p.CanRequest = false
				w.perms["Chemistry"] = p
			},
			staff, SubmitInput{ItemID: "INV-1", RequestedQty: 1, Priority: request.PriorityLow}, request.ErrPermissionDenied,
		},
		{
			"department not registered",
			func(w *world) { delete(w.perms, "Chemistry") },
			staff, SubmitInput{ItemID: "INV-1", RequestedQty: 1, Priority: request.PriorityLow}, request.ErrPermissionDenied,
		},
		{"unknown item", nil, staff, SubmitInput{ItemID: "INV-404", RequestedQty: 1, Priority: request.PriorityLow}, inventory.ErrNotFound},
		{
			"item in another department",
			func(w *world) {
				it := w.items["INV-1"]
				it.Department = "Biology"
				w.items["INV-1"] = it
				w.perms["Biology"] = *permission.New("Biology")
			},
			staff, SubmitInput{ItemID: "INV-1", RequestedQty: 1, Priority: request.PriorityLow}, request.ErrCrossDepartment,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			w.addItem("INV-1", 10, 2)
			if tt.setup != nil {
				tt.setup(w)
			}
			_, err := w.usecase().Submit(context.Background(), tt.actor, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if len(w.reqs) != 0 || len(w.audit.Entries) != 0 {
				t.Fatalf("failed submit must not write anything")
			}
		})
	}
}
