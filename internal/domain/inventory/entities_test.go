package inventory

import (
	"testing"
	"time"
)

func TestRelease_FiresOncePerCrossing(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	it := &Item{CurrentStock: 15, MinStock: 10}

	steps := []struct {
		qty       int
		wantStock int
		wantCross bool
	}{
		{3, 12, false}, // still above min
		{3, 9, true},   // 12 > 10 -> 9 <= 10
		{1, 8, false},  // already low
	}
	for i, s := range steps {
		crossed := it.Release(s.qty, now)
		if it.CurrentStock != s.wantStock || crossed != s.wantCross {
			t.Fatalf("step %d: stock=%d crossed=%v, want %d/%v", i, it.CurrentStock, crossed, s.wantStock, s.wantCross)
		}
	}
	if !it.LastUpdated.Equal(now) {
		t.Fatalf("LastUpdated not refreshed")
	}
}

func TestRelease_FloorsAtZero(t *testing.T) {
	it := &Item{CurrentStock: 2, MinStock: 0}
	crossed := it.Release(5, time.Now())
	if it.CurrentStock != 0 {
		t.Fatalf("stock = %d, want 0", it.CurrentStock)
	}
	if !crossed {
		t.Fatalf("2 > 0 to 0 <= 0 is a crossing")
	}
}

func TestApply_Crossing(t *testing.T) {
	n := func(v int) *int { return &v }
	tests := []struct {
		name      string
		item      Item
		patch     Patch
		wantCross bool
		wantStock int
	}{
		{"manual drop crosses", Item{CurrentStock: 20, MinStock: 10}, Patch{CurrentStock: n(5)}, true, 5},
		{"already low stays quiet", Item{CurrentStock: 8, MinStock: 10}, Patch{CurrentStock: n(2)}, false, 2},
		{"raising min crosses", Item{CurrentStock: 12, MinStock: 10}, Patch{MinStock: n(15)}, true, 12},
		{"restock clears", Item{CurrentStock: 3, MinStock: 10}, Patch{CurrentStock: n(50)}, false, 50},
		{"negative clamps", Item{CurrentStock: 3, MinStock: 1}, Patch{CurrentStock: n(-4)}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := tt.item
			if got := it.Apply(tt.patch, time.Now()); got != tt.wantCross {
				t.Fatalf("crossed = %v, want %v", got, tt.wantCross)
			}
			if it.CurrentStock != tt.wantStock {
				t.Fatalf("stock = %d, want %d", it.CurrentStock, tt.wantStock)
			}
		})
	}
}
