package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordReview(t *testing.T) {
	before := testutil.ToFloat64(reviewsTotal.WithLabelValues("partially_approved"))
	units := testutil.ToFloat64(unitsReleasedTotal)

	RecordReview("partially_approved", 8)
	RecordReview("rejected", 0)

	if got := testutil.ToFloat64(reviewsTotal.WithLabelValues("partially_approved")); got != before+1 {
		t.Fatalf("reviews counter = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(unitsReleasedTotal); got != units+8 {
		t.Fatalf("units released = %v, want %v", got, units+8)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordLowStock("Chemistry")
	RecordContention("review")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"labinv_low_stock_alerts_total", "labinv_lock_contention_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("metrics output missing %s", name)
		}
	}
}

func TestUpdateDBConnections_Nil(t *testing.T) {
	if err := UpdateDBConnections(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
