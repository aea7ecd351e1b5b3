package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dukacore/pkg/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusMetricsCounters(t *testing.T) {
	m := NewPrometheusMetrics()
	m.RecordGenerated(domain.TableProducts, 100)
	m.RecordGenerated(domain.TableProducts, 50)
	m.RecordInserted(domain.TableOrders, 30, 10*time.Millisecond)

	if got := testutil.ToFloat64(m.generatedRows.WithLabelValues(string(domain.TableProducts))); got != 150 {
		t.Fatalf("generated counter %v, want 150", got)
	}
	if got := testutil.ToFloat64(m.insertedRows.WithLabelValues(string(domain.TableOrders))); got != 30 {
		t.Fatalf("inserted counter %v, want 30", got)
	}
}

func TestPrometheusMetricsHandler(t *testing.T) {
	m := NewPrometheusMetrics()
	m.RecordGenerated(domain.TableCustomers, 10)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `dukacore_generated_rows_total{table="customers"} 10`) {
		t.Fatalf("exposition missing counter:\n%s", body)
	}
}
