package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/softdev1029/records-fetch/internal/testutil"
	"github.com/softdev1029/records-fetch/pkg/records"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
}

func TestHandler_ExposesRecordsMetrics(t *testing.T) {
	mock := testutil.NewMockRecords(testutil.Dataset(3))
	defer mock.Close()

	client, err := records.New(records.Config{BaseURL: mock.URL()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := client.Retrieve(context.Background(), records.Options{}); err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Result().Body)
	for _, name := range []string{
		"records_requests_total",
		"records_request_duration_seconds",
		"records_items_received",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
