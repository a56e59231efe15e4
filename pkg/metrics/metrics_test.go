package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestAPIClientMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIClientMetrics(reg)
	m.Observe("products", "list", 200, 250*time.Millisecond)
	m.Observe("products", "create", 400, 10*time.Millisecond)
	m.Observe("products", "create", 0, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "sctracker_api_requests_total", map[string]string{"operation": "list", "status": "2xx"}); err != nil {
		t.Fatalf("fetch list: %v", err)
	} else if got != 1 {
		t.Fatalf("expected list 2xx=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "sctracker_api_requests_total", map[string]string{"operation": "create", "status": "4xx"}); err != nil {
		t.Fatalf("fetch create: %v", err)
	} else if got != 1 {
		t.Fatalf("expected create 4xx=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "sctracker_api_requests_total", map[string]string{"operation": "create", "status": "error"}); err != nil {
		t.Fatalf("fetch transport error: %v", err)
	} else if got != 1 {
		t.Fatalf("expected create error=1, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "sctracker_api_request_duration_seconds", map[string]string{"operation": "list"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	m := NewAPIClientMetrics(nil)
	m.Observe("products", "list", 200, time.Millisecond)
	var nilMetrics *APIClientMetrics
	nilMetrics.Observe("products", "list", 200, time.Millisecond)
	NewWorkspaceMetrics(nil).SetActive(3)
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{0: "error", 200: "2xx", 204: "2xx", 401: "4xx", 422: "4xx", 502: "5xx", 700: "error"}
	for status, want := range cases {
		if got := StatusClass(status); got != want {
			t.Fatalf("status %d: expected %s got %s", status, want, got)
		}
	}
}

func TestWorkspaceMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkspaceMetrics(reg)
	m.SetActive(4)
	m.AddExpired(2)
	m.AddExpired(0)

	if got := testutil.ToFloat64(m.active); got != 4 {
		t.Fatalf("expected 4 active, got %f", got)
	}
	if got := testutil.ToFloat64(m.expired); got != 2 {
		t.Fatalf("expected 2 expired, got %f", got)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok {
			if pair.GetValue() != v {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}
