package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWritePrometheusStrategyMetrics(t *testing.T) {
	m := New()
	m.ObserveStrategy("TAG", 3, nil, 20*time.Millisecond)
	m.ObserveStrategy("TAG", 2, nil, 10*time.Millisecond)
	m.ObserveStrategy("COST_KIND", 0, errors.New("boom"), time.Millisecond)
	m.IncGridCache("hit")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`waltz_report_grid_cells_total{strategy="TAG"} 5.000000`,
		`waltz_report_grid_fetch_errors_total{strategy="COST_KIND"} 1.000000`,
		`waltz_report_grid_fetch_duration_seconds_count{strategy="TAG",status="ok"} 2`,
		`waltz_report_grid_definition_cache_total{result="hit"} 1.000000`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ObserveStrategy("TAG", 1, nil, time.Millisecond)
	m.IncGridCache("miss")
	m.IncColumnReplace(nil)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil metrics write: %v", err)
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route"}, []string{`a"b\c`})
	if got != `{route="a\"b\\c"}` {
		t.Fatalf("labelString = %s", got)
	}
	if withLe("", "+Inf") != `{le="+Inf"}` {
		t.Fatalf("withLe empty labels")
	}
	if withLe(`{a="1"}`, "0.5") != `{a="1",le="0.5"}` {
		t.Fatalf("withLe merge")
	}
}
