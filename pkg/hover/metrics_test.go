package hover

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.observeLogin(nil)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "hover_logins_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected hover_logins_total to be registered")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.observeLogin(errors.New("boom"))
	m.observeRequest(http.MethodGet, 200, nil, 0)
}

func TestClient_RecordsMetrics(t *testing.T) {
	_, server := newFakeHover(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dns/missing" {
			writeJSON(w, http.StatusNotFound, map[string]any{"succeeded": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"succeeded": true, "domains": []any{}})
	})

	m := NewMetrics(prometheus.NewRegistry())
	client := newTestClient(server.URL, WithMetrics(m))
	ctx := context.Background()

	if _, err := client.ListDomains(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.ListDomains(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.RemoveDNSRecord(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing record")
	}

	if got := testutil.ToFloat64(m.LoginsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("expected 1 successful login, got %f", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "200")); got != 2 {
		t.Errorf("expected 2 GET 200, got %f", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "200")); got != 1 {
		t.Errorf("expected 1 POST 200 (login), got %f", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodDelete, "404")); got != 1 {
		t.Errorf("expected 1 DELETE 404, got %f", got)
	}
	if count := testutil.CollectAndCount(m.RequestDuration); count != 3 {
		t.Errorf("expected 3 duration series, got %d", count)
	}
}

func TestClient_RecordsFailedLogin(t *testing.T) {
	rt := &failingTransport{err: errors.New("connection refused")}
	m := NewMetrics(nil)
	client := newTestClient("http://hover.invalid/api", WithMetrics(m), WithHTTPClient(&http.Client{Transport: rt}))

	if err := client.Login(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if got := testutil.ToFloat64(m.LoginsTotal.WithLabelValues("failure")); got != 1 {
		t.Errorf("expected 1 failed login, got %f", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodPost, "error")); got != 1 {
		t.Errorf("expected 1 transport error, got %f", got)
	}
}
