package hover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

func TestTransport_SetsUserAgent(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		header    string
		want      string
	}{
		{name: "default", want: DefaultUserAgent},
		{name: "custom", userAgent: "hover-cli/2.0", want: "hover-cli/2.0"},
		{name: "request header wins", userAgent: "hover-cli/2.0", header: "caller/1.0", want: "caller/1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got atomic.Value
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got.Store(r.Header.Get("User-Agent"))
			}))
			defer server.Close()

			client := &http.Client{Transport: newTransport(nil, tt.userAgent, quietLogger())}
			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
			if err != nil {
				t.Fatalf("creating request: %v", err)
			}
			if tt.header != "" {
				req.Header.Set("User-Agent", tt.header)
			}

			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			resp.Body.Close()

			if ua, _ := got.Load().(string); ua != tt.want {
				t.Errorf("expected User-Agent %q, got %q", tt.want, ua)
			}
			if tt.header == "" && req.Header.Get("User-Agent") != "" {
				t.Error("caller's request must not be modified")
			}
		})
	}
}

func TestClient_SendsUserAgent(t *testing.T) {
	var mu sync.Mutex
	var agents []string
	_, server := newFakeHover(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.Header.Get("User-Agent"))
		mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"succeeded": true, "dns": []any{}})
	})

	client := newTestClient(server.URL, WithUserAgent("hover-cli/test"))
	if _, err := client.ListAllDNSRecords(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(agents) != 1 || agents[0] != "hover-cli/test" {
		t.Errorf("unexpected user agents: %v", agents)
	}
}
