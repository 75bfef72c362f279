package hoverapi

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"dario.lol/hover/internal/db"
	"dario.lol/hover/pkg/hover"
)

type fakeAPI struct {
	domains []hover.Domain
	records map[string][]hover.DNSRecord
	err     error

	listCalls    int
	getCalls     int
	recordsCalls int
}

func (f *fakeAPI) ListDomains(context.Context) ([]hover.Domain, error) {
	f.listCalls++
	return f.domains, f.err
}

func (f *fakeAPI) GetDomain(_ context.Context, domain string) (*hover.Domain, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.domains {
		if d.ID == domain || d.DomainName == domain {
			return &d, nil
		}
	}
	return nil, &hover.APIError{StatusCode: 404, Body: []byte(`{"succeeded":false,"error":"not found"}`)}
}

func (f *fakeAPI) GetDomainDNSRecords(_ context.Context, domain string) ([]hover.DNSRecord, error) {
	f.recordsCalls++
	return f.records[domain], f.err
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		domains: []hover.Domain{
			{ID: "dom100", DomainName: "example.com"},
			{ID: "dom200", DomainName: "example.org"},
		},
		records: map[string][]hover.DNSRecord{
			"dom100": {
				{ID: "dns1", Name: "@", Type: hover.RecordTypeA, Content: "192.0.2.1"},
				{ID: "dns2", Name: "www", Type: hover.RecordTypeA, Content: "192.0.2.2"},
				{ID: "dns3", Name: "mail", Type: hover.RecordTypeMX, Content: "10 192.0.2.3"},
				{ID: "dns4", Name: "mail", Type: hover.RecordTypeA, Content: "192.0.2.3"},
			},
		},
	}
}

func useTempDB(t *testing.T) {
	t.Helper()
	if err := db.SetPath(filepath.Join(t.TempDir(), "lookup.db")); err != nil {
		t.Fatalf("SetPath() error = %v", err)
	}
	t.Cleanup(func() { _ = db.SetPath("") })
}

func TestLookupDomainByName(t *testing.T) {
	useTempDB(t)
	api := newFakeAPI()

	id, name, err := LookupDomain(context.Background(), api, "Example.COM.")
	if err != nil {
		t.Fatalf("LookupDomain() error = %v", err)
	}
	if id != "dom100" || name != "example.com" {
		t.Errorf("LookupDomain() = (%q, %q), want (dom100, example.com)", id, name)
	}

	// Second lookup is served from the cache.
	if _, _, err := LookupDomain(context.Background(), api, "example.com"); err != nil {
		t.Fatalf("cached LookupDomain() error = %v", err)
	}
	if api.listCalls != 1 {
		t.Errorf("ListDomains calls = %d, want 1", api.listCalls)
	}

	// The reverse mapping is cached too.
	if _, name, _ := LookupDomain(context.Background(), api, "dom100"); name != "example.com" {
		t.Errorf("name by ID = %q, want example.com", name)
	}
	if api.getCalls != 0 {
		t.Errorf("GetDomain calls = %d, want 0", api.getCalls)
	}
}

func TestLookupDomainByID(t *testing.T) {
	useTempDB(t)
	api := newFakeAPI()

	id, name, err := LookupDomain(context.Background(), api, "dom200")
	if err != nil {
		t.Fatalf("LookupDomain() error = %v", err)
	}
	if id != "dom200" || name != "example.org" {
		t.Errorf("LookupDomain() = (%q, %q), want (dom200, example.org)", id, name)
	}
	if api.getCalls != 1 || api.listCalls != 0 {
		t.Errorf("calls get=%d list=%d, want get=1 list=0", api.getCalls, api.listCalls)
	}
}

func TestLookupDomainNotFound(t *testing.T) {
	useTempDB(t)

	_, _, err := LookupDomain(context.Background(), newFakeAPI(), "missing.net")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("LookupDomain() error = %v, want not found", err)
	}
}

func TestLookupDomainAPIError(t *testing.T) {
	useTempDB(t)
	api := newFakeAPI()
	api.err = &hover.APIError{StatusCode: 401, Body: []byte("denied")}

	_, _, err := LookupDomain(context.Background(), api, "example.com")
	var apiErr *hover.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Errorf("LookupDomain() error = %v, want APIError 401", err)
	}
}

func TestLookupDNSRecord(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantID     string
		wantName   string
		wantErr    string
	}{
		{name: "relative name", identifier: "www", wantID: "dns2", wantName: "www"},
		{name: "fully qualified name", identifier: "www.example.com", wantID: "dns2", wantName: "www"},
		{name: "apex symbol", identifier: "@", wantID: "dns1", wantName: "@"},
		{name: "apex domain", identifier: "example.com", wantID: "dns1", wantName: "@"},
		{name: "record id", identifier: "dns3", wantID: "dns3", wantName: "mail"},
		{name: "ambiguous name", identifier: "mail", wantErr: "use the record ID"},
		{name: "missing name", identifier: "ftp", wantErr: "not found"},
		{name: "missing id", identifier: "dns999", wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempDB(t)

			id, name, err := LookupDNSRecord(context.Background(), newFakeAPI(), "dom100", "example.com", tt.identifier)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LookupDNSRecord() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupDNSRecord() error = %v", err)
			}
			if id != tt.wantID || name != tt.wantName {
				t.Errorf("LookupDNSRecord() = (%q, %q), want (%q, %q)", id, name, tt.wantID, tt.wantName)
			}
		})
	}
}

func TestLookupDNSRecordCachedAndForgotten(t *testing.T) {
	useTempDB(t)
	api := newFakeAPI()
	ctx := context.Background()

	if _, err := LookupDNSRecordID(ctx, api, "dom100", "example.com", "www"); err != nil {
		t.Fatalf("LookupDNSRecordID() error = %v", err)
	}
	if _, err := LookupDNSRecordID(ctx, api, "dom100", "example.com", "www"); err != nil {
		t.Fatalf("cached LookupDNSRecordID() error = %v", err)
	}
	if api.recordsCalls != 1 {
		t.Fatalf("GetDomainDNSRecords calls = %d, want 1", api.recordsCalls)
	}

	ForgetDNSRecord("dom100", "dns2", "www")

	if _, err := LookupDNSRecordID(ctx, api, "dom100", "example.com", "www"); err != nil {
		t.Fatalf("LookupDNSRecordID() after forget error = %v", err)
	}
	if api.recordsCalls != 2 {
		t.Errorf("GetDomainDNSRecords calls = %d, want 2", api.recordsCalls)
	}
}

func TestRelativeName(t *testing.T) {
	tests := []struct {
		record, domain, want string
	}{
		{"@", "example.com", "@"},
		{"", "example.com", "@"},
		{"example.com", "example.com", "@"},
		{"example.com.", "example.com", "@"},
		{"WWW", "example.com", "www"},
		{"api.v2.example.com", "example.com", "api.v2"},
		{"www.example.org", "example.com", "www.example.org"},
	}
	for _, tt := range tests {
		if got := RelativeName(tt.record, tt.domain); got != tt.want {
			t.Errorf("RelativeName(%q, %q) = %q, want %q", tt.record, tt.domain, got, tt.want)
		}
	}
}
