package response

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDisplaySummaryKeepsOrder(t *testing.T) {
	var out bytes.Buffer
	New().To(&out).
		Title("DNS Records").
		Summary("Domains:", 2).
		Summary("Records:", 5).
		Summary("A:", 4).
		NoItemsMessage("nothing").
		FooterSuccessf("Found %d record(s)", 5).
		Display()

	got := out.String()
	domains := strings.Index(got, "Domains:")
	records := strings.Index(got, "Records:")
	a := strings.Index(got, "A:")
	if domains < 0 || records < domains || a < records {
		t.Errorf("summary out of order:\n%s", got)
	}
	if !strings.Contains(got, "nothing") {
		t.Errorf("missing empty message:\n%s", got)
	}
	if !strings.Contains(got, "Found 5 record(s)") {
		t.Errorf("missing footer:\n%s", got)
	}
}

func TestDisplayErrorOnly(t *testing.T) {
	var out bytes.Buffer
	New().To(&out).
		Title("ignored").
		AddItem("Item", "content").
		Error("Failed to list domains", errors.New("boom")).
		Display()

	got := out.String()
	if !strings.Contains(got, "Failed to list domains") || !strings.Contains(got, "boom") {
		t.Errorf("missing error output:\n%s", got)
	}
	if strings.Contains(got, "ignored") || strings.Contains(got, "content") {
		t.Errorf("error output should not render the body:\n%s", got)
	}
}

func TestItemContent(t *testing.T) {
	got := NewItemContent().Add("Name:", "www").AddRaw("").Add("TTL:", "900").String()
	want := "Name:        www\n\nTTL:         900"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStructuredData(t *testing.T) {
	raw := []byte(`{"id":"dom1","domain_name":"example.com","auto_renew":true,"renewal_date":"","entries":[{"id":"dns1"}],"contacts":{"admin":"x"},"nameserver_count":2}`)

	got := StructuredData("Provider Data", raw, "id")

	for _, want := range []string{"Provider Data", "Domain Name:", "example.com", "Auto Renew:", "Nameserver Count:", "2"} {
		if !strings.Contains(got, want) {
			t.Errorf("StructuredData() missing %q:\n%s", want, got)
		}
	}
	for _, unwanted := range []string{"Id:", "Renewal Date:", "Entries:", "Contacts:"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("StructuredData() should not contain %q:\n%s", unwanted, got)
		}
	}
}

func TestStructuredDataEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "[]", `{"nested":{"a":1}}`} {
		if got := StructuredData("Data", []byte(raw)); got != "" {
			t.Errorf("StructuredData(%q) = %q, want empty", raw, got)
		}
	}
}
