package dns

import "testing"

func TestParseMXContent(t *testing.T) {
	tests := []struct {
		content  string
		priority uint16
		address  string
		wantErr  bool
	}{
		{content: "10 192.0.2.25", priority: 10, address: "192.0.2.25"},
		{content: "  0   mail.example.com ", priority: 0, address: "mail.example.com"},
		{content: "65535 192.0.2.25", priority: 65535, address: "192.0.2.25"},
		{content: "65536 192.0.2.25", wantErr: true},
		{content: "-1 192.0.2.25", wantErr: true},
		{content: "high 192.0.2.25", wantErr: true},
		{content: "192.0.2.25", wantErr: true},
		{content: "10 192.0.2.25 extra", wantErr: true},
		{content: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			got, err := parseMXContent(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseMXContent(%q) = %+v, want error", tt.content, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMXContent(%q) error = %v", tt.content, err)
			}
			if got.priority != tt.priority || got.address != tt.address {
				t.Errorf("parseMXContent(%q) = %d %s, want %d %s", tt.content, got.priority, got.address, tt.priority, tt.address)
			}
		})
	}
}

func TestValidateIPv4(t *testing.T) {
	for _, ip := range []string{"192.0.2.1", "10.0.0.255"} {
		if err := validateIPv4(ip); err != nil {
			t.Errorf("validateIPv4(%q) error = %v", ip, err)
		}
	}
	for _, ip := range []string{"", "2001:db8::1", "example.com", "300.1.1.1"} {
		if err := validateIPv4(ip); err == nil {
			t.Errorf("validateIPv4(%q) = nil, want error", ip)
		}
	}
}
