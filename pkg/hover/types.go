package hover

import "encoding/json"

// RecordType is a DNS record type as Hover names it.
type RecordType string

const (
	RecordTypeA  RecordType = "A"
	RecordTypeMX RecordType = "MX"
)

// Domain is a zone in the Hover account. The provider object is kept
// verbatim in Raw; the named fields are a convenience view of it.
type Domain struct {
	ID          string      `json:"id"`
	DomainName  string      `json:"domain_name"`
	Status      string      `json:"status,omitempty"`
	AutoRenew   bool        `json:"auto_renew,omitempty"`
	RenewalDate string      `json:"renewal_date,omitempty"`
	Entries     []DNSRecord `json:"entries,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (d *Domain) UnmarshalJSON(data []byte) error {
	type plain Domain
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Domain(p)
	d.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (d Domain) MarshalJSON() ([]byte, error) {
	if len(d.Raw) > 0 {
		return d.Raw, nil
	}
	type plain Domain
	return json.Marshal(plain(d))
}

// DNSRecord is a single entry in a domain's zone. Like Domain, the provider
// object is kept verbatim in Raw.
type DNSRecord struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       RecordType `json:"type"`
	Content    string     `json:"content"`
	TTL        int        `json:"ttl,omitempty"`
	DomainName string     `json:"domain_name,omitempty"`
	IsDefault  bool       `json:"is_default,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (r *DNSRecord) UnmarshalJSON(data []byte) error {
	type plain DNSRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = DNSRecord(p)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r DNSRecord) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	type plain DNSRecord
	return json.Marshal(plain(r))
}

// recordBody is the JSON body sent when creating or updating a record.
type recordBody struct {
	Name    string     `json:"name,omitempty"`
	Type    RecordType `json:"type,omitempty"`
	Content string     `json:"content"`
}
