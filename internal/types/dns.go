package types

import "dario.lol/hover/pkg/hover"

// DNSRecordWithDomain pairs a record with the domain it was listed under.
// The record is a named field because hover.DNSRecord marshals to its raw
// provider object.
type DNSRecordWithDomain struct {
	Record     hover.DNSRecord `json:"record"`
	DomainID   string          `json:"domain_id"`
	DomainName string          `json:"domain_name"`
}
