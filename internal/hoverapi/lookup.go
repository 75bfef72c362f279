package hoverapi

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"dario.lol/hover/pkg/hover"
)

var (
	isDomainID = regexp.MustCompile(`^dom\d+$`).MatchString
	isRecordID = regexp.MustCompile(`^dns\d+$`).MatchString
)

// API is the part of the Hover client that lookups need.
type API interface {
	ListDomains(ctx context.Context) ([]hover.Domain, error)
	GetDomain(ctx context.Context, domain string) (*hover.Domain, error)
	GetDomainDNSRecords(ctx context.Context, domain string) ([]hover.DNSRecord, error)
}

// LookupDomain resolves a domain ID or name into both forms.
func LookupDomain(ctx context.Context, client API, domainIdentifier string) (id string, name string, err error) {
	if isDomainID(domainIdentifier) {
		id = domainIdentifier
		if cachedName, found := GetID(DomainCacheKey(id)); found {
			return id, cachedName, nil
		}
		domain, err := client.GetDomain(ctx, id)
		if err != nil {
			return "", "", err
		}
		name = domain.DomainName
	} else {
		name = normalizeDomain(domainIdentifier)
		if cachedID, found := GetID(DomainCacheKey(name)); found {
			return cachedID, name, nil
		}
		domains, err := client.ListDomains(ctx)
		if err != nil {
			return "", "", err
		}
		found := false
		for _, d := range domains {
			if normalizeDomain(d.DomainName) == name {
				id, name, found = d.ID, d.DomainName, true
				break
			}
		}
		if !found {
			return "", "", fmt.Errorf("domain %q not found", domainIdentifier)
		}
	}

	RememberDomain(id, name)
	return id, name, nil
}

// RememberDomain caches the mapping between a domain ID and its name.
func RememberDomain(id, name string) {
	if id == "" || name == "" {
		return
	}
	SetID(DomainCacheKey(normalizeDomain(name)), id)
	SetID(DomainCacheKey(id), name)
}

// LookupDNSRecord resolves a record ID or name within a domain. Names are
// relative to the domain, with "@" and the bare domain name meaning the apex.
func LookupDNSRecord(ctx context.Context, client API, domainID, domainName, recordIdentifier string) (id string, name string, err error) {
	if isRecordID(recordIdentifier) {
		id = recordIdentifier
		if cachedName, found := GetID(DNSRecordCacheKeyByID(id)); found {
			return id, cachedName, nil
		}
		records, err := client.GetDomainDNSRecords(ctx, domainID)
		if err != nil {
			return "", "", err
		}
		found := false
		for _, r := range records {
			if r.ID == id {
				name, found = r.Name, true
				break
			}
		}
		if !found {
			return "", "", fmt.Errorf("record %q not found in domain %s", id, domainName)
		}
	} else {
		name = RelativeName(recordIdentifier, domainName)
		if cachedID, found := GetID(DNSRecordCacheKey(domainID, name)); found {
			return cachedID, name, nil
		}
		records, err := client.GetDomainDNSRecords(ctx, domainID)
		if err != nil {
			return "", "", err
		}
		var matches []hover.DNSRecord
		for _, r := range records {
			if strings.EqualFold(r.Name, name) {
				matches = append(matches, r)
			}
		}
		switch len(matches) {
		case 0:
			return "", "", fmt.Errorf("record %q not found in domain %s", name, domainName)
		case 1:
			id, name = matches[0].ID, matches[0].Name
		default:
			return "", "", fmt.Errorf("record %q matches %d entries in domain %s; use the record ID", name, len(matches), domainName)
		}
	}

	SetID(DNSRecordCacheKey(domainID, name), id)
	SetID(DNSRecordCacheKeyByID(id), name)
	return id, name, nil
}

func LookupDNSRecordID(ctx context.Context, client API, domainID, domainName, recordIdentifier string) (string, error) {
	id, _, err := LookupDNSRecord(ctx, client, domainID, domainName, recordIdentifier)
	return id, err
}

// ForgetDNSRecord drops the cached name and ID of a removed record.
func ForgetDNSRecord(domainID, recordID, recordName string) {
	ForgetID(DNSRecordCacheKeyByID(recordID))
	if recordName != "" {
		ForgetID(DNSRecordCacheKey(domainID, recordName))
	}
}

// RelativeName turns a record name into the form Hover stores: "@" for the
// apex, otherwise the part in front of the domain.
func RelativeName(recordName, domainName string) string {
	name := strings.TrimSuffix(strings.ToLower(recordName), ".")
	domain := normalizeDomain(domainName)
	if name == "" || name == "@" || name == domain {
		return "@"
	}
	return strings.TrimSuffix(name, "."+domain)
}

func normalizeDomain(domain string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
}
