package hover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// ListDomains retrieves every domain in the account.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/domains", nil)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	var domains []Domain
	if err := decodePayload(raw, &domains); err != nil {
		return nil, fmt.Errorf("parsing domains: %w", err)
	}

	c.logger.WithField("count", len(domains)).Debug("listed domains")

	return domains, nil
}

// ListAllDNSRecords retrieves every DNS record across the account.
func (c *Client) ListAllDNSRecords(ctx context.Context) ([]DNSRecord, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/dns", nil)
	if err != nil {
		return nil, fmt.Errorf("listing DNS records: %w", err)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing DNS records: %w", err)
	}

	c.logger.WithField("count", len(records)).Debug("listed DNS records")

	return records, nil
}

// GetDomain retrieves a single domain.
func (c *Client) GetDomain(ctx context.Context, domain string) (*Domain, error) {
	if err := requireArgs(arg{"domain", domain}); err != nil {
		return nil, err
	}

	raw, err := c.Do(ctx, http.MethodGet, domainPath(domain), nil)
	if err != nil {
		return nil, fmt.Errorf("getting domain %s: %w", domain, err)
	}

	// The single-domain endpoint reuses the "domains" key; accept either an
	// object or a one-element list under it.
	var d Domain
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Domain
		if err := decodePayload(raw, &list); err != nil {
			return nil, fmt.Errorf("parsing domain %s: %w", domain, err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("domain %s: empty response", domain)
		}
		d = list[0]
	} else if err := decodePayload(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing domain %s: %w", domain, err)
	}

	return &d, nil
}

// GetDomainDNSRecords retrieves the DNS records of a single domain.
func (c *Client) GetDomainDNSRecords(ctx context.Context, domain string) ([]DNSRecord, error) {
	if err := requireArgs(arg{"domain", domain}); err != nil {
		return nil, err
	}

	raw, err := c.Do(ctx, http.MethodGet, domainPath(domain)+"/dns", nil)
	if err != nil {
		return nil, fmt.Errorf("listing DNS records for %s: %w", domain, err)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing DNS records for %s: %w", domain, err)
	}

	c.logger.WithFields(logrus.Fields{
		"domain": domain,
		"count":  len(records),
	}).Debug("listed domain DNS records")

	return records, nil
}

// CreateARecord creates an A record named subdomain pointing at ip.
// The returned record is nil when Hover answers with a bare confirmation.
func (c *Client) CreateARecord(ctx context.Context, domain, subdomain, ip string) (*DNSRecord, error) {
	if err := requireArgs(arg{"domain", domain}, arg{"subdomain", subdomain}, arg{"ip", ip}); err != nil {
		return nil, err
	}

	record, err := c.createRecord(ctx, domain, recordBody{
		Name:    subdomain,
		Type:    RecordTypeA,
		Content: ip,
	})
	if err != nil {
		return nil, fmt.Errorf("creating A record %s in %s: %w", subdomain, domain, err)
	}

	c.logger.WithFields(logrus.Fields{
		"domain": domain,
		"name":   subdomain,
		"ip":     ip,
	}).Info("created A record")

	return record, nil
}

// CreateMXRecord creates an MX record named subdomain with content
// "<priority> <ip>".
func (c *Client) CreateMXRecord(ctx context.Context, domain, subdomain string, priority uint16, ip string) (*DNSRecord, error) {
	if err := requireArgs(arg{"domain", domain}, arg{"subdomain", subdomain}, arg{"ip", ip}); err != nil {
		return nil, err
	}

	record, err := c.createRecord(ctx, domain, recordBody{
		Name:    subdomain,
		Type:    RecordTypeMX,
		Content: fmt.Sprintf("%d %s", priority, ip),
	})
	if err != nil {
		return nil, fmt.Errorf("creating MX record %s in %s: %w", subdomain, domain, err)
	}

	c.logger.WithFields(logrus.Fields{
		"domain":   domain,
		"name":     subdomain,
		"priority": priority,
		"ip":       ip,
	}).Info("created MX record")

	return record, nil
}

func (c *Client) createRecord(ctx context.Context, domain string, body recordBody) (*DNSRecord, error) {
	raw, err := c.Do(ctx, http.MethodPost, domainPath(domain)+"/dns", body)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

// UpdateDNSRecord replaces the content of an existing record with ip.
func (c *Client) UpdateDNSRecord(ctx context.Context, id, ip string) (*DNSRecord, error) {
	if err := requireArgs(arg{"dns id", id}, arg{"ip", ip}); err != nil {
		return nil, err
	}

	raw, err := c.Do(ctx, http.MethodPut, recordPath(id), recordBody{Content: ip})
	if err != nil {
		return nil, fmt.Errorf("updating DNS record %s: %w", id, err)
	}

	record, err := decodeRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing DNS record %s: %w", id, err)
	}

	c.logger.WithFields(logrus.Fields{
		"id": id,
		"ip": ip,
	}).Info("updated DNS record")

	return record, nil
}

// RemoveDNSRecord deletes a record.
func (c *Client) RemoveDNSRecord(ctx context.Context, id string) error {
	if err := requireArgs(arg{"dns id", id}); err != nil {
		return err
	}

	if _, err := c.Do(ctx, http.MethodDelete, recordPath(id), nil); err != nil {
		return fmt.Errorf("removing DNS record %s: %w", id, err)
	}

	c.logger.WithField("id", id).Info("removed DNS record")

	return nil
}

// decodeRecords accepts a flat list of records as well as a list of domains
// carrying their records under "entries". Records taken from a domain get its
// name when they lack one.
func decodeRecords(raw json.RawMessage) ([]DNSRecord, error) {
	var items []json.RawMessage
	if err := decodePayload(raw, &items); err != nil {
		return nil, err
	}

	records := make([]DNSRecord, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			return nil, err
		}

		if _, grouped := fields["entries"]; !grouped {
			var record DNSRecord
			if err := json.Unmarshal(item, &record); err != nil {
				return nil, err
			}
			records = append(records, record)
			continue
		}

		var domain Domain
		if err := json.Unmarshal(item, &domain); err != nil {
			return nil, err
		}
		for _, record := range domain.Entries {
			if record.DomainName == "" {
				record.DomainName = domain.DomainName
			}
			records = append(records, record)
		}
	}
	return records, nil
}

// decodeRecord returns nil for an empty payload and for payloads that are
// not a JSON object, such as a bare confirmation value.
func decodeRecord(raw []byte) (*DNSRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}

	var record DNSRecord
	if err := decodePayload(trimmed, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func domainPath(domain string) string {
	return "/domains/" + url.PathEscape(domain)
}

func recordPath(id string) string {
	return "/dns/" + url.PathEscape(id)
}
