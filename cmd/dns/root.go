package dns

import (
	"github.com/spf13/cobra"
)

type RecordInformation struct {
	DomainID   string `json:"domain_id"`
	DomainName string `json:"domain_name"`
	RecordID   string `json:"record_id"`
	RecordName string `json:"record_name"`
	Content    string `json:"content,omitempty"`
}

var DnsCmd = &cobra.Command{
	Use:   "dns",
	Short: "Manage Hover DNS records",
}

// domainTags names the cache entries a change to the domain makes stale.
func domainTags(domainID string) []string {
	return []string{"domain:" + domainID, allRecordsTag}
}

const allRecordsTag = "dns:all"
