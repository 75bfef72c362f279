package dns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/types"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"dario.lol/hover/pkg/hover"
	"github.com/alitto/pond/v2"
	"github.com/spf13/cobra"
)

const (
	maxConcurrentDomains = 4
	maxCardTitleWidth    = 40
)

var (
	recordType    string
	recordName    string
	recordContent string
)

type domainRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type recordListing struct {
	Domains []domainRef                 `json:"domains,omitempty"`
	Records []types.DNSRecordWithDomain `json:"records"`
}

var listCmd = &cobra.Command{
	Use:   "list [domain...]",
	Short: "Lists and filters DNS records, across the account or for the given domains",
	Run: executor.NewBuilder[*hover.Client, recordListing]().
		Setup(hoverapi.NewClient).
		Fetch("Fetching DNS records", fetchDnsRecords).
		Caches(listingTags).
		Display(printDnsRecords).
		Build().
		CobraRun(),
}

func init() {
	listCmd.Flags().StringVar(&recordType, "type", "", "Only show records of this type (A, MX, ...)")
	listCmd.Flags().StringVar(&recordName, "name", "", "Only show records with this name")
	listCmd.Flags().StringVar(&recordContent, "content", "", "Only show records with this content")
	DnsCmd.AddCommand(listCmd)
}

func listingTags(_ *cobra.Command, args []string, listing recordListing) []string {
	if len(args) == 0 {
		return []string{allRecordsTag}
	}
	tags := make([]string, 0, len(listing.Domains))
	for _, d := range listing.Domains {
		tags = append(tags, "domain:"+d.ID)
	}
	return tags
}

func fetchDnsRecords(client *hover.Client, cmd *cobra.Command, args []string, progress chan<- string) (recordListing, error) {
	ctx := executor.CommandContext(cmd)

	if len(args) == 0 {
		records, err := client.ListAllDNSRecords(ctx)
		if err != nil {
			return recordListing{}, fmt.Errorf("could not fetch DNS records: %w", err)
		}
		listing := recordListing{Records: make([]types.DNSRecordWithDomain, 0, len(records))}
		for _, r := range records {
			listing.Records = append(listing.Records, types.DNSRecordWithDomain{Record: r, DomainName: r.DomainName})
		}
		return listing, nil
	}

	if len(args) > 1 {
		progress <- fmt.Sprintf("Fetching DNS records for %d domains", len(args))
	}
	return fetchDomainRecords(ctx, client, args)
}

// fetchDomainRecords lists the records of each domain concurrently. Results
// keep the order of domains.
func fetchDomainRecords(ctx context.Context, client hoverapi.API, domains []string) (recordListing, error) {
	type domainRecords struct {
		domain  domainRef
		records []hover.DNSRecord
	}

	pool := pond.NewResultPool[domainRecords](maxConcurrentDomains)
	defer pool.StopAndWait()

	// The first failure cancels the lookups still in flight.
	groupCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	group := pool.NewGroupContext(groupCtx)
	for _, identifier := range domains {
		group.SubmitErr(func() (domainRecords, error) {
			id, name, err := hoverapi.LookupDomain(groupCtx, client, identifier)
			if err != nil {
				cancel()
				return domainRecords{}, fmt.Errorf("error finding domain %q: %w", identifier, err)
			}
			records, err := client.GetDomainDNSRecords(groupCtx, id)
			if err != nil {
				cancel()
				return domainRecords{}, fmt.Errorf("could not fetch DNS records for %s: %w", name, err)
			}
			return domainRecords{domain: domainRef{ID: id, Name: name}, records: records}, nil
		})
	}

	results, err := group.Wait()
	if err != nil {
		return recordListing{}, err
	}

	var listing recordListing
	for _, res := range results {
		listing.Domains = append(listing.Domains, res.domain)
		for _, r := range res.records {
			listing.Records = append(listing.Records, types.DNSRecordWithDomain{
				Record:     r,
				DomainID:   res.domain.ID,
				DomainName: res.domain.Name,
			})
		}
	}
	return listing, nil
}

func filterRecords(records []types.DNSRecordWithDomain, recordType, name, content string) []types.DNSRecordWithDomain {
	var filtered []types.DNSRecordWithDomain
	for _, r := range records {
		if recordType != "" && !strings.EqualFold(string(r.Record.Type), recordType) {
			continue
		}
		if name != "" && !strings.EqualFold(r.Record.Name, hoverapi.RelativeName(name, r.DomainName)) {
			continue
		}
		if content != "" && r.Record.Content != content {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func printDnsRecords(listing recordListing, fetchDuration time.Duration, err error) {
	rb := response.New().Title("DNS Records")
	if err != nil {
		rb.Error("Failed to list DNS records", err).Display()
		return
	}

	records := filterRecords(listing.Records, recordType, recordName, recordContent)

	domainNames := make(map[string]bool)
	for _, r := range records {
		domainNames[r.DomainName] = true
	}

	rb.Summary("Total:", len(records)).NoItemsMessage("No DNS records found matching your criteria")
	if len(domainNames) > 1 {
		rb.Summary("Domains:", len(domainNames))
	}

	for i, r := range records {
		ic := response.NewItemContent().
			Add("Name:", ui.Text(r.Record.Name)).
			Add("ID:", ui.Muted(r.Record.ID)).
			Add("Type:", ui.RecordType(string(r.Record.Type))).
			Add("Content:", ui.Text(r.Record.Content))
		if r.DomainName != "" {
			ic.Add("Domain:", ui.Text(r.DomainName))
		}
		if r.Record.TTL > 0 {
			ic.Add("TTL:", ui.Small(fmt.Sprintf("%ds", r.Record.TTL)))
		}

		cardTitle := fmt.Sprintf("Record %d", i+1)
		if r.Record.Name != "" {
			cardTitle = ui.TruncateTitle(fmt.Sprintf("Record %d: %s", i+1, r.Record.Name), maxCardTitleWidth)
		}
		rb.AddItem(cardTitle, ic.String())
	}

	if len(records) > 0 {
		rb.FooterSuccessf("Found %d DNS record(s) in %v", len(records), fetchDuration)
	}
	rb.Display()
}
