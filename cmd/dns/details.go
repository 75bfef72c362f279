package dns

import (
	"fmt"
	"strconv"
	"time"

	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/types"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"dario.lol/hover/pkg/hover"
	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details <domain> <record>",
	Short: "Shows all details for a single DNS record",
	Args:  cobra.ExactArgs(2),
	Run: executor.NewBuilder[*hover.Client, types.DNSRecordWithDomain]().
		Setup(hoverapi.NewClient).
		Fetch("Fetching DNS record details", fetchSingleDnsRecord).
		Caches(func(_ *cobra.Command, _ []string, record types.DNSRecordWithDomain) []string {
			return []string{"domain:" + record.DomainID}
		}).
		Display(printSingleDnsRecord).
		Build().
		CobraRun(),
}

func init() {
	DnsCmd.AddCommand(detailsCmd)
}

func fetchSingleDnsRecord(client *hover.Client, cmd *cobra.Command, args []string, progress chan<- string) (types.DNSRecordWithDomain, error) {
	ctx := executor.CommandContext(cmd)

	progress <- fmt.Sprintf("Looking up domain %q", args[0])
	domainID, domainName, err := hoverapi.LookupDomain(ctx, client, args[0])
	if err != nil {
		return types.DNSRecordWithDomain{}, err
	}

	progress <- fmt.Sprintf("Looking up record %q in %s", args[1], domainName)
	recordID, err := hoverapi.LookupDNSRecordID(ctx, client, domainID, domainName, args[1])
	if err != nil {
		return types.DNSRecordWithDomain{}, err
	}

	records, err := client.GetDomainDNSRecords(ctx, domainID)
	if err != nil {
		return types.DNSRecordWithDomain{}, fmt.Errorf("could not fetch DNS records: %w", err)
	}
	for _, r := range records {
		if r.ID == recordID {
			return types.DNSRecordWithDomain{Record: r, DomainID: domainID, DomainName: domainName}, nil
		}
	}
	return types.DNSRecordWithDomain{}, fmt.Errorf("record %s no longer exists in %s", recordID, domainName)
}

func printSingleDnsRecord(record types.DNSRecordWithDomain, fetchDuration time.Duration, err error) {
	if err != nil {
		fmt.Println(ui.ErrorMessage("Failed to get DNS record", err))
		return
	}

	r := record.Record
	mainIcb := response.NewItemContent()
	mainIcb.Add("Name:", ui.Text(r.Name))
	mainIcb.Add("ID:", ui.Muted(r.ID))
	mainIcb.Add("Domain:", ui.Text(record.DomainName))
	mainIcb.AddRaw("")
	mainIcb.Add("Type:", ui.RecordType(string(r.Type)))
	mainIcb.Add("Content:", ui.Text(r.Content))
	if r.TTL > 0 {
		mainIcb.Add("TTL:", ui.Text(strconv.Itoa(r.TTL)))
	}
	if r.IsDefault {
		mainIcb.Add("Default:", ui.Muted("Created by Hover"))
	}

	fmt.Println()
	fmt.Println(ui.Box(mainIcb.String(), "DNS Record Details"))

	if extra := response.StructuredData("Provider Data", r.Raw, "id", "name", "type", "content", "ttl", "is_default", "domain_name"); extra != "" {
		fmt.Println()
		fmt.Println(extra)
	}

	fmt.Println()
	fmt.Println(ui.Success(fmt.Sprintf("Fetched record %s %s", r.Name, ui.Muted(fmt.Sprintf("(took %v)", fetchDuration)))))
}
