package dns

import (
	"fmt"

	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"github.com/spf13/cobra"
)

var updatedRecordKey = executor.NewKey[*RecordInformation]("updatedRecord")

var updateCmd = &cobra.Command{
	Use:   "update <domain> <record> <ip>",
	Short: "Points an existing DNS record at a new address",
	Long: `Replaces the content of an existing DNS record.

The record may be given as a Hover record ID (dns123456) or as a name
relative to the domain. Use "@" for the apex.`,
	Args: cobra.ExactArgs(3),
	Run: executor.New().
		WithClient().
		WithDomain().
		Step(executor.NewStep(updatedRecordKey, "Updating DNS record").Func(updateDnsRecord)).
		Invalidates(func(ctx *executor.Context) []string {
			return domainTags(ctx.DomainID)
		}).
		Display(printUpdateDnsResult).
		Run(),
}

func init() {
	DnsCmd.AddCommand(updateCmd)
}

func updateDnsRecord(ctx *executor.Context, progress chan<- string) (*RecordInformation, error) {
	recordIdentifier := ctx.Args[1]
	ip := ctx.Args[2]

	progress <- fmt.Sprintf("Looking up record %q", recordIdentifier)
	recordID, recordName, err := hoverapi.LookupDNSRecord(ctx.Ctx(), ctx.Client, ctx.DomainID, ctx.DomainName, recordIdentifier)
	if err != nil {
		return nil, fmt.Errorf("error finding record: %w", err)
	}

	progress <- fmt.Sprintf("Updating %s", recordName)
	if _, err := ctx.Client.UpdateDNSRecord(ctx.Ctx(), recordID, ip); err != nil {
		return nil, fmt.Errorf("error updating DNS record: %w", err)
	}

	return &RecordInformation{
		DomainID:   ctx.DomainID,
		DomainName: ctx.DomainName,
		RecordID:   recordID,
		RecordName: recordName,
		Content:    ip,
	}, nil
}

func printUpdateDnsResult(ctx *executor.Context) {
	rb := response.New()
	if ctx.Error != nil {
		rb.Error("Error updating DNS record", ctx.Error).Display()
		return
	}
	record := executor.Get(ctx, updatedRecordKey)
	rb.FooterSuccessf("Successfully updated DNS record %s (%s) -> %s in domain %s %s", record.RecordName, record.RecordID, record.Content, record.DomainName, ui.Muted(fmt.Sprintf("(took %v)", ctx.Duration))).Display()
}
