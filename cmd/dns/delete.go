package dns

import (
	"errors"
	"fmt"
	"os"

	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/flags"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errDeleteCancelled = errors.New("deletion cancelled")

var (
	targetRecordKey  = executor.NewKey[*RecordInformation]("targetRecord")
	confirmedKey     = executor.NewKey[bool]("confirmed")
	deletedRecordKey = executor.NewKey[*RecordInformation]("deletedRecord")
)

var deleteCmd = &cobra.Command{
	Use:     "delete <domain> <record>",
	Aliases: []string{"rm"},
	Short:   "Deletes a DNS record",
	Args:    cobra.ExactArgs(2),
	Run: executor.New().
		WithClient().
		WithDomain().
		Step(executor.NewStep(targetRecordKey, "Resolving DNS record").Func(resolveDeleteTarget)).
		Step(executor.NewStep(confirmedKey, "").Func(confirmDelete).Silent()).
		Step(executor.NewStep(deletedRecordKey, "Deleting DNS record").Func(deleteDnsRecord)).
		Invalidates(func(ctx *executor.Context) []string {
			return domainTags(ctx.DomainID)
		}).
		Display(printDeleteDnsResult).
		Run(),
}

func init() {
	flags.RegisterConfirmation(deleteCmd)
	DnsCmd.AddCommand(deleteCmd)
}

func resolveDeleteTarget(ctx *executor.Context, _ chan<- string) (*RecordInformation, error) {
	recordID, recordName, err := hoverapi.LookupDNSRecord(ctx.Ctx(), ctx.Client, ctx.DomainID, ctx.DomainName, ctx.Args[1])
	if err != nil {
		return nil, fmt.Errorf("error finding record: %w", err)
	}
	return &RecordInformation{
		DomainID:   ctx.DomainID,
		DomainName: ctx.DomainName,
		RecordID:   recordID,
		RecordName: recordName,
	}, nil
}

func confirmDelete(ctx *executor.Context, _ chan<- string) (bool, error) {
	if yes, _ := ctx.Cmd.Flags().GetBool(flags.YesFlag); yes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing to delete without confirmation, pass --%s", flags.YesFlag)
	}

	target := executor.Get(ctx, targetRecordKey)
	confirmed, err := ui.Confirm(fmt.Sprintf("Delete %s (%s) from %s?", target.RecordName, target.RecordID, target.DomainName))
	if err != nil {
		return false, err
	}
	if !confirmed {
		return false, errDeleteCancelled
	}
	return true, nil
}

func deleteDnsRecord(ctx *executor.Context, _ chan<- string) (*RecordInformation, error) {
	target := executor.Get(ctx, targetRecordKey)
	if err := ctx.Client.RemoveDNSRecord(ctx.Ctx(), target.RecordID); err != nil {
		return nil, fmt.Errorf("error deleting DNS record: %w", err)
	}
	hoverapi.ForgetDNSRecord(target.DomainID, target.RecordID, target.RecordName)
	return target, nil
}

func printDeleteDnsResult(ctx *executor.Context) {
	if errors.Is(ctx.Error, errDeleteCancelled) {
		fmt.Println(ui.Warning("Deletion cancelled"))
		return
	}
	rb := response.New()
	if ctx.Error != nil {
		rb.Error("Error deleting DNS record", ctx.Error).Display()
		return
	}
	deleted := executor.Get(ctx, deletedRecordKey)
	rb.FooterSuccessf("Successfully deleted DNS record %s (%s) in domain %s %s", deleted.RecordName, deleted.RecordID, deleted.DomainName, ui.Muted(fmt.Sprintf("(took %v)", ctx.Duration))).Display()
}
