package domain

import (
	"fmt"
	"strconv"
	"time"

	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"dario.lol/hover/pkg/hover"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:     "get <domain>",
	Aliases: []string{"details"},
	Short:   "Show all details for a single domain",
	Args:    cobra.ExactArgs(1),
	Run: executor.NewBuilder[*hover.Client, *hover.Domain]().
		Setup(hoverapi.NewClient).
		Fetch("Fetching domain", fetchDomain).
		Caches(func(_ *cobra.Command, _ []string, d *hover.Domain) []string {
			if d == nil || d.ID == "" {
				return nil
			}
			return []string{"domain:" + d.ID}
		}).
		Display(printDomain).
		Build().
		CobraRun(),
}

func init() {
	DomainCmd.AddCommand(getCmd)
}

func fetchDomain(client *hover.Client, cmd *cobra.Command, args []string, progress chan<- string) (*hover.Domain, error) {
	ctx := executor.CommandContext(cmd)

	progress <- fmt.Sprintf("Looking up domain %q", args[0])
	id, _, err := hoverapi.LookupDomain(ctx, client, args[0])
	if err != nil {
		return nil, err
	}

	progress <- fmt.Sprintf("Fetching domain %s", id)
	d, err := client.GetDomain(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not fetch domain: %w", err)
	}
	if d.ID == "" {
		d.ID = id
	}
	return d, nil
}

func printDomain(d *hover.Domain, fetchDuration time.Duration, err error) {
	if err != nil {
		fmt.Println(ui.ErrorMessage("Failed to get domain", err))
		return
	}

	details := response.NewItemContent()
	details.Add("Name:", ui.Text(d.DomainName))
	details.Add("ID:", ui.Muted(d.ID))
	if d.Status != "" {
		details.Add("Status:", ui.Text(d.Status))
	}
	if d.AutoRenew {
		details.Add("Auto Renew:", ui.Success("Yes"))
	} else {
		details.Add("Auto Renew:", ui.Error("No"))
	}
	if d.RenewalDate != "" {
		details.Add("Renews:", ui.Muted(d.RenewalDate))
	}
	if len(d.Entries) > 0 {
		details.Add("Records:", ui.Text(strconv.Itoa(len(d.Entries))))
	}

	fmt.Println()
	fmt.Println(ui.Box(details.String(), "Domain Details"))

	if extra := response.StructuredData("Provider Data", d.Raw, "id", "domain_name", "status", "auto_renew", "renewal_date"); extra != "" {
		fmt.Println()
		fmt.Println(extra)
	}

	fmt.Println()
	fmt.Println(ui.Success(fmt.Sprintf("Fetched domain %s %s", d.DomainName, ui.Muted(fmt.Sprintf("(took %v)", fetchDuration)))))
}
