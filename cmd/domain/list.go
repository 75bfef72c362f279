package domain

import (
	"fmt"
	"strings"
	"time"

	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"dario.lol/hover/pkg/hover"
	"github.com/spf13/cobra"
)

var status string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all domains in the account",
	Args:  cobra.NoArgs,
	Run: executor.NewBuilder[*hover.Client, []hover.Domain]().
		Setup(hoverapi.NewClient).
		Fetch("Fetching domains", fetchDomains).
		Caches(func(*cobra.Command, []string, []hover.Domain) []string {
			return []string{"domains"}
		}).
		Display(printDomains).
		Build().
		CobraRun(),
}

func init() {
	listCmd.Flags().StringVar(&status, "status", "", "Only show domains with this status (e.g. active)")
	DomainCmd.AddCommand(listCmd)
}

func fetchDomains(client *hover.Client, cmd *cobra.Command, _ []string, _ chan<- string) ([]hover.Domain, error) {
	domains, err := client.ListDomains(executor.CommandContext(cmd))
	if err != nil {
		return nil, err
	}

	for _, d := range domains {
		hoverapi.RememberDomain(d.ID, d.DomainName)
	}

	return domains, nil
}

func filterDomains(domains []hover.Domain, status string) []hover.Domain {
	if status == "" {
		return domains
	}
	var filtered []hover.Domain
	for _, d := range domains {
		if strings.EqualFold(d.Status, status) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func printDomains(domains []hover.Domain, fetchDuration time.Duration, err error) {
	rb := response.New().Title("Domains")
	if err != nil {
		rb.Error("Failed to list domains", err).Display()
		return
	}

	domains = filterDomains(domains, status)
	rb.Summary("Total:", len(domains)).NoItemsMessage("No domains found")

	for i, d := range domains {
		ic := response.NewItemContent().
			Add("Name:", ui.Text(d.DomainName)).
			Add("ID:", ui.Muted(d.ID))
		if d.Status != "" {
			ic.Add("Status:", ui.Text(d.Status))
		}
		if d.RenewalDate != "" {
			ic.Add("Renews:", ui.Small(d.RenewalDate))
		}

		cardTitle := ui.TruncateTitle(fmt.Sprintf("Domain %d: %s", i+1, d.DomainName), 40)
		rb.AddItem(cardTitle, ic.String())
	}

	if len(domains) > 0 {
		rb.FooterSuccessf("Found %d domain(s) %s", len(domains), ui.Muted(fmt.Sprintf("(took %v)", fetchDuration)))
	}
	rb.Display()
}
