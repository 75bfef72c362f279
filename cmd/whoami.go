package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"dario.lol/hover/internal/config"
	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"dario.lol/hover/pkg/hover"
	"github.com/spf13/cobra"
)

type accountSummary struct {
	Username string         `json:"username"`
	Endpoint string         `json:"endpoint"`
	Domains  int            `json:"domains"`
	Statuses map[string]int `json:"statuses"`
}

var whoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Shows the Hover account the CLI is using",
	Args:  cobra.NoArgs,
	Run: executor.NewBuilder[*hover.Client, accountSummary]().
		Setup(hoverapi.NewClient).
		Fetch("Fetching account information", fetchAccount).
		Caches(func(_ *cobra.Command, _ []string, _ accountSummary) []string {
			return []string{"domains"}
		}).
		Display(printAccount).
		Build().
		CobraRun(),
}

func init() {
	rootCmd.AddCommand(whoAmICmd)
}

func fetchAccount(client *hover.Client, cmd *cobra.Command, _ []string, progress chan<- string) (accountSummary, error) {
	ctx := executor.CommandContext(cmd)

	progress <- "Logging in"
	if err := client.Login(ctx); err != nil {
		return accountSummary{}, err
	}

	progress <- "Counting domains"
	domains, err := client.ListDomains(ctx)
	if err != nil {
		return accountSummary{}, err
	}

	summary := accountSummary{
		Username: config.Cfg.Username,
		Endpoint: client.BaseURL(),
		Domains:  len(domains),
		Statuses: make(map[string]int),
	}
	for _, d := range domains {
		hoverapi.RememberDomain(d.ID, d.DomainName)
		status := d.Status
		if status == "" {
			status = "unknown"
		}
		summary.Statuses[status]++
	}
	return summary, nil
}

func printAccount(summary accountSummary, fetchDuration time.Duration, err error) {
	rb := response.New().Title("Account Information")

	if err != nil {
		rb.Error("Error getting account information", err).Display()
		return
	}

	identity := response.NewItemContent()
	identity.Add("Username:", ui.Text(summary.Username))
	identity.Add("Endpoint:", ui.Muted(summary.Endpoint))
	rb.AddItem("Hover Account", identity.String())

	domains := response.NewItemContent()
	domains.Add("Total:", ui.Text(fmt.Sprint(summary.Domains)))
	if len(summary.Statuses) > 0 {
		var badges []string
		for _, status := range slices.Sorted(maps.Keys(summary.Statuses)) {
			badges = append(badges, fmt.Sprintf("%s %d", ui.Badge.Render(status), summary.Statuses[status]))
		}
		domains.Add("Status:", strings.Join(badges, "  "))
	}
	rb.AddItem("Domains", domains.String())

	rb.FooterSuccessf("Authentication successful %s", ui.Muted(fmt.Sprintf("(took %v)", fetchDuration))).
		Display()
}
