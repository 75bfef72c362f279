package domain

import (
	"github.com/spf13/cobra"
)

var DomainCmd = &cobra.Command{
	Use:     "domain",
	Aliases: []string{"domains"},
	Short:   "Inspect the domains in your Hover account",
}
