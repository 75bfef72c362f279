package flags

import "github.com/spf13/cobra"

const (
	NoCacheFlag     = "no-cache"
	VerboseFlag     = "verbose"
	MetricsFileFlag = "metrics-file"
	YesFlag         = "yes"
)

func RegisterGlobal(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(NoCacheFlag, false, "Bypass the local response cache")
	cmd.PersistentFlags().BoolP(VerboseFlag, "v", false, "Log every API request to stderr")
	cmd.PersistentFlags().String(MetricsFileFlag, "", "Write request metrics in Prometheus text format to this file")
}

func RegisterConfirmation(cmd *cobra.Command) {
	cmd.Flags().BoolP(YesFlag, "y", false, "Skip confirmation prompt")
}
