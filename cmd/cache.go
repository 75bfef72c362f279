package cmd

import (
	"fmt"

	"dario.lol/hover/internal/db"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drops cached listings, and with --all the remembered domain and record IDs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		all, _ := cmd.Flags().GetBool("all")
		buckets := [][]byte{db.CacheBucket, db.TagsBucket}
		if all {
			buckets = append(buckets, db.IdentifiersBucket)
		}

		rb := response.New()
		removed, err := db.Clear(buckets...)
		if err != nil {
			rb.Error("Error clearing cache", err).Display()
			return
		}
		rb.FooterSuccessf("Cleared local cache %s", ui.Muted(fmt.Sprintf("(%d entries)", removed))).Display()
	},
}

func init() {
	cacheClearCmd.Flags().Bool("all", false, "Also forget cached domain and record IDs")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
