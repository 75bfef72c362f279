package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"dario.lol/hover/cmd/dns"
	"dario.lol/hover/cmd/domain"
	"dario.lol/hover/internal/config"
	"dario.lol/hover/internal/constants"
	"dario.lol/hover/internal/db"
	"dario.lol/hover/internal/flags"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/ui"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "hover",
	Short:             fmt.Sprintf("CLI to manage Hover domains and DNS version %s", constants.Version),
	Version:           constants.Version,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func init() {
	flags.RegisterGlobal(rootCmd)
	rootCmd.AddCommand(domain.DomainCmd)
	rootCmd.AddCommand(dns.DnsCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
	if verbose, _ := cmd.Flags().GetBool(flags.VerboseFlag); verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	return config.LoadConfig()
}

func teardown(cmd *cobra.Command, _ []string) {
	if path, _ := cmd.Flags().GetString(flags.MetricsFileFlag); path != "" {
		if err := hoverapi.WriteMetrics(path); err != nil {
			fmt.Fprintln(os.Stderr, ui.ErrorMessage("Failed to write metrics", err))
		}
	}
	_ = db.Close()
}

func configureColorScheme(_ lipgloss.LightDarkFunc) fang.ColorScheme {
	return ui.FangTheme()
}

func Execute() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {}), fang.WithColorSchemeFunc(configureColorScheme), fang.WithVersion(constants.Version)); err != nil {
		println(ui.ErrorBox("Error executing command", err))
		os.Exit(1)
	}
}
