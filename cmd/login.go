package cmd

import (
	"errors"
	"fmt"
	"os"

	"dario.lol/hover/internal/config"
	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/prompt"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/pkg/hover"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check that your Hover credentials are accepted",
	Long: `Logs in to Hover with the configured credentials and reports the result.

Credentials come from ~/.hover-cli.yaml or the HOVER_USERNAME and
HOVER_PASSWORD environment variables, and are prompted for when missing.
Nothing is written to disk.`,
	Args: cobra.NoArgs,
	Run:  executeLogin,
}

var loginUsername string

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Hover username, prompts for the password")

	rootCmd.AddCommand(loginCmd)
}

func executeLogin(cmd *cobra.Command, _ []string) {
	client, err := loginClient()
	if err != nil {
		if errors.Is(err, prompt.ErrUserCancelled) {
			return
		}
		fmt.Println(ui.ErrorBox("Could not read Hover credentials.", err))
		os.Exit(1)
	}

	if err := client.Login(executor.CommandContext(cmd)); err != nil {
		fmt.Println(ui.ErrorBox("Invalid credentials, could not log in.", err))
		os.Exit(1)
	}

	fmt.Println(ui.Success("Your Hover credentials were accepted."))
}

func loginClient() (*hover.Client, error) {
	if loginUsername == "" {
		return hoverapi.NewClient()
	}

	cfg := config.Cfg
	cfg.Username = loginUsername
	if cfg.Password == "" {
		credentials, err := prompt.RunLoginPrompt(loginUsername)
		if err != nil {
			return nil, err
		}
		cfg.Username = credentials.Username
		cfg.Password = credentials.Password
	}
	return hoverapi.ClientFromConfig(cfg), nil
}
