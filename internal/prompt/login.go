package prompt

import (
	"errors"
	"strings"

	"dario.lol/hover/internal/ui"
	"github.com/charmbracelet/huh"
)

var ErrUserCancelled = errors.New("cancelled by user")

type Credentials struct {
	Username string
	Password string
}

// RunLoginPrompt asks for the Hover account credentials. username, when set,
// prefills the first field.
func RunLoginPrompt(username string) (Credentials, error) {
	var password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Description("The name you sign in to hover.com with").
				Placeholder("username").
				Value(&username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("username cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				Placeholder("Enter your password...").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if len(s) == 0 {
						return errors.New("password cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(ui.HuhTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Credentials{}, ErrUserCancelled
		}
		return Credentials{}, err
	}

	return Credentials{
		Username: strings.TrimSpace(username),
		Password: password,
	}, nil
}
