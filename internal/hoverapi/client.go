package hoverapi

import (
	"net/http"
	"os"
	"sync"

	"dario.lol/hover/internal/config"
	"dario.lol/hover/internal/constants"
	"dario.lol/hover/internal/prompt"
	"dario.lol/hover/pkg/hover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	// Registry collects the client metrics of this process.
	Registry = prometheus.NewRegistry()

	metricsOnce sync.Once
	metrics     *hover.Metrics
)

func Metrics() *hover.Metrics {
	metricsOnce.Do(func() {
		metrics = hover.NewMetrics(Registry)
	})
	return metrics
}

// WriteMetrics writes the collected metrics in the Prometheus text format.
func WriteMetrics(path string) error {
	Metrics()
	return prometheus.WriteToTextfile(path, Registry)
}

// NewClient builds a Hover client from the config file and environment.
// Missing credentials are prompted for when stdin is a terminal.
func NewClient() (*hover.Client, error) {
	if err := config.LoadConfig(); err != nil {
		return nil, err
	}

	if !config.Cfg.HasCredentials() {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, config.ErrNotLoggedIn
		}
		credentials, err := prompt.RunLoginPrompt(config.Cfg.Username)
		if err != nil {
			return nil, err
		}
		config.Cfg.Username = credentials.Username
		config.Cfg.Password = credentials.Password
	}

	return ClientFromConfig(config.Cfg), nil
}

func ClientFromConfig(cfg config.Config) *hover.Client {
	return hover.NewClient(cfg.Username, cfg.Password,
		hover.WithBaseURL(cfg.BaseURL),
		hover.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		hover.WithUserAgent(constants.UserAgent()),
		hover.WithLogger(logrus.StandardLogger().WithField("component", "hover")),
		hover.WithMetrics(Metrics()),
	)
}
