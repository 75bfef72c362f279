package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"dario.lol/hover/internal/constants"
	"dario.lol/hover/pkg/hover"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Caching  bool          `mapstructure:"caching"`
}

var ErrNotLoggedIn = errors.New("username and password must be set in ~/" + constants.ConfigName + ".yaml or via HOVER_USERNAME and HOVER_PASSWORD")

var Cfg = defaults()

func defaults() Config {
	return Config{
		BaseURL: hover.DefaultBaseURL,
		Timeout: hover.DefaultTimeout,
		Caching: true,
	}
}

func (c Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

func newViper() (*viper.Viper, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(home)

	d := defaults()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("caching", d.Caching)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("username")
	_ = v.BindEnv("password")
	_ = v.BindEnv("base_url")
	_ = v.BindEnv("timeout")
	_ = v.BindEnv("caching")

	return v, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// LoadConfig populates Cfg from the config file and environment. A missing
// config file is not an error; missing credentials are reported by
// HasCredentials.
func LoadConfig() error {
	v, err := newViper()
	if err != nil {
		return err
	}
	if err := readConfig(v); err != nil {
		return err
	}

	cfg := defaults()
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Path returns the location of the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.ConfigName+".yaml"), nil
}

// SaveCaching writes the caching setting back to the config file. Other
// keys already in the file are preserved; values coming from the
// environment are not written.
func SaveCaching() error {
	path, err := Path()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	if _, statErr := os.Stat(path); statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	v.Set("caching", Cfg.Caching)
	return v.WriteConfigAs(path)
}
