package constants

import (
	"fmt"
	"runtime"
)

var (
	Version    = "0.0.1-dev"
	ProjectURL = "https://dario.lol/hover"
)

const (
	ServiceName = "hover-cli"
	ConfigName  = ".hover-cli"
	EnvPrefix   = "HOVER"
)

func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s; %s) +%s", ServiceName, Version, runtime.GOOS, runtime.GOARCH, ProjectURL)
}
