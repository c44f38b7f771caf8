package cli

import (
	"fmt"
	"io"

	"github.com/andygrove/astro-video-player/internal/astrovideo"
)

var appVersion = "dev"

func SetVersion(version string) {
	if version != "" {
		appVersion = version
	}
}

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "%s, %s\n", astrovideo.AppName, astrovideo.FormatVersion(appVersion))
}
