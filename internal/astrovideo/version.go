package astrovideo

const (
	AppName = "astro-video-player"
	AppURL  = "https://github.com/andygrove/astro-video-player"
)

var AppVersion = "dev"

func SetAppVersion(version string) {
	if version != "" {
		AppVersion = version
	}
}

func FormatVersion(version string) string {
	if version == "" || version == "dev" {
		return "dev build"
	}
	return "v" + version
}
