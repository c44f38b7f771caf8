package astrovideo_test

import (
	"testing"

	"github.com/andygrove/astro-video-player/pkg/astrovideo"
)

func TestProxyAPI(t *testing.T) {
	// Smoke test to ensure the proxy can be imported and types are consistent
	var _ astrovideo.Report
	var _ astrovideo.StreamKind = astrovideo.StreamGeneral
	var _ astrovideo.Bayer = astrovideo.BayerRGGB
}
