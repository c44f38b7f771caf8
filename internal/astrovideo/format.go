package astrovideo

import (
	"fmt"
	"math"
)

const maxSniffBytes = 16

// DetectFormat sniffs the container family from the first file bytes.
func DetectFormat(header []byte) string {
	if len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "AVI " {
		return "AVI"
	}
	if len(header) >= len(serMagic) && string(header[0:len(serMagic)]) == serMagic {
		return "SER"
	}
	return "Unknown"
}

func formatPixels(value uint64) string {
	if value == 0 {
		return ""
	}
	return fmt.Sprintf("%d pixels", value)
}

func formatBitDepth(bits uint32) string {
	if bits == 0 {
		return ""
	}
	return fmt.Sprintf("%d bits", bits)
}

func formatFrameRate(rate float64) string {
	if rate <= 0 {
		return ""
	}
	if math.Abs(rate-math.Round(rate)) < 0.0005 {
		return fmt.Sprintf("%.0f FPS", rate)
	}
	return fmt.Sprintf("%.3f FPS", rate)
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	totalMs := int64(math.Round(seconds * 1000))
	if totalMs < 1000 {
		return fmt.Sprintf("%d ms", totalMs)
	}
	totalSec := totalMs / 1000
	remMs := totalMs % 1000
	if totalSec < 60 {
		return fmt.Sprintf("%d s %d ms", totalSec, remMs)
	}
	minutes := totalSec / 60
	secondsOnly := totalSec % 60
	return fmt.Sprintf("%d min %d s", minutes, secondsOnly)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div := float64(size) / unit
	exp := 0
	units := []string{"KiB", "MiB", "GiB", "TiB"}
	for div >= unit && exp < len(units)-1 {
		div /= unit
		exp++
	}
	return fmt.Sprintf("%.2f %s", div, units[exp])
}
