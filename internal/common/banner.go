package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	version := GetVersion()
	build := GetBuild()
	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` 8888888b.  8888888888 888b    888 88888888888`,
		` 888   Y88b 888        8888b   888     888`,
		` 888    888 888        88888b  888     888`,
		` 888   d88P 8888888    888Y88b 888     888`,
		` 8888888P"  888        888 Y88b888     888`,
		` 888 T88b   888        888  Y88888     888`,
		` 888  T88b  888        888   Y8888     888`,
		` 888   T88b 8888888888 888    Y888     888  folio`,
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  %sversion%s   %s\n", lineColor, banner.ColorReset, version)
	fmt.Fprintf(os.Stderr, "  %sbuild%s     %s\n", lineColor, banner.ColorReset, build)
	fmt.Fprintf(os.Stderr, "  %senv%s       %s\n", lineColor, banner.ColorReset, config.Environment)
	fmt.Fprintf(os.Stderr, "  %sservice%s   %s\n", lineColor, banner.ColorReset, serviceURL)
	fmt.Fprintf(os.Stderr, "  %slistings%s  %s\n", lineColor, banner.ColorReset, config.Storage.Listings.Path)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
}
