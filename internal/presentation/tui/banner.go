package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	lines := []string{
		` _                        _ _                         _ `,
		`| |__  _ __ ___  __ _  __| | |__   ___   __ _ _ __ __| |`,
		"| '_ \\| '__/ _ \\/ _` |/ _` | '_ \\ / _ \\ / _` | '__/ _` |",
		`| |_) | | |  __/ (_| | (_| | |_) | (_) | (_| | | | (_| |`,
		`|_.__/|_|  \___|\__,_|\__,_|_.__/ \___/ \__,_|_|  \__,_|`,
	}
	// Amber-to-green gradient, one color per row.
	colors := []string{"#fbbf24", "#a3e635", "#4ade80", "#34d399", "#2dd4bf"}

	fmt.Println()
	for i, line := range lines {
		fmt.Println(termenv.String(line).Foreground(p.Color(colors[i%len(colors)])))
	}
	fmt.Printf("  v%s\n\n", strings.TrimSpace(version))
}
