package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown before an interactive
// session.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle gradient, green to teal.
	s1 := termenv.String(`  _                           _     _       `).Foreground(p.Color("#34d399"))
	s2 := termenv.String(` | |__  _ __ __ _ _ __ ___ | |__ | | ___   `).Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String(` | '_ \| '__/ _' | '_ ' _ \| '_ \| |/ _ \  `).Foreground(p.Color("#22d3ee"))
	s4 := termenv.String(` | |_) | | | (_| | | | | | | |_) | |  __/  `).Foreground(p.Color("#38bdf8"))
	s5 := termenv.String(` |_.__/|_|  \__,_|_| |_| |_|_.__/|_|\___|  `).Foreground(p.Color("#60a5fa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
	fmt.Println(termenv.String("  bramble "+version).Faint())
	fmt.Println()
}
