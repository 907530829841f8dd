package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders dialogue text through glamour.
// Script authors frequently use markdown emphasis in content lines, so the
// interactive shell runs every segment through it.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(text string) (string, error) {
		if err != nil {
			return text, nil
		}
		return r.Render(text)
	}
}
