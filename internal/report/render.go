package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render styles accepted by TerminalRenderer. Any other value is passed to
// glamour as a standard style name such as "dark" or "light".
const (
	StyleAuto  = "auto"
	StylePlain = "notty"
)

// TerminalRenderer turns Markdown into styled terminal output.
type TerminalRenderer struct {
	Style    string
	WordWrap int
}

// Render styles markdown for the terminal.
func (r TerminalRenderer) Render(markdown string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(r.WordWrap)}
	switch strings.ToLower(strings.TrimSpace(r.Style)) {
	case "", StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	case "plain", StylePlain:
		opts = append(opts, glamour.WithStandardStyle(StylePlain))
	default:
		opts = append(opts, glamour.WithStandardStyle(r.Style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
