package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Body         string
	StatusLine   string
	Footer       string
	Notification string
	// LowSensory drops colour and borders.
	LowSensory bool
	Width      int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	plainStyle = lipgloss.NewStyle()
	quietPanel = lipgloss.NewStyle().Padding(1, 2)
)

const defaultWidth = 72

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 || width > defaultWidth+4 {
		width = defaultWidth
	}

	header, status, panel, footer := headerStyle, statusStyle, panelStyle, footerStyle
	if data.LowSensory {
		header, status, panel, footer = plainStyle, plainStyle, quietPanel, plainStyle
	}

	lines := []string{header.Render(data.Header), panel.Width(width).Render(data.Body)}
	if data.StatusLine != "" {
		lines = append(lines, status.Render(data.StatusLine))
	}
	if data.Notification != "" {
		lines = append(lines, panel.Width(width).Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders copy through glamour, falling back to the raw text.
func RenderMarkdown(md string, lowSensory bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if lowSensory {
		style = "ascii"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
