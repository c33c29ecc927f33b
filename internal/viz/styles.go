package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(14)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)
)

// KV is one labelled line of a summary panel.
type KV struct {
	Key   string
	Value any
}

// Summary renders a titled panel of key/value lines.
func Summary(title string, rows ...KV) string {
	var sb strings.Builder
	sb.WriteString(Title.Render(title))
	for _, r := range rows {
		sb.WriteString("\n")
		sb.WriteString(MetricLabel.Render(r.Key))
		sb.WriteString(MetricValue.Render(formatValue(r.Value)))
	}
	return Panel.Render(sb.String())
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%.6g", x)
	default:
		return fmt.Sprint(x)
	}
}
