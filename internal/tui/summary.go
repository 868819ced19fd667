package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// InputRow describes one scanned input document.
type InputRow struct {
	Name     string `json:"name"`
	Size     int64  `json:"size_bytes"`
	Checksum string `json:"checksum"`
}

// ComponentRow summarizes one consolidated component.
type ComponentRow struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"cad_type,omitempty"`
	MetricID string   `json:"metric_id,omitempty"`
	Sources  []string `json:"sources"`
	Points   int      `json:"points"`
}

// Summary is the report printed by the inspect command.
type Summary struct {
	Directory  string         `json:"directory"`
	DatasetID  string         `json:"dataset_id"`
	Inputs     []InputRow     `json:"inputs"`
	Components []ComponentRow `json:"components"`
}

// RenderSummary formats s for a terminal. When styled is false no escape
// sequences are emitted.
func RenderSummary(s Summary, styled bool) string {
	paint := func(style lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return style.Render(text)
	}

	var b strings.Builder

	b.WriteString(paint(TitleStyle, "CAD analysis output"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", paint(LabelStyle, "Directory: "), s.Directory)
	fmt.Fprintf(&b, "%s %s\n\n", paint(LabelStyle, "Dataset ID:"), s.DatasetID)

	var inputs strings.Builder
	for i, in := range s.Inputs {
		if i > 0 {
			inputs.WriteString("\n")
		}
		fmt.Fprintf(&inputs, "%s %-26s %9d B  %s",
			paint(SuccessStyle, SymbolCheck), in.Name, in.Size, paint(MutedStyle, shortChecksum(in.Checksum)))
	}
	if styled {
		b.WriteString(BoxStyle.Render(inputs.String()))
	} else {
		b.WriteString(inputs.String())
	}
	b.WriteString("\n\n")

	b.WriteString(paint(SubtitleStyle, fmt.Sprintf("%d components", len(s.Components))))
	b.WriteString("\n")

	idWidth := len("ID")
	for _, c := range s.Components {
		idWidth = max(idWidth, len(c.ID))
	}
	header := fmt.Sprintf("%-*s  %-20s  %-9s  %-6s  %-24s  %s", idWidth, "ID", "NAME", "TYPE", "METRIC", "SOURCES", "POINTS")
	b.WriteString(paint(HeaderStyle, header))
	b.WriteString("\n")
	for _, c := range s.Components {
		fmt.Fprintf(&b, "%-*s  %-20s  %-9s  %-6s  %-24s  %d\n",
			idWidth, c.ID, orDash(c.Name), orDash(c.Type), orDash(c.MetricID), strings.Join(c.Sources, ","), c.Points)
	}

	return b.String()
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
