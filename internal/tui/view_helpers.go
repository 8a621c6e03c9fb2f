package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-cloud-sync/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: выход"))

	return b.String()
}

// recordLine renders rec on one line: the id first, then the remaining
// fields sorted by key.
func recordLine(rec models.Record, idField string) string {
	var b strings.Builder

	if id, ok := rec.ID(idField); ok {
		b.WriteString(fmt.Sprintf("#%v", id))
	} else {
		b.WriteString("#-")
	}

	fields := make([]string, 0, len(rec))
	for k := range rec {
		if k != idField {
			fields = append(fields, k)
		}
	}
	slices.Sort(fields)

	for _, k := range fields {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(fmt.Sprint(rec[k]))
	}

	return b.String()
}

// fitText truncates v to max display cells, marking the cut with "...".
func fitText(v string, max int) string {
	if max <= 0 || lipgloss.Width(v) <= max {
		return v
	}

	runes := []rune(v)
	if max <= 3 {
		return string(runes[:min(max, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
