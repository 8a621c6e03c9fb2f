package tui

import "strings"

const overlayWidth = 60

// errorOverlayModel covers the viewer until enter or esc is pressed.
type errorOverlayModel struct {
	title   string
	message string
}

func newErrorOverlay(err error) *errorOverlayModel {
	return &errorOverlayModel{title: "Ошибка", message: humanizeError(err)}
}

func (m errorOverlayModel) View() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.message)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter / esc: закрыть"))
	return overlayBoxStyle.Width(overlayWidth).Render(b.String())
}
