// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-cloud-sync/internal/collection"
	"github.com/MKhiriev/go-cloud-sync/models"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputNew
	inputEdit
)

const statusTTL = 2 * time.Second

// ViewerModel browses a synchronized collection. The list is refreshed from
// [collection.Collection.Records] whenever the collection reports a change.
type ViewerModel struct {
	coll *collection.Collection

	records []models.Record
	idx     int
	detail  bool

	mode  inputMode
	input textinput.Model

	confirmDelete bool
	status        string
	overlay       *errorOverlayModel
}

// NewViewerModel creates a viewer over coll. A nil coll can be attached
// later, before the program starts.
func NewViewerModel(coll *collection.Collection) *ViewerModel {
	in := textinput.New()
	in.Placeholder = `{"field": "value"}`
	in.Width = 60
	in.CharLimit = 4096

	m := &ViewerModel{input: in}
	m.attach(coll)
	return m
}

func (m *ViewerModel) attach(coll *collection.Collection) {
	m.coll = coll
	m.refresh()
}

func (m *ViewerModel) Init() tea.Cmd {
	return nil
}

func (m *ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		m.refresh()
		return m, nil
	case syncErrMsg:
		m.overlay = newErrorOverlay(msg.err)
		return m, nil
	case copiedMsg:
		return m, m.flash("Скопировано")
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.coll == nil {
		return m, nil
	}
	if !ok {
		if m.mode != inputNone {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.overlay != nil {
		if key.Matches(keyMsg, keys.enter) || key.Matches(keyMsg, keys.esc) {
			m.overlay = nil
		}
		return m, nil
	}

	if m.mode != inputNone {
		return m.updateInput(keyMsg)
	}

	if m.confirmDelete {
		m.confirmDelete = false
		if key.Matches(keyMsg, keys.yes) {
			m.coll.Splice(m.idx, 1)
			return m, m.flash("Удаление отправлено")
		}
		return m, nil
	}

	if m.detail {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.detail = false
		case key.Matches(keyMsg, keys.copy):
			return m, m.cmdCopy()
		case key.Matches(keyMsg, keys.edit):
			return m, m.startInput(inputEdit)
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.records)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if _, ok := m.current(); ok {
			m.detail = true
		}
	case key.Matches(keyMsg, keys.newItem):
		return m, m.startInput(inputNew)
	case key.Matches(keyMsg, keys.edit):
		if _, ok := m.current(); ok {
			return m, m.startInput(inputEdit)
		}
	case key.Matches(keyMsg, keys.delete):
		if _, ok := m.current(); ok {
			m.confirmDelete = true
		}
	case key.Matches(keyMsg, keys.pop):
		if _, err := m.coll.Pop(); err != nil {
			m.overlay = newErrorOverlay(err)
			return m, nil
		}
		return m, m.flash("Удаление отправлено")
	case key.Matches(keyMsg, keys.shift):
		if _, err := m.coll.Shift(); err != nil {
			m.overlay = newErrorOverlay(err)
			return m, nil
		}
		return m, m.flash("Удаление отправлено")
	case key.Matches(keyMsg, keys.reverse):
		m.coll.Reverse()
		m.refresh()
	case key.Matches(keyMsg, keys.sort):
		m.coll.Sort(nil)
		m.refresh()
	case key.Matches(keyMsg, keys.copy):
		if _, ok := m.current(); ok {
			return m, m.cmdCopy()
		}
	}

	return m, nil
}

func (m *ViewerModel) updateInput(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.stopInput()
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		var rec models.Record
		if err := json.Unmarshal([]byte(m.input.Value()), &rec); err != nil || rec == nil {
			m.overlay = &errorOverlayModel{title: "Неверный ввод", message: "Ожидается JSON-объект"}
			return m, nil
		}

		mode := m.mode
		m.stopInput()
		if mode == inputNew {
			m.coll.Push(rec)
			return m, m.flash("Запись отправлена")
		}

		if _, err := m.coll.UpdateAt(m.idx, rec); err != nil {
			m.overlay = newErrorOverlay(err)
			return m, nil
		}
		m.refresh()
		return m, m.flash("Изменение отправлено")
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return m, cmd
}

func (m *ViewerModel) View() string {
	if m.coll == nil {
		return renderPage("КОЛЛЕКЦИЯ", "Загрузка...", "")
	}
	if m.overlay != nil {
		return m.overlay.View()
	}

	if m.mode != inputNone {
		title := "НОВАЯ ЗАПИСЬ"
		if m.mode == inputEdit {
			title = "ИЗМЕНЕНИЕ ЗАПИСИ"
		}
		return renderPage(title, "JSON │ ["+m.input.View()+"]", "enter: отправить │ esc: отмена")
	}

	if m.detail {
		rec, ok := m.current()
		if !ok {
			return renderPage("ЗАПИСЬ", "", "esc: назад")
		}
		raw, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			raw = []byte(err.Error())
		}
		return renderPage("ЗАПИСЬ", m.withStatus(string(raw)), "esc: назад │ e: изменить │ c: копировать")
	}

	var b strings.Builder
	if len(m.records) == 0 {
		b.WriteString("Коллекция пуста")
	}
	for i, rec := range m.records {
		line := fitText(recordLine(rec, m.coll.IDField()), 72)
		if i == m.idx {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if m.confirmDelete {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Удалить запись? y/n"))
	}

	title := fmt.Sprintf("КОЛЛЕКЦИЯ %s (%d)", m.coll.Name(), len(m.records))
	return renderPage(title, m.withStatus(strings.TrimRight(b.String(), "\n")),
		"enter: открыть │ n: новая │ e: изменить │ d: удалить │ p/f: pop/shift │ r: reverse │ s: sort │ c: копировать │ q: выход")
}

func (m *ViewerModel) refresh() {
	m.records = nil
	if m.coll != nil {
		m.records = m.coll.Records()
	}
	if m.idx >= len(m.records) {
		m.idx = len(m.records) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
	if len(m.records) == 0 {
		m.detail = false
	}
}

func (m *ViewerModel) current() (models.Record, bool) {
	if m.idx < 0 || m.idx >= len(m.records) {
		return nil, false
	}
	return m.records[m.idx], true
}

func (m *ViewerModel) startInput(mode inputMode) tea.Cmd {
	m.mode = mode
	m.input.SetValue("")
	if mode == inputEdit {
		if rec, ok := m.current(); ok {
			patch := rec.Clone()
			delete(patch, m.coll.IDField())
			if raw, err := json.Marshal(patch); err == nil {
				m.input.SetValue(string(raw))
			}
		}
	}
	m.input.Focus()
	return textinput.Blink
}

func (m *ViewerModel) stopInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m *ViewerModel) withStatus(data string) string {
	if m.status == "" {
		return data
	}
	return data + "\n\n" + statusStyle.Render(m.status)
}

func (m *ViewerModel) flash(status string) tea.Cmd {
	m.status = status
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *ViewerModel) cmdCopy() tea.Cmd {
	rec, ok := m.current()
	if !ok {
		return nil
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return func() tea.Msg { return syncErrMsg{err: err} }
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(string(raw)); err != nil {
			return syncErrMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}
