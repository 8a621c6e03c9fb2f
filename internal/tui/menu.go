package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	label string
	page  string
}

// MenuModel is the start page of the login flow.
type MenuModel struct {
	items  []menuItem
	idx    int
	notice string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{label: "Войти", page: "login"},
			{label: "Зарегистрироваться", page: "register"},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterSuccessNotice:
		m.notice = "Регистрация прошла успешно"
		if msg.Username != "" {
			m.notice = "Пользователь " + msg.Username + " успешно зарегистрирован"
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			m.idx = max(0, m.idx-1)
		case key.Matches(msg, keys.down):
			m.idx = min(len(m.items)-1, m.idx+1)
		case key.Matches(msg, keys.enter):
			nav := NavigateTo{Page: m.items[m.idx].page}
			m.notice = ""
			return m, func() tea.Msg { return nav }
		}
	}
	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(statusStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		if i == m.idx {
			b.WriteString(cursorStyle.Render("> " + item.label))
		} else {
			b.WriteString("  " + item.label)
		}
		b.WriteString("\n")
	}

	return renderPage("ГЛАВНОЕ МЕНЮ", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация")
}
