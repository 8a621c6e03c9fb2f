package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel routes messages between the pages of the login flow. It owns
// the global quit key and finishes the program on a successful
// [LoginResult].
type RootModel struct {
	pages map[string]tea.Model
	page  string

	quitByUser bool
	username   string
}

// NewRootModel registers pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string) RootModel {
	return RootModel{pages: pages, page: startPage}
}

func (r RootModel) Init() tea.Cmd {
	if cur := r.pages[r.page]; cur != nil {
		return cur.Init()
	}
	return nil
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			r.quitByUser = true
			return r, tea.Quit
		}

	case NavigateTo:
		next, ok := r.pages[msg.Page]
		if !ok {
			return r, nil
		}
		r.page = msg.Page
		if msg.Payload == nil {
			return r, next.Init()
		}
		payload := msg.Payload
		return r, func() tea.Msg { return payload }

	case LoginResult:
		if msg.Err == nil {
			r.username = msg.Username
			return r, tea.Quit
		}
	}

	cur := r.pages[r.page]
	if cur == nil {
		return r, nil
	}
	next, cmd := cur.Update(msg)
	r.pages[r.page] = next
	return r, cmd
}

func (r RootModel) View() string {
	cur := r.pages[r.page]
	if cur == nil {
		return ""
	}
	return appStyle.Render(cur.View())
}
