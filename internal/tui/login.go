// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
)

// LoginModel asks for a login and password and calls [service.AuthService.Login].
// The outcome arrives as a [LoginResult]; a successful one is consumed by
// [RootModel], which ends the login flow.
type LoginModel struct {
	ctx  context.Context
	auth service.AuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, auth service.AuthService) *LoginModel {
	return &LoginModel{
		ctx:    ctx,
		auth:   auth,
		inputs: credentialInputs(2),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case key.Matches(keyMsg, keys.tab):
			m.focus = focusInput(m.inputs, m.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focus = focusInput(m.inputs, m.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			login := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if login == "" || pass == "" {
				m.errMsg = "Логин и пароль обязательны"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(login, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	form := renderForm([]string{"Логин", "Пароль"}, m.inputs, "Войти", m.submitting, m.errMsg)
	return renderPage("ВХОД", form, "esc: назад │ tab: след. поле │ enter: подтвердить")
}

// cmdLogin blocks on the login callback, which the transport delivers on
// the event loop.
func (m *LoginModel) cmdLogin(login, pass string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		done := make(chan error, 1)
		auth.Login(ctx, login, pass, func(_ rpc.Result, err error) {
			done <- err
		})

		select {
		case err := <-done:
			return LoginResult{Username: login, Err: err}
		case <-ctx.Done():
			return LoginResult{Username: login, Err: ctx.Err()}
		}
	}
}

func credentialInputs(n int) []textinput.Model {
	inputs := make([]textinput.Model, n)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].CharLimit = 256
		if i > 0 {
			inputs[i].Placeholder = "password"
			inputs[i].EchoMode = textinput.EchoPassword
			inputs[i].EchoCharacter = '*'
		}
	}
	inputs[0].Placeholder = "login"
	inputs[0].CharLimit = 64
	inputs[0].Focus()
	return inputs
}

func focusInput(inputs []textinput.Model, focus, step int) int {
	inputs[focus].Blur()
	focus = (focus + step + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return focus
}

// renderForm lays inputs out as a two-column table with a submit button
// and an optional error line.
func renderForm(labels []string, inputs []textinput.Model, submit string, submitting bool, errMsg string) string {
	width := 0
	for _, l := range labels {
		width = max(width, lipgloss.Width(l))
	}

	var b strings.Builder
	for i, l := range labels {
		b.WriteString(l)
		b.WriteString(strings.Repeat(" ", width-lipgloss.Width(l)))
		b.WriteString(" │ [")
		b.WriteString(inputs[i].View())
		b.WriteString("]\n")
	}

	b.WriteString("\n[")
	b.WriteString(submit)
	if submitting {
		b.WriteString("...")
	}
	b.WriteString("]")

	if errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Ошибка: " + errMsg))
	}
	return b.String()
}
