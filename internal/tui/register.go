package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
)

// RegisterModel is the Bubble Tea model for the registration screen. It renders
// three text inputs (login, password and password confirmation). Leaving the
// login field triggers an availability check; submitting the form dispatches
// an async registration command.
// On success the form is reset and the model navigates back to the menu with a
// [RegisterSuccessNotice] payload.
type RegisterModel struct {
	ctx  context.Context
	auth service.AuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string

	checked   string
	available bool
}

// NewRegisterModel creates a [RegisterModel]. The login field receives focus
// immediately; the password fields use masked echo.
func NewRegisterModel(ctx context.Context, auth service.AuthService) *RegisterModel {
	fields := credentialInputs(3)
	fields[2].Placeholder = "repeat password"

	return &RegisterModel{
		ctx:    ctx,
		auth:   auth,
		inputs: fields,
	}
}

// Init implements [tea.Model].
func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - registerDoneMsg:  clears submitting state; on error, populates errMsg;
//     on success, resets the form and navigates to the menu.
//   - availabilityMsg:  records whether the checked login is free.
//   - esc:              cancels and navigates back to the menu.
//   - tab/shift+tab:    moves focus; leaving the login field checks it.
//   - enter:            validates inputs and dispatches registration.
//
// All other key events are forwarded to the focused input widget.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}

		m.errMsg = ""
		m.resetForm()
		return m, func() tea.Msg {
			return NavigateTo{
				Page:    "menu",
				Payload: RegisterSuccessNotice{Username: msg.username},
			}
		}

	case availabilityMsg:
		// Stale answer for a login that has since been edited.
		if msg.username != strings.TrimSpace(m.inputs[0].Value()) {
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.checked = msg.username
		m.available = msg.available
		if !msg.available {
			m.errMsg = "Логин уже занят"
		} else {
			m.errMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case key.Matches(msg, keys.tab), key.Matches(msg, keys.backtab):
			step := 1
			if key.Matches(msg, keys.backtab) {
				step = -1
			}
			leaving := m.focus
			m.focus = focusInput(m.inputs, m.focus, step)
			if leaving == 0 {
				return m, m.cmdCheck(strings.TrimSpace(m.inputs[0].Value()))
			}
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}

			login := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			repeat := m.inputs[2].Value()

			if login == "" || pass == "" || repeat == "" {
				m.errMsg = "Все поля обязательны"
				return m, nil
			}
			if m.checked == login && !m.available {
				m.errMsg = "Логин уже занят"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(login, pass, repeat)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *RegisterModel) View() string {
	form := renderForm([]string{"Логин", "Пароль", "Повтор пароля"}, m.inputs, "Зарегистрироваться", m.submitting, m.errMsg)
	if m.checked != "" && m.checked == strings.TrimSpace(m.inputs[0].Value()) && m.available {
		form = statusStyle.Render("Логин "+m.checked+" свободен") + "\n\n" + form
	}
	return renderPage("РЕГИСТРАЦИЯ", form, "esc: назад │ tab: след. поле │ enter: подтвердить")
}

func (m *RegisterModel) cmdRegister(login, pass, repeat string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		done := make(chan error, 1)
		auth.Register(ctx, login, pass, repeat, func(_ rpc.Result, err error) {
			done <- err
		})

		select {
		case err := <-done:
			return registerDoneMsg{username: login, err: err}
		case <-ctx.Done():
			return registerDoneMsg{username: login, err: ctx.Err()}
		}
	}
}

func (m *RegisterModel) cmdCheck(login string) tea.Cmd {
	if login == "" {
		return nil
	}
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		type answer struct {
			available bool
			err       error
		}
		done := make(chan answer, 1)
		auth.CheckAvailable(ctx, login, func(available bool, err error) {
			done <- answer{available: available, err: err}
		})

		select {
		case a := <-done:
			return availabilityMsg{username: login, available: a.available, err: a.err}
		case <-ctx.Done():
			return availabilityMsg{username: login, err: ctx.Err()}
		}
	}
}

func (m *RegisterModel) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.checked = ""
	m.available = false
	m.inputs[m.focus].Focus()
}
