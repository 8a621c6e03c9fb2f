package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cloud-sync/internal/collection"
	"github.com/MKhiriev/go-cloud-sync/internal/rpc"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// silentCaller records calls and never answers them.
type silentCaller struct {
	mu    sync.Mutex
	calls []string
	args  [][]any
}

func (s *silentCaller) Call(_ context.Context, _, method string, _ rpc.Callback, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, method)
	s.args = append(s.args, args)
}

func (s *silentCaller) methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func newTestCollection(t *testing.T, records ...map[string]any) (*collection.Collection, *silentCaller) {
	t.Helper()

	caller := &silentCaller{}
	coll, err := collection.Synchronize(context.Background(), caller, "db-1", "todos",
		collection.WithErrorHandler(func(err error) { t.Errorf("unexpected sync error: %v", err) }))
	require.NoError(t, err)
	t.Cleanup(coll.Close)

	data := make([]any, 0, len(records))
	for _, rec := range records {
		data = append(data, rec)
	}
	require.NoError(t, coll.Apply(models.ChangeEvent{Type: models.EventSynchronized, Data: data}))

	return coll, caller
}

// fakeAuth answers every call synchronously.
type fakeAuth struct {
	loginErr    error
	registerErr error
	available   bool

	logins    []string
	registers []string
	checks    []string
}

func (f *fakeAuth) Register(_ context.Context, login, _, _ string, cb rpc.Callback) {
	f.registers = append(f.registers, login)
	cb(rpc.Result{}, f.registerErr)
}

func (f *fakeAuth) Login(_ context.Context, login, _ string, cb rpc.Callback) {
	f.logins = append(f.logins, login)
	cb(rpc.Result{}, f.loginErr)
}

func (f *fakeAuth) Logout(_ context.Context, cb rpc.Callback) {
	cb(rpc.Result{}, nil)
}

func (f *fakeAuth) CheckAvailable(_ context.Context, login string, cb func(bool, error)) {
	f.checks = append(f.checks, login)
	cb(f.available, nil)
}

func (f *fakeAuth) RestoreSession(context.Context) (models.Session, error) {
	return models.Session{}, nil
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(runeKey(string(r)))
	}
	return m
}

func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
