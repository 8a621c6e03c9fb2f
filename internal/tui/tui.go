package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-cloud-sync/internal/collection"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// TUI drives the interactive client: the login flow and the collection
// viewer.
type TUI struct {
	services *service.Services
	logger   *logger.Logger
	opts     []tea.ProgramOption
}

func New(services *service.Services, log *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("tui: nil services")
	}
	return &TUI{
		services: services,
		logger:   log,
		opts:     []tea.ProgramOption{tea.WithAltScreen()},
	}, nil
}

// LoginFlow returns the authenticated login. A cached session is reused
// without showing the login screen.
func (t *TUI) LoginFlow(ctx context.Context) (string, error) {
	session, err := t.services.Auth.RestoreSession(ctx)
	if err == nil {
		t.logger.Info().Str("login", session.Login).Msg("session restored")
		return session.Login, nil
	}
	if !errors.Is(err, service.ErrNoSession) && !errors.Is(err, service.ErrTokenIsExpired) {
		t.logger.Warn().Err(err).Msg("restore session failed")
	}

	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.Auth),
		"register": NewRegisterModel(ctx, t.services.Auth),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, append(t.opts, tea.WithContext(ctx))...).Run()
	if runErr != nil {
		return "", runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.quitByUser || result.username == "" {
		return "", ErrUserQuit
	}

	return result.username, nil
}

// Watch opens the collection name and shows it until the user quits.
func (t *TUI) Watch(ctx context.Context, name string) error {
	viewer := NewViewerModel(nil)
	p := tea.NewProgram(viewer, append(t.opts, tea.WithContext(ctx))...)

	coll, err := t.services.Sync.Synchronize(ctx, name,
		collection.WithObserver(func(event models.EventType, payload any) {
			p.Send(changeMsg{event: event, payload: payload})
		}),
		collection.WithErrorHandler(func(err error) {
			p.Send(syncErrMsg{err: err})
		}),
	)
	if err != nil {
		return err
	}
	defer coll.Close()

	viewer.attach(coll)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
