package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/mock"
)

type fakeUI struct {
	loginErr error
	watchErr error
	watched  []string
	ctxAlive bool
}

func (f *fakeUI) LoginFlow(context.Context) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "jane", nil
}

func (f *fakeUI) Watch(ctx context.Context, name string) error {
	f.watched = append(f.watched, name)
	f.ctxAlive = ctx.Err() == nil
	return f.watchErr
}

// blockingWorker runs until ctx is done.
type blockingWorker struct {
	stopped atomic.Bool
}

func (w *blockingWorker) Run(ctx context.Context) {
	<-ctx.Done()
	w.stopped.Store(true)
}

func TestNewApp_Validation(t *testing.T) {
	_, err := NewApp(nil, nil, nil, "todos", nil)
	assert.Error(t, err)

	_, err = NewApp(&fakeUI{}, nil, nil, "", nil)
	assert.ErrorIs(t, err, ErrNoCollection)
}

func TestApp_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenStore(ctrl)
	tokens.EXPECT().Close().Return(nil)

	ui := &fakeUI{}
	bg := &blockingWorker{}

	app, err := NewApp(ui, bg, tokens, "todos", logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, []string{"todos"}, ui.watched)
	assert.True(t, ui.ctxAlive)
	assert.True(t, bg.stopped.Load())
}

func TestApp_RunLoginFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenStore(ctrl)
	tokens.EXPECT().Close().Return(errors.New("already closed"))

	quit := errors.New("quit")
	ui := &fakeUI{loginErr: quit}

	app, err := NewApp(ui, &blockingWorker{}, tokens, "todos", logger.Nop())
	require.NoError(t, err)

	err = app.Run(context.Background())
	assert.ErrorIs(t, err, quit)
	assert.Empty(t, ui.watched)
}

func TestApp_RunWatchFails(t *testing.T) {
	boom := errors.New("boom")
	ui := &fakeUI{watchErr: boom}

	app, err := NewApp(ui, nil, nil, "todos", logger.Nop())
	require.NoError(t, err)

	err = app.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `watch "todos"`)
}
