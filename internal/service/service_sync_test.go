package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cloud-sync/internal/collection"
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

func TestSyncService_Synchronize_Defaults(t *testing.T) {
	caller := &recordingCaller{}
	svc := NewSyncService(caller, "db-1", config.ClientSync{IDField: "_id"}, logger.Nop())

	c, err := svc.Synchronize(context.Background(), "people")
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "people", c.Name())
	assert.Equal(t, collection.ServiceShared, c.Service())
	assert.Equal(t, "_id", c.IDField())

	require.Len(t, caller.calls, 1)
	assert.Equal(t, collection.ServiceShared, caller.calls[0].service)
	assert.Equal(t, "retrieve", caller.calls[0].method)
	assert.Equal(t, []any{"db-1", "people"}, caller.calls[0].args)
}

func TestSyncService_Synchronize_PrivateFromConfig(t *testing.T) {
	caller := &recordingCaller{}
	svc := NewSyncService(caller, "db-1", config.ClientSync{Private: true, Mode: "mongo"}, logger.Nop())

	c, err := svc.Synchronize(context.Background(), "notes")
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, collection.ServicePrivate, c.Service())
	assert.Equal(t, collection.ServicePrivate, caller.calls[0].service)
}

func TestSyncService_Synchronize_CallOptionsOverrideDefaults(t *testing.T) {
	caller := &recordingCaller{}
	svc := NewSyncService(caller, "db-1", config.ClientSync{Private: true, IDField: "_id"}, logger.Nop())

	c, err := svc.Synchronize(context.Background(), "people",
		collection.WithPrivate(false),
		collection.WithIDField("key"),
	)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, collection.ServiceShared, c.Service())
	assert.Equal(t, "key", c.IDField())
}

func TestSyncService_Synchronize_UnsupportedMode(t *testing.T) {
	caller := &recordingCaller{}
	svc := NewSyncService(caller, "db-1", config.ClientSync{Mode: "redis"}, logger.Nop())

	_, err := svc.Synchronize(context.Background(), "people")

	require.Error(t, err)
	assert.ErrorIs(t, err, collection.ErrUnsupportedMode)
	assert.Empty(t, caller.calls, "no remote call is made for an unsupported mode")
}

func TestNewServices(t *testing.T) {
	cfg := &config.ClientConfig{App: config.ClientApp{DBID: "db-1"}}
	caller := &recordingCaller{}

	svcs := NewServices(cfg, caller, &tokenHolder{}, nil, logger.Nop())

	require.NotNil(t, svcs.Sync)
	require.NotNil(t, svcs.DB)
	require.NotNil(t, svcs.Auth)

	svcs.DB.Find(context.Background(), "people", nil, nil)
	require.Len(t, caller.calls, 1)
	assert.Equal(t, "db-1", caller.calls[0].args[0])
}
