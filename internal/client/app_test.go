package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type uiFunc func(ctx context.Context) error

func (f uiFunc) Run(ctx context.Context) error { return f(ctx) }

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	return nil
}

func newTestServices(t *testing.T, state models.AuthState) *service.ClientServices {
	t.Helper()
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthController(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)

	auth.EXPECT().Init(gomock.Any()).Return(state)
	auth.EXPECT().User().Return(models.User{Email: "a@x.com"}).AnyTimes()
	auth.EXPECT().State().Return(state).AnyTimes()
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0")
	appInfo.EXPECT().ServerStatus(gomock.Any()).Return(service.ServerHealthy)

	return &service.ClientServices{Auth: auth, AppInfo: appInfo}
}

func TestApp_RunRestoresSessionBeforeUI(t *testing.T) {
	services := newTestServices(t, models.AuthAuthenticated)
	refresher := &countingRefresher{}

	var ran bool
	ui := uiFunc(func(ctx context.Context) error {
		ran = true
		// the refresh worker is running while the UI is up
		require.Eventually(t, func() bool { return refresher.calls.Load() > 0 }, time.Second, 5*time.Millisecond)
		return nil
	})

	app := NewApp(services, ui, refresher, config.ClientWorkers{RefreshInterval: 10 * time.Millisecond}, logger.Nop())

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, ran)

	after := refresher.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, refresher.calls.Load(), "worker must stop with the UI")
}

func TestApp_AnonymousUserIsNotRefreshed(t *testing.T) {
	services := newTestServices(t, models.AuthAnonymous)
	refresher := &countingRefresher{}

	ui := uiFunc(func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	app := NewApp(services, ui, refresher, config.ClientWorkers{RefreshInterval: 5 * time.Millisecond}, logger.Nop())

	require.NoError(t, app.Run(context.Background()))
	assert.Zero(t, refresher.calls.Load())
}

func TestApp_UIErrorIsReturned(t *testing.T) {
	services := newTestServices(t, models.AuthAnonymous)
	uiErr := errors.New("terminal gone")

	app := NewApp(services, uiFunc(func(context.Context) error { return uiErr }), &countingRefresher{}, config.ClientWorkers{}, logger.Nop())

	err := app.Run(context.Background())
	assert.ErrorIs(t, err, uiErr)
}
