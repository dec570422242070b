package settings

import (
	"context"
	"testing"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/notification"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/settings"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	stored *settings.AttendanceSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (settings.AttendanceSettings, error) {
	if f.stored == nil {
		return settings.Default(), nil
	}
	return *f.stored, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, cfg settings.AttendanceSettings) error {
	f.stored = &cfg
	return nil
}

type fakeNotifier struct {
	notification.Service
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func adminCtx(t *testing.T) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("user_id", "admin-1"))
	require.NoError(t, token.Set("role", "admin"))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestGet_DefaultsWhenUnconfigured(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeSettingsRepo{}, &fakeNotifier{})

	resp, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.CheckInWindowStart)
	assert.Equal(t, "10:00", resp.CheckInWindowEnd)
	assert.Equal(t, 5, resp.LateThresholdMinutes)
}

func TestUpdate_PersistsAndNotifiesAdmin(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{}
	notifier := &fakeNotifier{}
	svc := NewSettingsService(repo, notifier)

	resp, err := svc.Update(adminCtx(t), settings.UpdateSettingsRequest{
		CheckInWindowStart:   "07:30",
		CheckInWindowEnd:     "09:30",
		LateThresholdMinutes: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "07:30", resp.CheckInWindowStart)
	require.NotNil(t, repo.stored)
	assert.Equal(t, 10, repo.stored.LateThresholdMinutes)

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, "admin-1", notifier.queued[0].RecipientID)
	assert.Equal(t, notification.TypeAttendanceSettingsEdit, notifier.queued[0].Type)
}

func TestUpdate_RejectsInvertedWindow(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, &fakeNotifier{})

	_, err := svc.Update(adminCtx(t), settings.UpdateSettingsRequest{
		CheckInWindowStart:   "10:00",
		CheckInWindowEnd:     "08:00",
		LateThresholdMinutes: 5,
	})

	assert.Error(t, err)
	assert.Nil(t, repo.stored)
}

func TestUpdate_RejectsMalformedTime(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeSettingsRepo{}, &fakeNotifier{})

	_, err := svc.Update(adminCtx(t), settings.UpdateSettingsRequest{
		CheckInWindowStart:   "8 o'clock",
		CheckInWindowEnd:     "10:00",
		LateThresholdMinutes: 5,
	})

	assert.Error(t, err)
}
