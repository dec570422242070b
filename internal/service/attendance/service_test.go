package attendance

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/attendance"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/notification"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/settings"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/clock"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeAttendanceRepo struct {
	records map[string]attendance.Record
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	k := f.key(rec.EmployeeID, rec.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Record{}, attendance.ErrInvalidTransition
	}
	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.records[k] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	rec, ok := f.records[f.key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.Record) error {
	for k, existing := range f.records {
		if existing.ID == rec.ID {
			rec.CreatedAt = existing.CreatedAt
			rec.UpdatedAt = time.Now()
			f.records[k] = rec
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	for k, existing := range f.records {
		if existing.ID == id {
			delete(f.records, k)
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && *filter.StartDate != "" {
			from, _ := time.Parse("2006-01-02", *filter.StartDate)
			if rec.Date.Before(from) {
				continue
			}
		}
		if filter.EndDate != nil && *filter.EndDate != "" {
			to, _ := time.Parse("2006-01-02", *filter.EndDate)
			if rec.Date.After(to) {
				continue
			}
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	total := int64(len(out))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

type fakeSettingsRepo struct {
	cfg settings.AttendanceSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (settings.AttendanceSettings, error) {
	return f.cfg, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s settings.AttendanceSettings) error {
	f.cfg = s
	return nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (f *fakeNotifier) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (f *fakeNotifier) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	return nil
}

func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, userID string) error { return nil }

func (f *fakeNotifier) Delete(ctx context.Context, userID string, notificationID string) error {
	return nil
}

func (f *fakeNotifier) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	return ch, func() { close(ch) }
}

func (f *fakeNotifier) Stop() {}

// ===== HELPERS =====

func authedCtx(t *testing.T, employeeID, userID string) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("employee_id", employeeID))
	require.NoError(t, token.Set("user_id", userID))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeAttendanceRepo, now time.Time) (attendance.Service, *fakeNotifier) {
	notifier := &fakeNotifier{}
	svc := NewAttendanceService(
		repo,
		&fakeSettingsRepo{cfg: settings.Default()},
		notifier,
		clock.Fixed(now),
	)
	return svc, notifier
}

// ===== CHECK-IN =====

func TestCheckIn_WithinWindow_Present(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 4, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, notifier := newTestService(repo, now)

	resp, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, "2024-03-04", resp.Date)
	require.NotNil(t, resp.CheckInTime)
	assert.Len(t, notifier.queued, 1)
	assert.Equal(t, notification.TypeAttendanceCheckIn, notifier.queued[0].Type)
}

func TestCheckIn_AfterGracePeriod_Late(t *testing.T) {
	t.Parallel()
	// Default window 08:00-10:00, 5 minute threshold. 08:06 is late.
	now := time.Date(2024, 3, 4, 8, 6, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)

	resp, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
}

func TestCheckIn_ExactlyAtGraceBoundary_Present(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 5, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)

	resp, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
}

func TestCheckIn_OutsideWindow(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name string
		now  time.Time
	}{
		{"before window", time.Date(2024, 3, 4, 7, 30, 0, 0, time.UTC)},
		{"after window", time.Date(2024, 3, 4, 10, 1, 0, 0, time.UTC)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeAttendanceRepo()
			svc, _ := newTestService(repo, tc.now)

			_, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{})

			assert.ErrorIs(t, err, attendance.ErrOutsideCheckInWindow)
			assert.Empty(t, repo.records)
		})
	}
}

func TestCheckIn_Twice_Rejected(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 2, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)
	ctx := authedCtx(t, "emp-1", "user-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}

func TestCheckIn_ExplicitInstantDecidesDayBucket(t *testing.T) {
	t.Parallel()
	// Window comparison happens on the UTC clock, so the same wall time in
	// another zone can fall outside the window.
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)

	// 08:10+07:00 is 01:10 UTC, outside the 08:00-10:00 UTC window.
	at := "2024-03-04T08:10:00+07:00"
	_, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{At: &at})
	assert.ErrorIs(t, err, attendance.ErrOutsideCheckInWindow)

	// The same wall clock expressed in UTC lands inside the window.
	at = "2024-03-04T08:10:00Z"
	resp, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{At: &at})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", resp.Date)
}

func TestCheckIn_InvalidTimestamp_Rejected(t *testing.T) {
	t.Parallel()
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC))

	at := "yesterday at nine"
	_, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{At: &at})
	assert.Error(t, err)
	assert.Empty(t, repo.records)
}

// ===== UNDO CHECK-IN =====

func TestUndoCheckIn_DeletesRecordAndAllowsRetry(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 2, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)
	ctx := authedCtx(t, "emp-1", "user-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.UndoCheckIn(ctx))
	assert.Empty(t, repo.records)

	// The day is fully retriable after the delete.
	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.NoError(t, err)
}

func TestUndoCheckIn_WithoutRecord_Rejected(t *testing.T) {
	t.Parallel()
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, time.Date(2024, 3, 4, 8, 2, 0, 0, time.UTC))

	err := svc.UndoCheckIn(authedCtx(t, "emp-1", "user-1"))
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}

func TestUndoCheckIn_AfterCheckOut_Rejected(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 2, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)
	ctx := authedCtx(t, "emp-1", "user-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	at := "2024-03-04T16:00:00Z"
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{At: &at})
	require.NoError(t, err)

	err = svc.UndoCheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}

// ===== CHECK-OUT =====

func TestCheckOut_ComputesWorkHours(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, notifier := newTestService(repo, now)
	ctx := authedCtx(t, "emp-1", "user-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	at := "2024-03-04T16:30:00Z"
	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{At: &at})

	require.NoError(t, err)
	require.NotNil(t, resp.WorkHours)
	assert.Equal(t, 8.5, *resp.WorkHours)
	require.NotNil(t, resp.CheckOutTime)
	assert.Len(t, notifier.queued, 2)
}

func TestCheckOut_WithoutCheckIn_NotFound(t *testing.T) {
	t.Parallel()
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC))

	// No record for the day reads as not-found, not as a state violation.
	_, err := svc.CheckOut(authedCtx(t, "emp-1", "user-1"), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestCheckOut_BeforeCheckIn_Rejected(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)
	ctx := authedCtx(t, "emp-1", "user-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	at := "2024-03-04T08:30:00Z"
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{At: &at})
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}

// ===== UNDO CHECK-OUT =====

func TestUndoCheckOut_OneShot(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)
	ctx := authedCtx(t, "emp-1", "user-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	at := "2024-03-04T17:00:00Z"
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{At: &at})
	require.NoError(t, err)

	require.NoError(t, svc.UndoCheckOut(ctx))

	rec, err := repo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.CheckOut)
	assert.Nil(t, rec.WorkHours)
	assert.True(t, rec.CheckOutUndone)

	// The undo is spent: neither a second undo nor a fresh check-out works.
	err = svc.UndoCheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{At: &at})
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}

func TestUndoCheckOut_ThenUndoCheckIn_Allowed(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)
	ctx := authedCtx(t, "emp-1", "user-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	at := "2024-03-04T17:00:00Z"
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{At: &at})
	require.NoError(t, err)
	require.NoError(t, svc.UndoCheckOut(ctx))

	// Deleting the whole day is still allowed and resets everything,
	// including the spent undo flag.
	require.NoError(t, svc.UndoCheckIn(ctx))
	assert.Empty(t, repo.records)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.NoError(t, err)
}

// ===== LISTING =====

func TestGetMyRecords_ScopedToClaimedEmployee(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)

	_, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = svc.CheckIn(authedCtx(t, "emp-2", "user-2"), attendance.CheckInRequest{})
	require.NoError(t, err)

	// A filter naming someone else is overridden by the caller's own claim.
	other := "emp-2"
	resp, err := svc.GetMyRecords(authedCtx(t, "emp-1", "user-1"), attendance.ListFilter{EmployeeID: &other})

	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "emp-1", resp.Records[0].EmployeeID)
}

func TestListRecords_AllEmployees(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, now)

	_, err := svc.CheckIn(authedCtx(t, "emp-1", "user-1"), attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = svc.CheckIn(authedCtx(t, "emp-2", "user-2"), attendance.CheckInRequest{})
	require.NoError(t, err)

	resp, err := svc.ListRecords(authedCtx(t, "emp-admin", "user-admin"), attendance.ListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Len(t, resp.Records, 2)
}

func seedDay(t *testing.T, repo *fakeAttendanceRepo, employeeID string, date time.Time) {
	t.Helper()
	in := date.Add(8 * time.Hour)
	_, err := repo.Create(context.Background(), attendance.Record{
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &in,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)
}

func TestListRecords_DateDescending(t *testing.T) {
	t.Parallel()
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

	// Seeded out of order on purpose.
	for _, day := range []int{4, 6, 5} {
		seedDay(t, repo, "emp-1", time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC))
	}

	resp, err := svc.ListRecords(authedCtx(t, "emp-admin", "user-admin"), attendance.ListFilter{})

	require.NoError(t, err)
	require.Len(t, resp.Records, 3)
	assert.Equal(t, "2024-03-06", resp.Records[0].Date)
	assert.Equal(t, "2024-03-05", resp.Records[1].Date)
	assert.Equal(t, "2024-03-04", resp.Records[2].Date)
}

func TestListRecords_DateRangeInclusive(t *testing.T) {
	t.Parallel()
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

	for day := 1; day <= 5; day++ {
		seedDay(t, repo, "emp-1", time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC))
	}

	from, to := "2024-03-02", "2024-03-04"
	resp, err := svc.ListRecords(authedCtx(t, "emp-admin", "user-admin"), attendance.ListFilter{
		StartDate: &from,
		EndDate:   &to,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	require.Len(t, resp.Records, 3)
	// Both range endpoints are part of the result.
	assert.Equal(t, "2024-03-04", resp.Records[0].Date)
	assert.Equal(t, "2024-03-02", resp.Records[2].Date)
}

func TestListRecords_Pagination(t *testing.T) {
	t.Parallel()
	repo := newFakeAttendanceRepo()
	svc, _ := newTestService(repo, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

	for day := 1; day <= 5; day++ {
		seedDay(t, repo, "emp-1", time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC))
	}

	resp, err := svc.ListRecords(authedCtx(t, "emp-admin", "user-admin"), attendance.ListFilter{
		Page:     2,
		PageSize: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.TotalCount)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Records, 2)
	// Page 2 of the descending listing covers days 3 and 2.
	assert.Equal(t, "2024-03-03", resp.Records[0].Date)
	assert.Equal(t, "2024-03-02", resp.Records[1].Date)
}
