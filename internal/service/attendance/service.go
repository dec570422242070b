package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/attendance"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/notification"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/settings"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/clock"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/daybucket"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	repo         attendance.Repository
	settingsRepo settings.Repository
	notifier     notification.Service
	clock        clock.Clock
}

func NewAttendanceService(
	repo attendance.Repository,
	settingsRepo settings.Repository,
	notifier notification.Service,
	clk clock.Clock,
) attendance.Service {
	return &AttendanceServiceImpl{
		repo:         repo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		clock:        clk,
	}
}

// identityFromContext pulls the acting employee and user out of JWT claims.
func identityFromContext(ctx context.Context) (employeeID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return employeeID, userID, nil
}

// windowMinutes parses an "HH:MM" wall clock setting into minutes past midnight.
func windowMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid window time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, userID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	instant, explicit := req.ParsedAt()
	if !explicit {
		instant = a.clock.Now()
	}
	instant = instant.UTC()
	day := daybucket.AttendanceDay(instant)

	existing, err := a.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's attendance record: %w", err)
	}

	if !attendance.Allowed(attendance.StateOf(existing), attendance.ActionCheckIn) {
		return attendance.RecordResponse{}, attendance.ErrInvalidTransition
	}

	cfg, err := a.settingsRepo.Get(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance settings: %w", err)
	}

	startMin, err := windowMinutes(cfg.CheckInWindowStart)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	endMin, err := windowMinutes(cfg.CheckInWindowEnd)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	minutes := daybucket.MinutesIntoDay(instant)
	if minutes < startMin || minutes > endMin {
		return attendance.RecordResponse{}, attendance.ErrOutsideCheckInWindow
	}

	// Exactly at the grace boundary still counts as present.
	status := attendance.StatusPresent
	if minutes > startMin+cfg.LateThresholdMinutes {
		status = attendance.StatusLate
	}

	rec := attendance.Record{
		EmployeeID: employeeID,
		Date:       day,
		CheckIn:    &instant,
		Status:     status,
		Notes:      req.Notes,
	}

	created, err := a.repo.Create(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	a.notify(ctx, userID, notification.TypeAttendanceCheckIn, "Checked in",
		fmt.Sprintf("Check-in recorded at %s (%s)", instant.Format("15:04"), status),
		map[string]interface{}{"attendance_id": created.ID, "date": day.Format("2006-01-02")},
	)

	return a.toResponse(created), nil
}

// UndoCheckIn implements attendance.Service. The record is deleted outright
// so the day becomes retriable, unlike undo of a check-out.
func (a *AttendanceServiceImpl) UndoCheckIn(ctx context.Context) error {
	employeeID, userID, err := identityFromContext(ctx)
	if err != nil {
		return err
	}

	day := daybucket.AttendanceDay(a.clock.Now())

	existing, err := a.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return fmt.Errorf("failed to load today's attendance record: %w", err)
	}

	if !attendance.Allowed(attendance.StateOf(existing), attendance.ActionUndoCheckIn) {
		return attendance.ErrInvalidTransition
	}

	if err := a.repo.Delete(ctx, existing.ID); err != nil {
		return err
	}

	a.notify(ctx, userID, notification.TypeAttendanceUndo, "Check-in undone",
		"Today's check-in was removed",
		map[string]interface{}{"date": day.Format("2006-01-02")},
	)

	return nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, userID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	instant, explicit := req.ParsedAt()
	if !explicit {
		instant = a.clock.Now()
	}
	instant = instant.UTC()
	day := daybucket.AttendanceDay(instant)

	existing, err := a.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's attendance record: %w", err)
	}
	if existing == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	if !attendance.Allowed(attendance.StateOf(existing), attendance.ActionCheckOut) {
		return attendance.RecordResponse{}, attendance.ErrInvalidTransition
	}

	if instant.Before(existing.CheckIn.UTC()) {
		return attendance.RecordResponse{}, attendance.ErrInvalidTransition
	}

	hours := math.Round(instant.Sub(existing.CheckIn.UTC()).Hours()*100) / 100

	existing.CheckOut = &instant
	existing.WorkHours = &hours
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	if err := a.repo.Update(ctx, *existing); err != nil {
		return attendance.RecordResponse{}, err
	}

	a.notify(ctx, userID, notification.TypeAttendanceCheckOut, "Checked out",
		fmt.Sprintf("Check-out recorded at %s, %.2f hours worked", instant.Format("15:04"), hours),
		map[string]interface{}{"attendance_id": existing.ID, "date": day.Format("2006-01-02")},
	)

	return a.toResponse(*existing), nil
}

// UndoCheckOut implements attendance.Service. The check-out fields are
// cleared but the undo flag stays set permanently, so this works only once
// and checking out again is not possible.
func (a *AttendanceServiceImpl) UndoCheckOut(ctx context.Context) error {
	employeeID, userID, err := identityFromContext(ctx)
	if err != nil {
		return err
	}

	day := daybucket.AttendanceDay(a.clock.Now())

	existing, err := a.repo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return fmt.Errorf("failed to load today's attendance record: %w", err)
	}

	if !attendance.Allowed(attendance.StateOf(existing), attendance.ActionUndoCheckOut) {
		return attendance.ErrInvalidTransition
	}

	existing.CheckOut = nil
	existing.WorkHours = nil
	existing.CheckOutUndone = true

	if err := a.repo.Update(ctx, *existing); err != nil {
		return err
	}

	a.notify(ctx, userID, notification.TypeAttendanceUndo, "Check-out undone",
		"Today's check-out was reverted",
		map[string]interface{}{"attendance_id": existing.ID, "date": day.Format("2006-01-02")},
	)

	return nil
}

// GetMyRecords implements attendance.Service.
func (a *AttendanceServiceImpl) GetMyRecords(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return a.list(ctx, filter)
}

// ListRecords implements attendance.Service.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	return a.list(ctx, filter)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	records, total, err := a.repo.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	responses := make([]attendance.RecordResponse, len(records))
	for i, rec := range records {
		responses[i] = a.toResponse(rec)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return attendance.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

func (a *AttendanceServiceImpl) notify(ctx context.Context, userID string, t notification.NotificationType, title, message string, data map[string]interface{}) {
	err := a.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: userID,
		Type:        t,
		Title:       title,
		Message:     message,
		Data:        data,
	})
	if err != nil {
		slog.Warn("failed to queue attendance notification", "type", t, "error", err)
	}
}

func (a *AttendanceServiceImpl) toResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		EmployeeName:   rec.EmployeeName,
		Date:           rec.Date.Format("2006-01-02"),
		CheckInTime:    timePtrToString(rec.CheckIn),
		CheckOutTime:   timePtrToString(rec.CheckOut),
		CheckOutUndone: rec.CheckOutUndone,
		Status:         rec.Status,
		WorkHours:      rec.WorkHours,
		Notes:          rec.Notes,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      rec.UpdatedAt.Format(time.RFC3339),
	}
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
