package settings

import "context"

// Repository provides the attendance settings. Get falls back to Default()
// when nothing has been configured.
type Repository interface {
	Get(ctx context.Context) (AttendanceSettings, error)
	Update(ctx context.Context, s AttendanceSettings) error
}
