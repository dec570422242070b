package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/settings"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepository{db: db}
}

// Get implements settings.Repository. The table holds at most one row; when
// nothing has been configured yet the built-in defaults apply.
func (r *settingsRepository) Get(ctx context.Context) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT check_in_window_start, check_in_window_end, late_threshold_minutes
		FROM attendance_settings
		LIMIT 1
	`

	var s settings.AttendanceSettings
	err := q.QueryRow(ctx, query).Scan(
		&s.CheckInWindowStart, &s.CheckInWindowEnd, &s.LateThresholdMinutes,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Default(), nil
		}
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	return s, nil
}

// Update implements settings.Repository.
func (r *settingsRepository) Update(ctx context.Context, s settings.AttendanceSettings) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_settings (id, check_in_window_start, check_in_window_end, late_threshold_minutes)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET
			check_in_window_start = EXCLUDED.check_in_window_start,
			check_in_window_end = EXCLUDED.check_in_window_end,
			late_threshold_minutes = EXCLUDED.late_threshold_minutes,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, s.CheckInWindowStart, s.CheckInWindowEnd, s.LateThresholdMinutes); err != nil {
		return fmt.Errorf("failed to update attendance settings: %w", err)
	}

	return nil
}
