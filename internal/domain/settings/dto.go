package settings

import (
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	CheckInWindowStart   string `json:"check_in_window_start"` // HH:MM
	CheckInWindowEnd     string `json:"check_in_window_end"`   // HH:MM
	LateThresholdMinutes int    `json:"late_threshold_minutes"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	start, err := time.Parse("15:04", r.CheckInWindowStart)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_window_start",
			Message: "check_in_window_start must be in HH:MM format",
		})
	}

	end, err := time.Parse("15:04", r.CheckInWindowEnd)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_window_end",
			Message: "check_in_window_end must be in HH:MM format",
		})
	}

	if len(errs) == 0 && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_window_end",
			Message: "check_in_window_end must be after check_in_window_start",
		})
	}

	if r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_threshold_minutes",
			Message: "late_threshold_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	CheckInWindowStart   string `json:"check_in_window_start"`
	CheckInWindowEnd     string `json:"check_in_window_end"`
	LateThresholdMinutes int    `json:"late_threshold_minutes"`
}
