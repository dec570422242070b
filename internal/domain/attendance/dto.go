package attendance

import (
	"strings"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/pkg/validator"
)

// CheckInRequest carries an optional explicit instant. When At is empty the
// server clock decides both the instant and the day bucket.
type CheckInRequest struct {
	At    *string `json:"checked_in_at,omitempty"` // RFC3339
	Notes *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.At != nil && *r.At != "" {
		if _, valid := validator.IsValidDateTime(*r.At); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "checked_in_at",
				Message: "checked_in_at must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedAt returns the explicit instant, or false when the caller left it to
// the server clock.
func (r *CheckInRequest) ParsedAt() (time.Time, bool) {
	if r.At == nil || *r.At == "" {
		return time.Time{}, false
	}
	t, valid := validator.IsValidDateTime(*r.At)
	return t, valid
}

type CheckOutRequest struct {
	At    *string `json:"checked_out_at,omitempty"` // RFC3339
	Notes *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.At != nil && *r.At != "" {
		if _, valid := validator.IsValidDateTime(*r.At); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "checked_out_at",
				Message: "checked_out_at must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CheckOutRequest) ParsedAt() (time.Time, bool) {
	if r.At == nil || *r.At == "" {
		return time.Time{}, false
	}
	t, valid := validator.IsValidDateTime(*r.At)
	return t, valid
}

type RecordResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   *string  `json:"employee_name,omitempty"`
	Date           string   `json:"date"`
	CheckInTime    *string  `json:"check_in_time,omitempty"`
	CheckOutTime   *string  `json:"check_out_time,omitempty"`
	CheckOutUndone bool     `json:"check_out_undone"`
	Status         string   `json:"status"`
	WorkHours      *float64 `json:"work_hours,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type ListFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.PageSize < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must be a positive number",
		})
	}
	if f.PageSize == 0 {
		f.PageSize = 20 // Default page size
	}
	if f.PageSize > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must not exceed 100",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EmployeeID != nil && strings.TrimSpace(*f.EmployeeID) == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}
