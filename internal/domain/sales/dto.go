package sales

import (
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/validator"
)

// SaleInput is one entry of a RecordSales call. The handler accepts either a
// single object or an array; either way every entry is validated before any
// entry is written.
type SaleInput struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *SaleInput) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProductID) {
		errs = append(errs, validator.ValidationError{
			Field:   "product_id",
			Message: "product_id is required",
		})
	}

	// Quantity bounds are checked against the assignment, not here, so a bad
	// quantity reports which product it belongs to.
	if r.Amount < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpsertAssignmentRequest struct {
	EmployeeID string `json:"employee_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

func (r *UpsertAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ProductID) {
		errs = append(errs, validator.ValidationError{
			Field:   "product_id",
			Message: "product_id is required",
		})
	}

	if r.Quantity <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SaleResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	ProductID    string  `json:"product_id"`
	ProductName  *string `json:"product_name,omitempty"`
	AssignmentID string  `json:"assignment_id"`
	Quantity     int     `json:"quantity"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	Notes        *string `json:"notes,omitempty"`
}

type AssignmentResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	ProductID       string  `json:"product_id"`
	ProductName     *string `json:"product_name,omitempty"`
	Quantity        int     `json:"quantity"`
	AssignedAt      string  `json:"assigned_at"`
	Status          string  `json:"status"`
	ExpiredQuantity int     `json:"expired_quantity"`
}

type RecordSalesResponse struct {
	Sales []SaleResponse `json:"sales"`
}

type DailyOverviewResponse struct {
	Date        string               `json:"date"`
	Assignments []AssignmentResponse `json:"assignments"`
	Sales       []SaleResponse       `json:"sales"`
}
