package sales

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/employee"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/notification"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/product"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/sales"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/clock"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/daybucket"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type SalesServiceImpl struct {
	txRunner    database.TxRunner
	assignments sales.AssignmentRepository
	sales       sales.SaleRepository
	employees   employee.Repository
	products    product.Repository
	notifier    notification.Service
	clock       clock.Clock
	timezone    *time.Location
}

func NewSalesService(
	txRunner database.TxRunner,
	assignments sales.AssignmentRepository,
	saleRepo sales.SaleRepository,
	employees employee.Repository,
	products product.Repository,
	notifier notification.Service,
	clk clock.Clock,
	timezone *time.Location,
) sales.Service {
	return &SalesServiceImpl{
		txRunner:    txRunner,
		assignments: assignments,
		sales:       saleRepo,
		employees:   employees,
		products:    products,
		notifier:    notifier,
		clock:       clk,
		timezone:    timezone,
	}
}

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

// RecordSales implements sales.Service. Every entry is validated against its
// assignment before the first write, and all writes share one transaction, so
// a rejected entry aborts the whole batch.
func (s *SalesServiceImpl) RecordSales(ctx context.Context, entries []sales.SaleInput) (sales.RecordSalesResponse, error) {
	employeeID, userID, err := identityFromContext(ctx)
	if err != nil {
		return sales.RecordSalesResponse{}, err
	}

	if len(entries) == 0 {
		return sales.RecordSalesResponse{}, validator.ValidationErrors{{
			Field:   "entries",
			Message: "at least one sale entry is required",
		}}
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return sales.RecordSalesResponse{}, err
		}
		if _, dup := seen[e.ProductID]; dup {
			return sales.RecordSalesResponse{}, validator.ValidationErrors{{
				Field:   "product_id",
				Message: fmt.Sprintf("product %s appears more than once", e.ProductID),
			}}
		}
		seen[e.ProductID] = struct{}{}
	}

	day := daybucket.SalesDay(s.clock.Now(), s.timezone)

	var recorded []sales.Sale
	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		matched := make([]*sales.Assignment, len(entries))

		// Validation pass: nothing is written until every entry clears.
		for i, e := range entries {
			a, err := s.assignments.GetForDay(ctx, employeeID, e.ProductID, day)
			if err != nil {
				return err
			}
			if a == nil {
				related, err := s.assignments.HasRelationship(ctx, employeeID, e.ProductID)
				if err != nil {
					return err
				}
				if !related {
					return fmt.Errorf("product %s: %w", e.ProductID, sales.ErrNotAssigned)
				}
				return fmt.Errorf("product %s: %w", e.ProductID, sales.ErrNoAssignmentToday)
			}
			if e.Quantity < 0 || e.Quantity > a.Quantity {
				return fmt.Errorf("product %s: %w", e.ProductID, sales.ErrQuantityOutOfRange)
			}
			matched[i] = a
		}

		for i, e := range entries {
			a := matched[i]

			sale, err := s.sales.Upsert(ctx, sales.Sale{
				EmployeeID:   employeeID,
				ProductID:    e.ProductID,
				AssignmentID: a.ID,
				Quantity:     e.Quantity,
				Amount:       e.Amount,
				Date:         day,
				Notes:        e.Notes,
			})
			if err != nil {
				return err
			}

			// Recompute from the sales table rather than trusting the
			// previous status; the classification self-heals.
			sold, err := s.sales.SumQuantityForDay(ctx, employeeID, e.ProductID, day)
			if err != nil {
				return err
			}

			status := sales.StatusFor(a.Quantity, sold)
			expired := sales.ExpiredFor(a.Quantity, sold)
			if err := s.assignments.UpdateReconciliation(ctx, a.ID, status, expired); err != nil {
				return err
			}

			recorded = append(recorded, sale)
		}

		return nil
	})
	if err != nil {
		return sales.RecordSalesResponse{}, err
	}

	s.notify(ctx, userID, notification.TypeSaleRecorded, "Sales recorded",
		fmt.Sprintf("%d sale(s) recorded for %s", len(recorded), day.Format("2006-01-02")),
		map[string]interface{}{"date": day.Format("2006-01-02"), "count": len(recorded)},
	)

	responses := make([]sales.SaleResponse, len(recorded))
	for i, sale := range recorded {
		responses[i] = toSaleResponse(sale)
	}

	return sales.RecordSalesResponse{Sales: responses}, nil
}

// UpsertAssignment implements sales.Service. A fresh or re-quantified
// assignment always reads as assigned; reconciliation refreshes the status on
// the next sale submission, not here.
func (s *SalesServiceImpl) UpsertAssignment(ctx context.Context, req sales.UpsertAssignmentRequest) (sales.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return sales.AssignmentResponse{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return sales.AssignmentResponse{}, err
	}

	prod, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return sales.AssignmentResponse{}, err
	}

	day := daybucket.SalesDay(s.clock.Now(), s.timezone)

	assignment, err := s.assignments.Upsert(ctx, sales.Assignment{
		EmployeeID: req.EmployeeID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		AssignedAt: day,
		Status:     sales.StatusAssigned,
	})
	if err != nil {
		return sales.AssignmentResponse{}, err
	}
	assignment.ProductName = &prod.Name

	if emp.UserID != nil {
		s.notify(ctx, *emp.UserID, notification.TypeAssignmentUpserted, "New assignment",
			fmt.Sprintf("You have %d unit(s) of %s to sell today", req.Quantity, prod.Name),
			map[string]interface{}{"assignment_id": assignment.ID, "product_id": prod.ID},
		)
	}

	return toAssignmentResponse(assignment), nil
}

// GetMyDay implements sales.Service.
func (s *SalesServiceImpl) GetMyDay(ctx context.Context) (sales.DailyOverviewResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return sales.DailyOverviewResponse{}, err
	}

	day := daybucket.SalesDay(s.clock.Now(), s.timezone)

	assignments, err := s.assignments.ListByEmployeeAndDay(ctx, employeeID, day)
	if err != nil {
		return sales.DailyOverviewResponse{}, err
	}

	daySales, err := s.sales.ListByEmployeeAndDay(ctx, employeeID, day)
	if err != nil {
		return sales.DailyOverviewResponse{}, err
	}

	resp := sales.DailyOverviewResponse{
		Date:        day.Format("2006-01-02"),
		Assignments: make([]sales.AssignmentResponse, len(assignments)),
		Sales:       make([]sales.SaleResponse, len(daySales)),
	}
	for i, a := range assignments {
		resp.Assignments[i] = toAssignmentResponse(a)
	}
	for i, sale := range daySales {
		resp.Sales[i] = toSaleResponse(sale)
	}

	return resp, nil
}

// ExpireStaleAssignments implements sales.Service. Any assignment older than
// today's bucket that no sale submission reconciled is resolved to expired
// with its full quantity unsold.
func (s *SalesServiceImpl) ExpireStaleAssignments(ctx context.Context) (int64, error) {
	cutoff := daybucket.SalesDay(s.clock.Now(), s.timezone)

	count, err := s.assignments.ExpireStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale assignments: %w", err)
	}

	return count, nil
}

func (s *SalesServiceImpl) notify(ctx context.Context, userID string, t notification.NotificationType, title, message string, data map[string]interface{}) {
	err := s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: userID,
		Type:        t,
		Title:       title,
		Message:     message,
		Data:        data,
	})
	if err != nil {
		slog.Warn("failed to queue sales notification", "type", t, "error", err)
	}
}

func toSaleResponse(s sales.Sale) sales.SaleResponse {
	return sales.SaleResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		AssignmentID: s.AssignmentID,
		Quantity:     s.Quantity,
		Amount:       s.Amount,
		Date:         s.Date.Format("2006-01-02"),
		Notes:        s.Notes,
	}
}

func toAssignmentResponse(a sales.Assignment) sales.AssignmentResponse {
	return sales.AssignmentResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		ProductID:       a.ProductID,
		ProductName:     a.ProductName,
		Quantity:        a.Quantity,
		AssignedAt:      a.AssignedAt.Format("2006-01-02"),
		Status:          a.Status,
		ExpiredQuantity: a.ExpiredQuantity,
	}
}
