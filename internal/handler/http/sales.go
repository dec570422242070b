package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/sales"
	"github.com/dheyaloali/dheya-backend-go/internal/handler/http/response"
)

type SalesHandler interface {
	RecordSales(w http.ResponseWriter, r *http.Request)
	GetMyDay(w http.ResponseWriter, r *http.Request)
	UpsertAssignment(w http.ResponseWriter, r *http.Request)
}

type salesHandlerImpl struct {
	salesService sales.Service
}

func NewSalesHandler(salesService sales.Service) SalesHandler {
	return &salesHandlerImpl{
		salesService: salesService,
	}
}

// RecordSales implements SalesHandler. The body may be a single sale object
// or an array of them; both decode into a batch.
func (h *salesHandlerImpl) RecordSales(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Failed to read request body", nil)
		return
	}

	var entries []sales.SaleInput
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(body, &entries); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	} else {
		var single sales.SaleInput
		if err := json.Unmarshal(body, &single); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		entries = []sales.SaleInput{single}
	}

	result, err := h.salesService.RecordSales(r.Context(), entries)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sales recorded", result)
}

// GetMyDay implements SalesHandler.
func (h *salesHandlerImpl) GetMyDay(w http.ResponseWriter, r *http.Request) {
	result, err := h.salesService.GetMyDay(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpsertAssignment implements SalesHandler.
func (h *salesHandlerImpl) UpsertAssignment(w http.ResponseWriter, r *http.Request) {
	var req sales.UpsertAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.salesService.UpsertAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment saved", result)
}
