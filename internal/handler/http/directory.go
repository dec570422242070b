package http

import (
	"net/http"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/employee"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/product"
	"github.com/dheyaloali/dheya-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DirectoryHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListProducts(w http.ResponseWriter, r *http.Request)
}

type directoryHandlerImpl struct {
	employeeService employee.Service
	productService  product.Service
}

func NewDirectoryHandler(employeeService employee.Service, productService product.Service) DirectoryHandler {
	return &directoryHandlerImpl{
		employeeService: employeeService,
		productService:  productService,
	}
}

// ListEmployees implements DirectoryHandler.
func (h *directoryHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	pageSize := getIntQueryParam(r, "page_size", 20)

	result, err := h.employeeService.List(r.Context(), page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployee implements DirectoryHandler.
func (h *directoryHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListProducts implements DirectoryHandler.
func (h *directoryHandlerImpl) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.productService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
