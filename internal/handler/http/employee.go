package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	ActivateMe(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	AddReading(w http.ResponseWriter, r *http.Request)
	ListReadings(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// Me handles GET /employees/me
func (h *employeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	resp, err := h.employeeService.GetEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ActivateMe handles POST /employees/me/activations
func (h *employeeHandlerImpl) ActivateMe(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	h.activate(w, r, employeeID)
}

// Activate handles POST /employees/{id}/activations
func (h *employeeHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	h.activate(w, r, chi.URLParam(r, "id"))
}

func (h *employeeHandlerImpl) activate(w http.ResponseWriter, r *http.Request, employeeID string) {
	var req employee.ActivateMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ActivateMonth decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.employeeService.ActivateMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month activated", resp)
}

// AddReading handles POST /employees/me/readings
func (h *employeeHandlerImpl) AddReading(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	var req employee.AddReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddReading decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.employeeService.AddReading(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reading recorded", resp)
}

// ListReadings handles GET /employees/me/readings?year=
func (h *employeeHandlerImpl) ListReadings(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := targetEmployeeID(w, r)
	if !ok {
		return
	}

	resp, err := h.employeeService.ListReadings(r.Context(), employeeID, getIntQueryParam(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
