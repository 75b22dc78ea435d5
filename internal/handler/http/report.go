package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activityreport"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	AddEntry(w http.ResponseWriter, r *http.Request)
	AddBook(w http.ResponseWriter, r *http.Request)
	RemoveEntry(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService activityreport.Service
}

func NewReportHandler(reportService activityreport.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// List handles GET /reports?employee_id=
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := targetEmployeeID(w, r)
	if !ok {
		return
	}

	reports, err := h.reportService.GetMonthlyReports(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// AddEntry handles POST /reports/{month}/activities/{activityID}/entries
func (h *reportHandlerImpl) AddEntry(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	var req activityreport.AddManualReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID
	req.MonthKey = chi.URLParam(r, "month")
	req.ActivityID = chi.URLParam(r, "activityID")

	record, err := h.reportService.AddManualReportByDate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report saved", record)
}

// AddBook handles POST /reports/{month}/activities/{activityID}/books
func (h *reportHandlerImpl) AddBook(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	var req activityreport.AddBookReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddBook decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID
	req.MonthKey = chi.URLParam(r, "month")
	req.ActivityID = chi.URLParam(r, "activityID")

	record, err := h.reportService.AddBookReadingReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Book report saved", record)
}

// RemoveEntry handles DELETE /admin/employees/{employeeID}/reports/{month}/activities/{activityID}/entries/{date}
func (h *reportHandlerImpl) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	req := activityreport.RemoveEntryRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		MonthKey:   chi.URLParam(r, "month"),
		ActivityID: chi.URLParam(r, "activityID"),
		Date:       chi.URLParam(r, "date"),
	}

	record, err := h.reportService.RemoveEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report entry removed", record)
}
