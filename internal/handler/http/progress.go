package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

type ProgressHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	MarkCompleted(w http.ResponseWriter, r *http.Request)
	ResetMonth(w http.ResponseWriter, r *http.Request)
}

type progressHandlerImpl struct {
	progressService progress.Service
}

func NewProgressHandler(progressService progress.Service) ProgressHandler {
	return &progressHandlerImpl{progressService: progressService}
}

// Get handles GET /progress/{month}?employee_id=
func (h *progressHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := targetEmployeeID(w, r)
	if !ok {
		return
	}

	view, err := h.progressService.MonthView(r.Context(), employeeID, chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// MarkCompleted handles PUT /progress/{month}/days/{day}/activities/{activityID}
func (h *progressHandlerImpl) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		response.BadRequest(w, "Day must be a number", nil)
		return
	}

	req := progress.MarkCompletedRequest{
		EmployeeID: employeeID,
		MonthKey:   chi.URLParam(r, "month"),
		Day:        day,
		ActivityID: chi.URLParam(r, "activityID"),
	}
	if err := h.progressService.MarkCompleted(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Progress saved", nil)
}

// ResetMonth handles DELETE /progress/{month}
func (h *progressHandlerImpl) ResetMonth(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	resp, err := h.progressService.ResetMonth(r.Context(), employeeID, chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month progress cleared", resp)
}
