package http

import (
	"net/http"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	Weekly(w http.ResponseWriter, r *http.Request)
	Yearly(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.Service
}

func NewPerformanceHandler(performanceService performance.Service) PerformanceHandler {
	return &performanceHandlerImpl{performanceService: performanceService}
}

// Monthly handles GET /performance/monthly?month=&employee_id=
func (h *performanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	card, err := h.performanceService.Monthly(r.Context(), performance.MonthlyRequest{
		EmployeeID: q.Get("employee_id"),
		MonthKey:   q.Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, card)
}

// Weekly handles GET /performance/weekly?month=&week=&employee_id=
func (h *performanceHandlerImpl) Weekly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	card, err := h.performanceService.Weekly(r.Context(), performance.WeeklyRequest{
		EmployeeID: q.Get("employee_id"),
		MonthKey:   q.Get("month"),
		WeekIndex:  getIntQueryParam(r, "week", 0),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, card)
}

// Yearly handles GET /performance/yearly?year=&employee_id=
func (h *performanceHandlerImpl) Yearly(w http.ResponseWriter, r *http.Request) {
	card, err := h.performanceService.Yearly(r.Context(), performance.YearlyRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       getIntQueryParam(r, "year", 0),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, card)
}
