package http

import (
	"context"
	"net/http"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/dashboard"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

// DashboardHandler serves the admin overview. Both endpoints take an
// optional ?month=YYYY-MM that defaults to the current month.
type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	SubmissionStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	svc dashboard.DashboardService
}

func NewDashboardHandler(svc dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{svc: svc}
}

func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	serveForMonth(w, r, h.svc.GetDashboard)
}

func (h *dashboardHandlerImpl) SubmissionStats(w http.ResponseWriter, r *http.Request) {
	serveForMonth(w, r, h.svc.SubmissionStats)
}

func serveForMonth[T any](w http.ResponseWriter, r *http.Request, load func(context.Context, string) (T, error)) {
	out, err := load(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, out)
}
