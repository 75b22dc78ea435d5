package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

type SubmissionHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	Inbox(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type submissionHandlerImpl struct {
	submissionService submission.Service
}

func NewSubmissionHandler(submissionService submission.Service) SubmissionHandler {
	return &submissionHandlerImpl{submissionService: submissionService}
}

// Submit handles POST /submissions
func (h *submissionHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	var req submission.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	resp, err := h.submissionService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report submitted", resp)
}

// GetMine handles GET /submissions/me/{month}. A month never submitted
// yields data null.
func (h *submissionHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := targetEmployeeID(w, r)
	if !ok {
		return
	}

	resp, err := h.submissionService.GetForMonth(r.Context(), employeeID, chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Inbox handles GET /submissions/inbox
func (h *submissionHandlerImpl) Inbox(w http.ResponseWriter, r *http.Request) {
	items, err := h.submissionService.Inbox(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// Get handles GET /submissions/{id}
func (h *submissionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.submissionService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Review handles POST /submissions/{id}/review
func (h *submissionHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req submission.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SubmissionID = chi.URLParam(r, "id")

	resp, err := h.submissionService.Review(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review recorded", resp)
}
