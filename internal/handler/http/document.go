package http

import (
	"log/slog"
	"net/http"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/document"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

type DocumentHandler interface {
	Transcript(w http.ResponseWriter, r *http.Request)
	Checklist(w http.ResponseWriter, r *http.Request)
}

type documentHandlerImpl struct {
	documentService document.Service
}

func NewDocumentHandler(documentService document.Service) DocumentHandler {
	return &documentHandlerImpl{documentService: documentService}
}

// Transcript handles GET /documents/transcript?year=&employee_id=
func (h *documentHandlerImpl) Transcript(w http.ResponseWriter, r *http.Request) {
	file, err := h.documentService.Transcript(r.Context(), document.TranscriptRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       getIntQueryParam(r, "year", 0),
	})
	if err != nil {
		slog.Error("Transcript service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Name, file.ContentType, file.Data)
}

// Checklist handles GET /documents/checklist?month=&employee_id=
func (h *documentHandlerImpl) Checklist(w http.ResponseWriter, r *http.Request) {
	file, err := h.documentService.Checklist(r.Context(), document.ChecklistRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		MonthKey:   r.URL.Query().Get("month"),
	})
	if err != nil {
		slog.Error("Checklist service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Name, file.ContentType, file.Data)
}
