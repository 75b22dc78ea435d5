package http

import (
	"net/http"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

type ActivityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	catalog *activity.Catalog
}

func NewActivityHandler(catalog *activity.Catalog) ActivityHandler {
	return &activityHandlerImpl{catalog: catalog}
}

// List handles GET /activities
func (h *activityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.catalog.Grouped())
}
