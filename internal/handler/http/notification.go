package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/jwt"
)

// NotificationHandler serves the caller's in-app inbox. Every route except
// Stream needs an account linked to an employee.
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	GetPreferences(w http.ResponseWriter, r *http.Request)
	UpdatePreference(w http.ResponseWriter, r *http.Request)

	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	svc       notification.Service
	tokens    jwt.Service
	keepalive time.Duration
}

func NewNotificationHandler(svc notification.Service, tokens jwt.Service) NotificationHandler {
	return &notificationHandlerImpl{svc: svc, tokens: tokens, keepalive: 30 * time.Second}
}

func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.GetNotifications(r.Context(), employeeID,
		getIntQueryParam(r, "page", 1),
		getIntQueryParam(r, "page_size", 20),
		getBoolQueryParam(r, "unread_only", false))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	n, err := h.svc.GetUnreadCount(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notification.UnreadCountResponse{UnreadCount: n})
}

func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	var req notification.MarkAsReadRequest
	h.mutate(w, r, &req, "Notifications marked as read", func(employeeID string) error {
		return h.svc.MarkAsRead(r.Context(), employeeID, req)
	})
}

func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, nil, "All notifications marked as read", func(employeeID string) error {
		return h.svc.MarkAllAsRead(r.Context(), employeeID)
	})
}

func (h *notificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, nil, "Notification deleted", func(employeeID string) error {
		return h.svc.Delete(r.Context(), employeeID, chi.URLParam(r, "id"))
	})
}

func (h *notificationHandlerImpl) GetPreferences(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	prefs, err := h.svc.GetPreferences(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, prefs)
}

func (h *notificationHandlerImpl) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	var req notification.UpdatePreferenceRequest
	h.mutate(w, r, &req, "Preference updated", func(employeeID string) error {
		return h.svc.UpdatePreference(r.Context(), employeeID, req)
	})
}

// mutate resolves the caller, decodes body into req when req is non-nil,
// then runs apply and reports done on success.
func (h *notificationHandlerImpl) mutate(w http.ResponseWriter, r *http.Request, req any, done string, apply func(employeeID string) error) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	if req != nil && !decodeJSON(w, r, req) {
		return
	}
	if err := apply(employeeID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, done, nil)
}

// GetSSEToken issues the short-lived token Stream accepts.
func (h *notificationHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	token, expiresIn, err := h.tokens.GenerateSSEToken(employeeID)
	if err != nil {
		slog.Error("generate sse token", "employee_id", employeeID, "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}
	response.Success(w, notification.SSETokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream pushes notifications as server-sent events. EventSource cannot
// set headers, so the SSE token arrives as ?token=.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		response.Unauthorized(w, "Missing token")
		return
	}
	employeeID, err := h.tokens.ValidateSSEToken(raw)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")

	events, unsubscribe := h.svc.Subscribe(r.Context(), employeeID)
	defer unsubscribe()

	send := func(name string, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			slog.Warn("drop sse event", "event", name, "error", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
		flusher.Flush()
	}

	send("connected", map[string]string{"status": "connected", "employee_id": employeeID})

	ping := time.NewTicker(h.keepalive)
	defer ping.Stop()

	for {
		select {
		case ev, open := <-events:
			if !open {
				return
			}
			send(ev.Event, ev.Data)
		case now := <-ping.C:
			send("ping", map[string]int64{"timestamp": now.Unix()})
		case <-r.Context().Done():
			return
		}
	}
}
