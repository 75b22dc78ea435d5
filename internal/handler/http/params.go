package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/handler/http/response"
)

// callerEmployeeID writes an error response and returns false when the
// caller has no employee profile.
func callerEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	employeeID, err := auth.EmployeeFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return "", false
	}
	return employeeID, true
}

// targetEmployeeID returns the employee_id query parameter, falling back
// to the caller.
func targetEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if id := r.URL.Query().Get("employee_id"); id != "" {
		return id, true
	}
	return callerEmployeeID(w, r)
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// decodeJSON reads the request body into dst and answers 400 when it is
// not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || json.NewDecoder(r.Body).Decode(dst) != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
