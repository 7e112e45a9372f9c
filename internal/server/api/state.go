// Package api provides HTTP API handlers for the Rangoli painter.
package api

import (
	"encoding/json"
	"net/http"
)

// Controller exposes the drawing parameters the API can read and change.
// The application implements it on top of the paint state so handler and
// state machine stay decoupled.
type Controller interface {
	ColorName() string
	Thickness() int
	Sensitivity() int
	SetColor(name string) error
	SetThickness(n int)
}

// StateHandler handles HTTP requests for the drawing state.
type StateHandler struct {
	ctrl Controller
}

// NewStateHandler creates a new StateHandler with the given controller.
func NewStateHandler(ctrl Controller) *StateHandler {
	return &StateHandler{ctrl: ctrl}
}

type stateResponse struct {
	Color       string `json:"color"`
	Thickness   int    `json:"thickness"`
	Sensitivity int    `json:"sensitivity"`
}

type updateStateRequest struct {
	Color     *string `json:"color"`
	Thickness *int    `json:"thickness"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP implements the http.Handler interface.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/state and returns the current drawing parameters.
func (h *StateHandler) get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot())
}

// update handles PUT /api/state. Fields are optional; omitted fields are
// left unchanged. Thickness below 1 is floored, never rejected.
func (h *StateHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Color != nil {
		if err := h.ctrl.SetColor(*req.Color); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if req.Thickness != nil {
		h.ctrl.SetThickness(*req.Thickness)
	}

	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *StateHandler) snapshot() stateResponse {
	return stateResponse{
		Color:       h.ctrl.ColorName(),
		Thickness:   h.ctrl.Thickness(),
		Sensitivity: h.ctrl.Sensitivity(),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
