package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
	"github.com/fieldserve/rostering-backend-go/internal/handler/http/response"
)

type ClockHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type ClockHandlerImpl struct {
	clockService clockevent.ClockService
}

func NewClockHandler(clockService clockevent.ClockService) ClockHandler {
	return &ClockHandlerImpl{clockService: clockService}
}

// ClockIn implements ClockHandler.
func (h *ClockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req clockevent.ClockRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.clockService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockOut implements ClockHandler.
func (h *ClockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req clockevent.ClockRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.clockService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Status implements ClockHandler.
func (h *ClockHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	staffID := r.URL.Query().Get("staff_id")
	if staffID == "" {
		response.BadRequest(w, "staff_id query parameter is required", nil)
		return
	}

	status, err := h.clockService.GetActiveClockIn(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}
