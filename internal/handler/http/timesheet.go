package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/budget"
	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
	"github.com/fieldserve/rostering-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type TimesheetHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateWeekly(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	PostBudget(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	posterService    budget.PosterService
	loc              *time.Location
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, posterService budget.PosterService, loc *time.Location) TimesheetHandler {
	return &TimesheetHandlerImpl{
		timesheetService: timesheetService,
		posterService:    posterService,
		loc:              loc,
	}
}

func actorFromToken(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	staffID, ok := claims["staff_id"].(string)
	return staffID, ok && staffID != ""
}

// Generate implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req timesheet.GenerateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateWeekly implements TimesheetHandler.
func (h *TimesheetHandlerImpl) GenerateWeekly(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStart string `json:"week_start"` // YYYY-MM-DD
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateWeekly decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	weekStart, err := time.ParseInLocation("2006-01-02", req.WeekStart, h.loc)
	if err != nil {
		response.BadRequest(w, "week_start must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.timesheetService.GenerateWeekly(r.Context(), weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements TimesheetHandler. Budget posting is attempted right
// after a successful approval; a posting failure does not undo the approval
// and can be retried through the post-budget endpoint.
func (h *TimesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Timesheet ID is required", nil)
		return
	}

	actorID, ok := actorFromToken(r)
	if !ok {
		response.Unauthorized(w, "Device token is missing staff identity")
		return
	}

	result, err := h.timesheetService.Approve(r.Context(), id, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if _, err := h.posterService.PostTimesheet(r.Context(), id); err != nil && !errors.Is(err, budget.ErrBudgetAlreadyPosted) {
		slog.Warn("budget posting after approval failed", "timesheet_id", id, "error", err)
	}

	response.SuccessWithMessage(w, "Timesheet approved", result)
}

// Reject implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Timesheet ID is required", nil)
		return
	}

	actorID, ok := actorFromToken(r)
	if !ok {
		response.Unauthorized(w, "Device token is missing staff identity")
		return
	}

	var req timesheet.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.Reject(r.Context(), id, actorID, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet rejected", result)
}

// Get implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Timesheet ID is required", nil)
		return
	}

	result, err := h.timesheetService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TimesheetHandler.
func (h *TimesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter timesheet.Filter

	if staffID := r.URL.Query().Get("staff_id"); staffID != "" {
		filter.StaffID = &staffID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := timesheet.Status(status)
		filter.Status = &s
	}

	result, err := h.timesheetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PostBudget implements TimesheetHandler.
func (h *TimesheetHandlerImpl) PostBudget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Timesheet ID is required", nil)
		return
	}

	result, err := h.posterService.PostTimesheet(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet posted to budgets", result)
}
