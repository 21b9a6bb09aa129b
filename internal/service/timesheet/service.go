package timesheet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/appointment"
	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
	"github.com/fieldserve/rostering-backend-go/internal/domain/staff"
	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ServiceType assigned to shifts with no linked appointment.
const defaultServiceType = "standard"

// Concurrency cap for the weekly batch fan-out.
const weeklyBatchWorkers = 8

// Actor recorded when a timesheet is generated with auto-approval.
const autoApproveActor = "system"

type TimesheetServiceImpl struct {
	tx database.TxManager
	timesheet.TimesheetRepository
	clockevent.ClockEventRepository
	appointment.AppointmentRepository
	staff.StaffRepository
	decomposer *Decomposer
	loc        *time.Location
}

func NewTimesheetService(
	tx database.TxManager,
	timesheetRepo timesheet.TimesheetRepository,
	eventRepo clockevent.ClockEventRepository,
	appointmentRepo appointment.AppointmentRepository,
	staffRepo staff.StaffRepository,
	decomposer *Decomposer,
	loc *time.Location,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		tx:                      tx,
		TimesheetRepository:     timesheetRepo,
		ClockEventRepository:    eventRepo,
		AppointmentRepository:   appointmentRepo,
		StaffRepository:         staffRepo,
		decomposer:              decomposer,
		loc:                     loc,
	}
}

func newTimesheetID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Generate implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Generate(ctx context.Context, req timesheet.GenerateRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	// Period boundaries are business-local midnights.
	startDate, _ := time.Parse("2006-01-02", req.PeriodStart)
	endDate, _ := time.Parse("2006-01-02", req.PeriodEnd)
	periodStart := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, s.loc)
	periodEnd := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, s.loc)
	if !periodEnd.After(periodStart) {
		return timesheet.TimesheetResponse{}, timesheet.ErrInvalidPeriod
	}

	if _, err := s.StaffRepository.GetByID(ctx, req.StaffID); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	now := time.Now().UTC()
	var created timesheet.Timesheet

	// Aggregation runs inside a transaction so the event snapshot and the
	// written timesheet are consistent.
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		events, err := s.ClockEventRepository.ListByStaffAndPeriod(ctx, req.StaffID, periodStart.UTC(), periodEnd.UTC())
		if err != nil {
			return fmt.Errorf("failed to list clock events: %w", err)
		}

		eventByID := make(map[string]clockevent.ClockEvent, len(events))
		for _, e := range events {
			eventByID[e.ID] = e
		}

		apptCache := make(map[string]*appointment.Appointment)

		var entries []timesheet.Entry
		var totals timesheet.CategoryHours
		processed := make(map[string]bool)

		for _, e := range events {
			// Unpaired clock-ins are not yet closed; they belong to a later
			// timesheet run.
			if e.Type != clockevent.TypeClockIn || e.PairID == nil || processed[e.ID] {
				continue
			}

			out, ok := eventByID[*e.PairID]
			if !ok {
				// Pair closed outside the snapshot window.
				var err error
				out, err = s.ClockEventRepository.GetByID(ctx, *e.PairID)
				if err != nil {
					if errors.Is(err, clockevent.ErrClockEventNotFound) {
						continue
					}
					return fmt.Errorf("failed to load paired clock-out: %w", err)
				}
			}
			processed[e.ID] = true
			processed[out.ID] = true

			var clientID *string
			serviceType := defaultServiceType
			if e.AppointmentID != nil {
				appt, cached := apptCache[*e.AppointmentID]
				if !cached {
					a, err := s.AppointmentRepository.GetByID(ctx, *e.AppointmentID)
					switch {
					case err == nil:
						appt = &a
					case errors.Is(err, appointment.ErrAppointmentNotFound):
						appt = nil
					default:
						return fmt.Errorf("failed to resolve appointment: %w", err)
					}
					apptCache[*e.AppointmentID] = appt
				}
				if appt != nil {
					id := appt.ClientID
					clientID = &id
					if appt.ServiceType != "" {
						serviceType = appt.ServiceType
					}
				}
			}

			hours, err := s.decomposer.Decompose(ctx, e.Timestamp, out.Timestamp)
			if err != nil {
				return err
			}

			localIn := e.Timestamp.In(s.loc)
			entries = append(entries, timesheet.Entry{
				ID:            newTimesheetID(),
				AppointmentID: e.AppointmentID,
				ClientID:      clientID,
				ServiceType:   serviceType,
				Date:          time.Date(localIn.Year(), localIn.Month(), localIn.Day(), 0, 0, 0, 0, s.loc),
				ClockInTime:   e.Timestamp,
				ClockOutTime:  out.Timestamp,
				Hours:         hours,
				TotalHours:    hours.Total(),
				Notes:         e.Notes,
			})
			totals = totals.Add(hours)
		}

		ts := timesheet.Timesheet{
			ID:          newTimesheetID(),
			StaffID:     req.StaffID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Status:      timesheet.StatusPendingApproval,
			Hours:       totals,
			TotalHours:  totals.Total(),
			Entries:     entries,
		}
		for i := range ts.Entries {
			ts.Entries[i].TimesheetID = ts.ID
		}

		if req.AutoApprove {
			actor := autoApproveActor
			approvedAt := now
			ts.Status = timesheet.StatusApproved
			ts.ApprovedBy = &actor
			ts.ApprovedAt = &approvedAt
		}

		created, err = s.TimesheetRepository.CreateWithEntries(ctx, ts)
		if err != nil {
			return fmt.Errorf("failed to create timesheet: %w", err)
		}
		return nil
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return timesheet.ToResponse(created), nil
}

// GenerateWeekly implements timesheet.TimesheetService. Per-staff failures
// are collected into the batch result instead of aborting the run.
func (s *TimesheetServiceImpl) GenerateWeekly(ctx context.Context, weekStart time.Time) (timesheet.WeeklyBatchResult, error) {
	weekStartLocal := weekStart.In(s.loc)
	periodStart := time.Date(weekStartLocal.Year(), weekStartLocal.Month(), weekStartLocal.Day(), 0, 0, 0, 0, s.loc)
	periodEnd := periodStart.AddDate(0, 0, 7)

	activeStaff, err := s.StaffRepository.ListActive(ctx)
	if err != nil {
		return timesheet.WeeklyBatchResult{}, fmt.Errorf("failed to list active staff: %w", err)
	}

	result := timesheet.WeeklyBatchResult{
		WeekStart: periodStart.Format("2006-01-02"),
		WeekEnd:   periodEnd.Format("2006-01-02"),
		Generated: make([]timesheet.TimesheetResponse, 0, len(activeStaff)),
		Failures:  make([]timesheet.StaffFailure, 0),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(weeklyBatchWorkers)

	for _, member := range activeStaff {
		g.Go(func() error {
			resp, err := s.Generate(gctx, timesheet.GenerateRequest{
				StaffID:     member.ID,
				PeriodStart: result.WeekStart,
				PeriodEnd:   result.WeekEnd,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, timesheet.StaffFailure{
					StaffID: member.ID,
					Error:   err.Error(),
				})
				return nil
			}
			result.Generated = append(result.Generated, resp)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return timesheet.WeeklyBatchResult{}, err
	}

	return result, nil
}

// Approve implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Approve(ctx context.Context, id string, approvedByID string) (timesheet.TimesheetResponse, error) {
	now := time.Now().UTC()

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ts, err := s.TimesheetRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if ts.Status != timesheet.StatusPendingApproval {
			return timesheet.ErrTimesheetAlreadyProcessed
		}

		return s.TimesheetRepository.SetApproval(ctx, id, timesheet.StatusApproved, approvedByID, now, nil)
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return s.Get(ctx, id)
}

// Reject implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Reject(ctx context.Context, id string, rejectedByID string, reason string) (timesheet.TimesheetResponse, error) {
	if validator.IsEmpty(reason) {
		return timesheet.TimesheetResponse{}, timesheet.ErrRejectionReasonRequired
	}

	now := time.Now().UTC()

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ts, err := s.TimesheetRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if ts.Status != timesheet.StatusPendingApproval {
			return timesheet.ErrTimesheetAlreadyProcessed
		}

		return s.TimesheetRepository.SetApproval(ctx, id, timesheet.StatusRejected, rejectedByID, now, &reason)
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return s.Get(ctx, id)
}

// Get implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return timesheet.ToResponse(ts), nil
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.Filter) ([]timesheet.TimesheetResponse, error) {
	sheets, err := s.TimesheetRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(sheets))
	for _, ts := range sheets {
		responses = append(responses, timesheet.ToResponse(ts))
	}
	return responses, nil
}
