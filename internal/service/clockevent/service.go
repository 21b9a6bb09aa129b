package clockevent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/appointment"
	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
	"github.com/fieldserve/rostering-backend-go/internal/domain/staff"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
)

// Shift durations outside this window are flagged for human attention but
// never rejected.
const (
	minPlausibleShift = 5 * time.Minute
	maxPlausibleShift = 16 * time.Hour
)

type ClockServiceImpl struct {
	tx database.TxManager
	clockevent.ClockEventRepository
	clockevent.ComplianceLogRepository
	staff.StaffRepository
	appointment.AppointmentRepository
	defaultRadiusMeters float64
}

func NewClockService(
	tx database.TxManager,
	eventRepo clockevent.ClockEventRepository,
	logRepo clockevent.ComplianceLogRepository,
	staffRepo staff.StaffRepository,
	appointmentRepo appointment.AppointmentRepository,
	defaultRadiusMeters float64,
) clockevent.ClockService {
	return &ClockServiceImpl{
		tx:                      tx,
		ClockEventRepository:    eventRepo,
		ComplianceLogRepository: logRepo,
		StaffRepository:         staffRepo,
		AppointmentRepository:   appointmentRepo,
		defaultRadiusMeters:     defaultRadiusMeters,
	}
}

func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does.
		return uuid.New().String()
	}
	return id.String()
}

func failure(code clockevent.FailureCode, message string) clockevent.ClockActionResult {
	return clockevent.ClockActionResult{
		Success:  false,
		Errors:   []clockevent.ActionError{{Code: code, Message: message}},
		Warnings: []clockevent.ActionWarning{},
	}
}

func toOpenShift(e clockevent.ClockEvent) clockevent.OpenShift {
	return clockevent.OpenShift{
		RecordID:             e.ID,
		AppointmentID:        e.AppointmentID,
		ClockInTime:          e.Timestamp,
		ExpectedClockOutTime: e.ExpectedClockOutTime,
	}
}

// expectedLocation resolves the expected service coordinates and radius for a
// clock action. A nil appointment id, a vanished appointment, or a client
// without a recorded location all mean evaluation is skipped.
func (s *ClockServiceImpl) expectedLocation(ctx context.Context, appointmentID *string) (*appointment.Appointment, *float64, *float64, float64, error) {
	radius := s.defaultRadiusMeters
	if appointmentID == nil {
		return nil, nil, nil, radius, nil
	}

	appt, err := s.AppointmentRepository.GetByID(ctx, *appointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, nil, nil, radius, nil
		}
		return nil, nil, nil, radius, fmt.Errorf("failed to resolve appointment: %w", err)
	}

	if appt.RadiusMeters != nil && *appt.RadiusMeters > 0 {
		radius = *appt.RadiusMeters
	}

	return &appt, appt.ClientLatitude, appt.ClientLongitude, radius, nil
}

func eventStatus(eval geo.Evaluation) clockevent.EventStatus {
	switch eval.Status {
	case geo.StatusViolation:
		return clockevent.StatusGPSViolation
	case geo.StatusWarning:
		return clockevent.StatusGPSWarning
	default:
		return clockevent.StatusValid
	}
}

// writeComplianceLog appends the audit entry for an evaluated event.
func (s *ClockServiceImpl) writeComplianceLog(ctx context.Context, event clockevent.ClockEvent, eval geo.Evaluation) error {
	if !eval.Evaluated {
		return nil
	}

	_, err := s.ComplianceLogRepository.Create(ctx, clockevent.ComplianceLogEntry{
		ID:                newEventID(),
		EventType:         event.Type,
		StaffID:           event.StaffID,
		AppointmentID:     event.AppointmentID,
		ClockEventID:      event.ID,
		Latitude:          event.Latitude,
		Longitude:         event.Longitude,
		ExpectedLatitude:  *event.ExpectedLatitude,
		ExpectedLongitude: *event.ExpectedLongitude,
		DistanceMeters:    eval.DistanceMeters,
		Compliant:         eval.Compliant(),
		RequiresReview:    !eval.Compliant(),
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to write compliance log entry: %w", err)
	}
	return nil
}

// ClockIn implements clockevent.ClockService.
func (s *ClockServiceImpl) ClockIn(ctx context.Context, req clockevent.ClockRequest) (clockevent.ClockActionResult, error) {
	if err := req.Validate(); err != nil {
		return clockevent.ClockActionResult{}, err
	}

	now := time.Now().UTC()
	var result clockevent.ClockActionResult

	// The staff row is locked before the overlap check. The open-shift query
	// locks nothing when no open shift exists, so the staff lock is what
	// keeps two simultaneous first clock-ins from both passing the check.
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.StaffRepository.GetByIDForUpdate(ctx, req.StaffID); err != nil {
			if errors.Is(err, staff.ErrStaffNotFound) {
				result = failure(clockevent.CodeStaffNotFound, "staff member not found")
				return nil
			}
			return fmt.Errorf("failed to look up staff member: %w", err)
		}

		open, err := s.ClockEventRepository.FindOpenByStaff(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to scan for open shifts: %w", err)
		}

		if len(open) > 0 {
			result = failure(clockevent.CodeOverlappingShift, "an open shift already exists for this staff member")
			for _, e := range open {
				result.OverlappingEvents = append(result.OverlappingEvents, toOpenShift(e))
			}
			return nil
		}

		appt, expLat, expLon, radius, err := s.expectedLocation(ctx, req.AppointmentID)
		if err != nil {
			return err
		}

		eval := geo.Evaluate(req.Latitude, req.Longitude, expLat, expLon, radius)

		event := clockevent.ClockEvent{
			ID:                newEventID(),
			StaffID:           req.StaffID,
			AppointmentID:     req.AppointmentID,
			Type:              clockevent.TypeClockIn,
			Status:            eventStatus(eval),
			Timestamp:         now,
			Latitude:          req.Latitude,
			Longitude:         req.Longitude,
			AccuracyMeters:    req.Accuracy,
			ExpectedLatitude:  expLat,
			ExpectedLongitude: expLon,
			RadiusMeters:      radius,
			DeviceType:        req.DeviceType,
			Notes:             req.Notes,
		}
		if eval.Evaluated {
			distance := eval.DistanceMeters
			event.DistanceMeters = &distance
		}
		if appt != nil {
			end := appt.EndTime
			event.ExpectedClockOutTime = &end
		}

		created, err := s.ClockEventRepository.Create(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to create clock event: %w", err)
		}

		if err := s.writeComplianceLog(ctx, created, eval); err != nil {
			return err
		}

		result = buildActionResult(created, eval)
		return nil
	})
	if err != nil {
		return clockevent.ClockActionResult{}, err
	}

	return result, nil
}

// ClockOut implements clockevent.ClockService.
func (s *ClockServiceImpl) ClockOut(ctx context.Context, req clockevent.ClockRequest) (clockevent.ClockActionResult, error) {
	if err := req.Validate(); err != nil {
		return clockevent.ClockActionResult{}, err
	}

	now := time.Now().UTC()
	var result clockevent.ClockActionResult

	// Same staff row lock as clock-in, so a clock-out cannot interleave with
	// a concurrent clock-in on the same staff member.
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.StaffRepository.GetByIDForUpdate(ctx, req.StaffID); err != nil {
			if errors.Is(err, staff.ErrStaffNotFound) {
				result = failure(clockevent.CodeStaffNotFound, "staff member not found")
				return nil
			}
			return fmt.Errorf("failed to look up staff member: %w", err)
		}

		open, err := s.ClockEventRepository.FindOpenByStaff(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("failed to scan for open shifts: %w", err)
		}

		// Candidates come back oldest first; keep the most recent one that
		// matches the appointment key. A request without an appointment
		// matches any open shift.
		var clockIn *clockevent.ClockEvent
		for i := range open {
			if req.AppointmentID != nil {
				if open[i].AppointmentID == nil || *open[i].AppointmentID != *req.AppointmentID {
					continue
				}
			}
			clockIn = &open[i]
		}

		if clockIn == nil {
			result = failure(clockevent.CodeNoActiveClockIn, "no active clock-in found for this staff member")
			return nil
		}

		// Same expected-location lookup as clock-in, keyed by the shift's
		// own appointment.
		_, expLat, expLon, radius, err := s.expectedLocation(ctx, clockIn.AppointmentID)
		if err != nil {
			return err
		}

		eval := geo.Evaluate(req.Latitude, req.Longitude, expLat, expLon, radius)

		event := clockevent.ClockEvent{
			ID:                newEventID(),
			StaffID:           req.StaffID,
			AppointmentID:     clockIn.AppointmentID,
			Type:              clockevent.TypeClockOut,
			Status:            eventStatus(eval),
			Timestamp:         now,
			Latitude:          req.Latitude,
			Longitude:         req.Longitude,
			AccuracyMeters:    req.Accuracy,
			ExpectedLatitude:  expLat,
			ExpectedLongitude: expLon,
			RadiusMeters:      radius,
			PairID:            &clockIn.ID,
			DeviceType:        req.DeviceType,
			Notes:             req.Notes,
		}
		if eval.Evaluated {
			distance := eval.DistanceMeters
			event.DistanceMeters = &distance
		}

		created, err := s.ClockEventRepository.Create(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to create clock event: %w", err)
		}

		// Pairing is bidirectional: the clock-in gets the back-reference in
		// the same transaction.
		if err := s.ClockEventRepository.SetPairID(ctx, clockIn.ID, created.ID); err != nil {
			return fmt.Errorf("failed to pair clock events: %w", err)
		}

		if err := s.writeComplianceLog(ctx, created, eval); err != nil {
			return err
		}

		result = buildActionResult(created, eval)

		duration := now.Sub(clockIn.Timestamp)
		if duration < minPlausibleShift || duration > maxPlausibleShift {
			result.Warnings = append(result.Warnings, clockevent.ActionWarning{
				Code:    clockevent.CodeImplausibleDuration,
				Message: fmt.Sprintf("shift duration of %s looks implausible and has been flagged for review", duration.Round(time.Minute)),
			})
		}
		return nil
	})
	if err != nil {
		return clockevent.ClockActionResult{}, err
	}

	return result, nil
}

// buildActionResult translates the compliance evaluation into the structured
// result. A violation is recorded durably but the action itself fails.
func buildActionResult(event clockevent.ClockEvent, eval geo.Evaluation) clockevent.ClockActionResult {
	result := clockevent.ClockActionResult{
		Success:  true,
		RecordID: &event.ID,
		Errors:   []clockevent.ActionError{},
		Warnings: []clockevent.ActionWarning{},
	}

	if !eval.Evaluated {
		return result
	}

	compliant := eval.Compliant()
	distance := eval.DistanceMeters
	result.GPSCompliant = &compliant
	result.DistanceMeters = &distance

	switch eval.Status {
	case geo.StatusViolation:
		result.Success = false
		result.Errors = append(result.Errors, clockevent.ActionError{
			Code: clockevent.CodeGPSViolation,
			Message: fmt.Sprintf("location is %.0fm from the expected service location (allowed %.0fm)",
				eval.DistanceMeters, eval.RadiusMeters),
		})
	case geo.StatusWarning:
		result.Warnings = append(result.Warnings, clockevent.ActionWarning{
			Code: clockevent.CodeGPSWarning,
			Message: fmt.Sprintf("location is %.0fm from the expected service location, near the %.0fm limit",
				eval.DistanceMeters, eval.RadiusMeters),
		})
	}

	return result
}

// GetActiveClockIn implements clockevent.ClockService.
func (s *ClockServiceImpl) GetActiveClockIn(ctx context.Context, staffID string) (clockevent.ActiveClockInResponse, error) {
	if _, err := s.StaffRepository.GetByID(ctx, staffID); err != nil {
		return clockevent.ActiveClockInResponse{}, err
	}

	open, err := s.ClockEventRepository.FindOpenByStaff(ctx, staffID)
	if err != nil {
		return clockevent.ActiveClockInResponse{}, fmt.Errorf("failed to scan for open shifts: %w", err)
	}

	resp := clockevent.ActiveClockInResponse{
		IsClockedIn:  len(open) > 0,
		ActiveEvents: make([]clockevent.OpenShift, 0, len(open)),
	}
	for _, e := range open {
		resp.ActiveEvents = append(resp.ActiveEvents, toOpenShift(e))
	}
	return resp, nil
}
