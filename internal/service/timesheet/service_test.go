package timesheet

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/appointment"
	"github.com/fieldserve/rostering-backend-go/internal/domain/clockevent"
	"github.com/fieldserve/rostering-backend-go/internal/domain/staff"
	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/validator"
	"github.com/fieldserve/rostering-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timesheetFixture struct {
	svc          timesheet.TimesheetService
	timesheets   *memory.TimesheetRepository
	events       *memory.ClockEventRepository
	appointments *memory.AppointmentRepository
	staff        *memory.StaffRepository
	holidays     *memory.HolidayCalendarRepository
}

func newTimesheetFixture(t *testing.T) *timesheetFixture {
	t.Helper()

	f := &timesheetFixture{
		timesheets:   memory.NewTimesheetRepository(),
		events:       memory.NewClockEventRepository(),
		appointments: memory.NewAppointmentRepository(),
		staff:        memory.NewStaffRepository(),
		holidays:     memory.NewHolidayCalendarRepository(),
	}
	decomposer := NewDecomposer(f.holidays, time.UTC)
	f.svc = NewTimesheetService(memory.NewTxManager(), f.timesheets, f.events, f.appointments, f.staff, decomposer, time.UTC)

	f.staff.Put(staff.Staff{ID: "staff-1", FullName: "Dana Reeves", Active: true})
	return f
}

var shiftSeq atomic.Int64

// seedShift writes a fully paired clock-in/clock-out into the event store.
func (f *timesheetFixture) seedShift(t *testing.T, staffID string, apptID *string, in, out time.Time) {
	t.Helper()

	n := shiftSeq.Add(1)
	inID := fmt.Sprintf("in-%d", n)
	outID := fmt.Sprintf("out-%d", n)

	_, err := f.events.Create(context.Background(), clockevent.ClockEvent{
		ID:            inID,
		StaffID:       staffID,
		AppointmentID: apptID,
		Type:          clockevent.TypeClockIn,
		Status:        clockevent.StatusValid,
		Timestamp:     in,
		PairID:        &outID,
	})
	require.NoError(t, err)

	_, err = f.events.Create(context.Background(), clockevent.ClockEvent{
		ID:            outID,
		StaffID:       staffID,
		AppointmentID: apptID,
		Type:          clockevent.TypeClockOut,
		Status:        clockevent.StatusValid,
		Timestamp:     out,
		PairID:        &inID,
	})
	require.NoError(t, err)
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func apptPtr(v string) *string { return &v }

func TestGenerateAggregatesPairedShifts(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	f.appointments.Put(appointment.Appointment{
		ID:          "appt-1",
		StaffID:     "staff-1",
		ClientID:    "client-1",
		ServiceType: "personal_care",
	})

	// Monday 08:00-17:00 with an appointment, Tuesday 09:00-12:00 without.
	f.seedShift(t, "staff-1", apptPtr("appt-1"), ts(t, "2025-06-02 08:00"), ts(t, "2025-06-02 17:00"))
	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-03 09:00"), ts(t, "2025-06-03 12:00"))

	result, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "staff-1",
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-09",
	})
	require.NoError(t, err)

	assert.Equal(t, timesheet.StatusPendingApproval, result.Status)
	assert.Equal(t, "12", result.WeekdayHours)
	assert.Equal(t, "12", result.TotalHours)
	require.Len(t, result.Entries, 2)

	// Appointment metadata flows into the entry; the bare shift defaults.
	assert.Equal(t, "personal_care", result.Entries[0].ServiceType)
	require.NotNil(t, result.Entries[0].ClientID)
	assert.Equal(t, "client-1", *result.Entries[0].ClientID)
	assert.Equal(t, "standard", result.Entries[1].ServiceType)
	assert.Nil(t, result.Entries[1].ClientID)
}

func TestGenerateIgnoresUnpairedClockIns(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	_, err := f.events.Create(context.Background(), clockevent.ClockEvent{
		ID:        "dangling",
		StaffID:   "staff-1",
		Type:      clockevent.TypeClockIn,
		Status:    clockevent.StatusValid,
		Timestamp: ts(t, "2025-06-04 08:00"),
	})
	require.NoError(t, err)

	result, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "staff-1",
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-09",
	})
	require.NoError(t, err)

	assert.Empty(t, result.Entries)
	assert.Equal(t, "0", result.TotalHours)
}

func TestGenerateTotalsMatchEntrySums(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-02 08:00"), ts(t, "2025-06-02 16:30"))
	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-06 22:00"), ts(t, "2025-06-07 02:00"))
	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-08 10:00"), ts(t, "2025-06-08 14:15"))

	result, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "staff-1",
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-09",
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)

	sum := decimal.Zero
	for _, e := range result.Entries {
		entryTotal, err := decimal.NewFromString(e.TotalHours)
		require.NoError(t, err)
		sum = sum.Add(entryTotal)
	}

	total, err := decimal.NewFromString(result.TotalHours)
	require.NoError(t, err)
	assert.True(t, total.Equal(sum), "timesheet total %s != entry sum %s", total, sum)
}

func TestGenerateAutoApprove(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-02 08:00"), ts(t, "2025-06-02 17:00"))

	result, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "staff-1",
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-09",
		AutoApprove: true,
	})
	require.NoError(t, err)

	assert.Equal(t, timesheet.StatusApproved, result.Status)
	require.NotNil(t, result.ApprovedBy)
	assert.Equal(t, "system", *result.ApprovedBy)
	assert.NotNil(t, result.ApprovedAt)
}

func TestGenerateUnknownStaff(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	_, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "nobody",
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-09",
	})
	require.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestGenerateRequestValidation(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	_, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "staff-1",
		PeriodStart: "2025-06-09",
		PeriodEnd:   "2025-06-02",
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestApproveTransitions(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-02 08:00"), ts(t, "2025-06-02 17:00"))

	generated, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "staff-1",
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-09",
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(context.Background(), generated.ID, "coordinator-1")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "coordinator-1", *approved.ApprovedBy)

	// Approved is terminal.
	_, err = f.svc.Approve(context.Background(), generated.ID, "coordinator-2")
	require.ErrorIs(t, err, timesheet.ErrTimesheetAlreadyProcessed)
	_, err = f.svc.Reject(context.Background(), generated.ID, "coordinator-2", "changed my mind")
	require.ErrorIs(t, err, timesheet.ErrTimesheetAlreadyProcessed)
}

func TestRejectRequiresReason(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-02 08:00"), ts(t, "2025-06-02 17:00"))

	generated, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "staff-1",
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-09",
	})
	require.NoError(t, err)

	_, err = f.svc.Reject(context.Background(), generated.ID, "coordinator-1", "")
	require.ErrorIs(t, err, timesheet.ErrRejectionReasonRequired)

	_, err = f.svc.Reject(context.Background(), generated.ID, "coordinator-1", "   ")
	require.ErrorIs(t, err, timesheet.ErrRejectionReasonRequired)

	rejected, err := f.svc.Reject(context.Background(), generated.ID, "coordinator-1", "hours do not match roster")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "hours do not match roster", *rejected.RejectionReason)
}

func TestApproveMissingTimesheet(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	_, err := f.svc.Approve(context.Background(), "missing", "coordinator-1")
	require.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}

// ghostStaffRepo reports one extra active member that has no backing record,
// which makes that member's generation fail.
type ghostStaffRepo struct {
	*memory.StaffRepository
}

func (r *ghostStaffRepo) ListActive(ctx context.Context) ([]staff.Staff, error) {
	members, err := r.StaffRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return append(members, staff.Staff{ID: "ghost", Active: true}), nil
}

func TestGenerateWeeklyCollectsFailures(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	f.staff.Put(staff.Staff{ID: "staff-2", FullName: "Avery Kim", Active: true})
	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-02 08:00"), ts(t, "2025-06-02 17:00"))
	f.seedShift(t, "staff-2", nil, ts(t, "2025-06-03 09:00"), ts(t, "2025-06-03 15:00"))

	decomposer := NewDecomposer(f.holidays, time.UTC)
	svc := NewTimesheetService(
		memory.NewTxManager(),
		f.timesheets,
		f.events,
		f.appointments,
		&ghostStaffRepo{f.staff},
		decomposer,
		time.UTC,
	)

	result, err := svc.GenerateWeekly(context.Background(), ts(t, "2025-06-02 00:00"))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-02", result.WeekStart)
	assert.Equal(t, "2025-06-09", result.WeekEnd)
	assert.Len(t, result.Generated, 2, "real staff members still generate")
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "ghost", result.Failures[0].StaffID)
}

func TestListFiltersByStatus(t *testing.T) {
	t.Parallel()
	f := newTimesheetFixture(t)

	f.seedShift(t, "staff-1", nil, ts(t, "2025-06-02 08:00"), ts(t, "2025-06-02 17:00"))

	generated, err := f.svc.Generate(context.Background(), timesheet.GenerateRequest{
		StaffID:     "staff-1",
		PeriodStart: "2025-06-02",
		PeriodEnd:   "2025-06-09",
	})
	require.NoError(t, err)

	pending := timesheet.StatusPendingApproval
	listed, err := f.svc.List(context.Background(), timesheet.Filter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, generated.ID, listed[0].ID)

	approvedStatus := timesheet.StatusApproved
	listed, err = f.svc.List(context.Background(), timesheet.Filter{Status: &approvedStatus})
	require.NoError(t, err)
	assert.Empty(t, listed)
}
