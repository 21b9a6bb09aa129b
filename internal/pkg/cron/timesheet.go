package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/timesheet"
)

type TimesheetJobs struct {
	timesheetSvc timesheet.TimesheetService
	loc          *time.Location
}

func NewTimesheetJobs(timesheetSvc timesheet.TimesheetService, loc *time.Location) *TimesheetJobs {
	return &TimesheetJobs{
		timesheetSvc: timesheetSvc,
		loc:          loc,
	}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("weekly_timesheet_generation", 1*time.Hour, j.GenerateWeeklyTimesheets)
}

// GenerateWeeklyTimesheets reconciles the previous week for all active staff.
// The job ticks hourly but only fires in the 01:00 hour on Mondays, once the
// week being reconciled is closed.
func (j *TimesheetJobs) GenerateWeeklyTimesheets(ctx context.Context) error {
	nowLocal := time.Now().In(j.loc)
	if nowLocal.Weekday() != time.Monday || nowLocal.Hour() != 1 {
		return nil
	}

	// Previous Monday 00:00 local.
	weekStart := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, j.loc).AddDate(0, 0, -7)

	slog.Info("Cron: Starting weekly timesheet generation", "week_start", weekStart.Format("2006-01-02"))

	result, err := j.timesheetSvc.GenerateWeekly(ctx, weekStart)
	if err != nil {
		return err
	}

	if len(result.Failures) > 0 {
		slog.Warn("Cron: Weekly timesheet generation finished with failures",
			"generated", len(result.Generated), "failures", len(result.Failures))
		for _, f := range result.Failures {
			slog.Error("Cron: Timesheet generation failed for staff", "staff_id", f.StaffID, "error", f.Error)
		}
		return nil
	}

	slog.Info("Cron: Weekly timesheet generation completed", "generated", len(result.Generated))
	return nil
}
