package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
)

// Terminal reports whether no further status transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// RateCategory is one of the six billing classifications for worked hours.
type RateCategory string

const (
	CategoryWeekday       RateCategory = "weekday"
	CategorySaturday      RateCategory = "saturday"
	CategorySunday        RateCategory = "sunday"
	CategoryPublicHoliday RateCategory = "public_holiday"
	CategoryEvening       RateCategory = "evening"
	CategoryNight         RateCategory = "night"
)

// CategoryHours carries an hour amount per rate category. Decimal arithmetic
// keeps the conservation invariant (buckets sum to the interval duration)
// from drifting.
type CategoryHours struct {
	Weekday       decimal.Decimal
	Saturday      decimal.Decimal
	Sunday        decimal.Decimal
	PublicHoliday decimal.Decimal
	Evening       decimal.Decimal
	Night         decimal.Decimal
}

// Add returns the element-wise sum of c and o.
func (c CategoryHours) Add(o CategoryHours) CategoryHours {
	return CategoryHours{
		Weekday:       c.Weekday.Add(o.Weekday),
		Saturday:      c.Saturday.Add(o.Saturday),
		Sunday:        c.Sunday.Add(o.Sunday),
		PublicHoliday: c.PublicHoliday.Add(o.PublicHoliday),
		Evening:       c.Evening.Add(o.Evening),
		Night:         c.Night.Add(o.Night),
	}
}

// AddTo adds hours to the bucket for the given category.
func (c CategoryHours) AddTo(category RateCategory, hours decimal.Decimal) CategoryHours {
	switch category {
	case CategorySaturday:
		c.Saturday = c.Saturday.Add(hours)
	case CategorySunday:
		c.Sunday = c.Sunday.Add(hours)
	case CategoryPublicHoliday:
		c.PublicHoliday = c.PublicHoliday.Add(hours)
	case CategoryEvening:
		c.Evening = c.Evening.Add(hours)
	case CategoryNight:
		c.Night = c.Night.Add(hours)
	default:
		c.Weekday = c.Weekday.Add(hours)
	}
	return c
}

// Total returns the sum over all six buckets.
func (c CategoryHours) Total() decimal.Decimal {
	return c.Weekday.
		Add(c.Saturday).
		Add(c.Sunday).
		Add(c.PublicHoliday).
		Add(c.Evening).
		Add(c.Night)
}

// Timesheet is one staff member's reconciled hours for a period.
type Timesheet struct {
	ID          string
	StaffID     string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      Status

	Hours      CategoryHours
	TotalHours decimal.Decimal

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string

	// BudgetPostedAt guards the budget poster: non-nil means consumed hours
	// have already been charged against client budgets.
	BudgetPostedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Entries []Entry
}

// Entry is one reconciled clock-in/clock-out pair. Immutable once created;
// entries are written atomically with their timesheet.
type Entry struct {
	ID            string
	TimesheetID   string
	AppointmentID *string
	ClientID      *string
	ServiceType   string
	Date          time.Time
	ClockInTime   time.Time
	ClockOutTime  time.Time

	Hours      CategoryHours
	TotalHours decimal.Decimal

	Notes *string
}
