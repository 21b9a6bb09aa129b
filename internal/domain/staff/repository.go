package staff

import "context"

// StaffRepository is a read-only collaborator: staff records are managed by
// the external record-management screens.
type StaffRepository interface {
	// GetByID retrieves a staff member, returning ErrStaffNotFound when absent.
	GetByID(ctx context.Context, id string) (Staff, error)

	// GetByIDForUpdate is GetByID with the staff row locked for the duration
	// of the surrounding transaction. Clock operations serialize on this
	// lock: an open-shift check alone locks nothing when no open shift
	// exists, so two first clock-ins could otherwise both pass it.
	GetByIDForUpdate(ctx context.Context, id string) (Staff, error)

	// ListActive returns all staff members eligible for timesheet generation.
	ListActive(ctx context.Context) ([]Staff, error)
}
