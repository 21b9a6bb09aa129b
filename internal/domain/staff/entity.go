package staff

import "time"

type Staff struct {
	ID        string
	FullName  string
	Email     *string
	Phone     *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
