package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldserve/rostering-backend-go/internal/domain/holiday"
	"github.com/fieldserve/rostering-backend-go/internal/pkg/database"
)

type holidayCalendarRepository struct {
	db *database.DB
}

// IsHoliday implements holiday.CalendarRepository.
func (r *holidayCalendarRepository) IsHoliday(ctx context.Context, t time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM public_holidays WHERE holiday_date = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, t.Format("2006-01-02")).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday calendar: %w", err)
	}

	return exists, nil
}

func NewHolidayCalendarRepository(db *database.DB) holiday.CalendarRepository {
	return &holidayCalendarRepository{db: db}
}
