package season

import (
	"fmt"
	"time"
)

// Season is one NFL year.
type Season struct {
	ID   int64
	Year int
}

// Week is a numbered slice of a season's schedule.
type Week struct {
	ID        int64
	SeasonID  int64
	Number    int
	StartDate time.Time
	EndDate   time.Time
}

func (s Season) Validate() error {
	if s.Year < 1920 {
		return fmt.Errorf("season year %d is out of range", s.Year)
	}

	return nil
}

func (w Week) Validate() error {
	if w.SeasonID <= 0 {
		return fmt.Errorf("week season id is required")
	}
	if w.Number <= 0 {
		return fmt.Errorf("week number must be greater than zero")
	}
	if !w.EndDate.IsZero() && w.EndDate.Before(w.StartDate) {
		return fmt.Errorf("week end date precedes start date")
	}

	return nil
}
