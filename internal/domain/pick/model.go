package pick

import (
	"errors"
	"fmt"
)

// Status tracks the lifecycle of a user's pick sheet entry.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusSaved     Status = "SAVED"
	StatusSubmitted Status = "SUBMITTED"
	StatusLocked    Status = "LOCKED"
)

// SubmittedThreshold is the pick count at which a sheet counts as fully submitted.
const SubmittedThreshold = 5

var ErrLocked = errors.New("pick is locked")

// Pick is one user's selection against the spread for one game.
type Pick struct {
	ID          int64
	AccountID   int64
	GameID      int64
	TeamID      int64
	Confidence  int
	SpreadValue float64
	Status      Status
}

func (p Pick) Validate() error {
	if p.AccountID <= 0 {
		return fmt.Errorf("pick account id is required")
	}
	if p.GameID <= 0 {
		return fmt.Errorf("pick game id is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("pick team id is required")
	}
	if p.Confidence < 0 || p.Confidence > 5 {
		return fmt.Errorf("pick confidence %d is out of range 0..5", p.Confidence)
	}

	return nil
}

// SheetStatus derives the status of a whole week's sheet from its pick count.
func SheetStatus(count int) Status {
	switch {
	case count == 0:
		return StatusNew
	case count < SubmittedThreshold:
		return StatusSaved
	default:
		return StatusSubmitted
	}
}

// BatchStatus is the status written to every pick of a submitted batch.
func BatchStatus(count int) Status {
	if count >= SubmittedThreshold {
		return StatusSubmitted
	}

	return StatusSaved
}
