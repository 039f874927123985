package team

import "fmt"

// Team is one NFL franchise.
type Team struct {
	ID             int64
	Name           string
	City           string
	Abbreviation   string
	Thumbnail      string
	PrimaryColor   string
	SecondaryColor string
}

// FullName is the display name odds providers use, e.g. "Buffalo Bills".
func (t Team) FullName() string {
	return t.City + " " + t.Name
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.City == "" {
		return fmt.Errorf("team city is required")
	}
	if t.Abbreviation == "" {
		return fmt.Errorf("team abbreviation is required")
	}

	return nil
}
