package odds

import (
	"fmt"
	"strings"
)

// Spread is one bookmaker's line on one side of a game.
type Spread struct {
	ID        int64
	GameID    int64
	TeamID    int64
	Bookmaker string
	Value     float64
}

func (s Spread) Validate() error {
	if s.GameID <= 0 {
		return fmt.Errorf("spread game id is required")
	}
	if s.TeamID <= 0 {
		return fmt.Errorf("spread team id is required")
	}
	if strings.TrimSpace(s.Bookmaker) == "" {
		return fmt.Errorf("spread bookmaker is required")
	}

	return nil
}

// FormatLine renders a spread value with one decimal and no trailing
// ".0", so -3.0 becomes "-3" while -3.5 stays "-3.5".
func FormatLine(value float64) string {
	out := fmt.Sprintf("%.1f", value)
	out = strings.TrimSuffix(out, "0")
	out = strings.TrimSuffix(out, ".")
	if out == "-0" || out == "" {
		return "0"
	}

	return out
}
