package game

import (
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

// Game is one scheduled NFL matchup.
type Game struct {
	ID         int64
	SeasonID   int64
	WeekID     int64
	HomeTeamID int64
	AwayTeamID int64
	StartDate  time.Time
	StartTime  string
}

// Result holds the final score of a concluded game.
type Result struct {
	GameID    int64
	HomeScore int
	AwayScore int
}

// TeamResult is one side's view of a concluded game, used for
// win/loss and against-the-spread records.
type TeamResult struct {
	GameID        int64
	SeasonID      int64
	TeamID        int64
	Home          bool
	Win           bool
	Cover         bool
	PointsScored  int
	PointsAllowed int
}

func (g Game) Validate() error {
	if g.SeasonID <= 0 {
		return fmt.Errorf("game season id is required")
	}
	if g.WeekID <= 0 {
		return fmt.Errorf("game week id is required")
	}
	if g.HomeTeamID <= 0 || g.AwayTeamID <= 0 {
		return fmt.Errorf("game team ids are required")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return fmt.Errorf("game teams must differ")
	}
	if g.StartDate.IsZero() {
		return fmt.Errorf("game start date is required")
	}

	return nil
}

// Includes reports whether the given team plays in this game.
func (g Game) Includes(teamID int64) bool {
	return teamID == g.HomeTeamID || teamID == g.AwayTeamID
}

// MatchupRow is one game joined with both teams, the posted spread for
// a single bookmaker, and the final score when present.
type MatchupRow struct {
	GameID     int64
	WeekNumber int
	StartDate  time.Time
	StartTime  string
	Home       team.Team
	Away       team.Team
	HomeSpread float64
	AwaySpread float64
	HomeScore  *int
	AwayScore  *int
}

// TeamRecord aggregates one team's season so far.
type TeamRecord struct {
	TeamID int64
	Games  int
	Wins   int
	Covers int
}

func (r Result) Validate() error {
	if r.GameID <= 0 {
		return fmt.Errorf("result game id is required")
	}
	if r.HomeScore < 0 || r.AwayScore < 0 {
		return fmt.Errorf("result scores must not be negative")
	}

	return nil
}
