package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type matchupTeamDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Abbreviation   string `json:"abbreviation"`
	Thumbnail      string `json:"thumbnail,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	Spread         string `json:"spread"`
	Score          *int   `json:"score,omitempty"`
	Record         string `json:"record"`
	SpreadRecord   string `json:"spreadRecord"`
}

type matchupDTO struct {
	GameID     int64          `json:"gameId"`
	WeekNumber int            `json:"weekNumber"`
	StartDate  string         `json:"startDate"`
	StartTime  string         `json:"startTime,omitempty"`
	Final      bool           `json:"final"`
	Home       matchupTeamDTO `json:"home"`
	Away       matchupTeamDTO `json:"away"`
}

func (h *Handler) ListMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchups")
	defer span.End()

	year, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	bookmaker := strings.TrimSpace(r.URL.Query().Get("bookmaker"))
	matchups, err := h.matchupService.ListMatchups(ctx, year, week, bookmaker)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchups failed", "year", year, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchupDTO, 0, len(matchups))
	for _, m := range matchups {
		items = append(items, matchupToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func matchupToDTO(m usecase.Matchup) matchupDTO {
	return matchupDTO{
		GameID:     m.GameID,
		WeekNumber: m.WeekNumber,
		StartDate:  m.StartDate.Format("2006-01-02"),
		StartTime:  m.StartTime,
		Final:      m.Final,
		Home:       matchupTeamToDTO(m.Home),
		Away:       matchupTeamToDTO(m.Away),
	}
}

func matchupTeamToDTO(t usecase.MatchupTeam) matchupTeamDTO {
	return matchupTeamDTO{
		ID:             t.Team.ID,
		Name:           t.Team.Name,
		City:           t.Team.City,
		Abbreviation:   t.Team.Abbreviation,
		Thumbnail:      t.Team.Thumbnail,
		PrimaryColor:   t.Team.PrimaryColor,
		SecondaryColor: t.Team.SecondaryColor,
		Spread:         odds.FormatLine(t.Spread),
		Score:          t.Score,
		Record:         fmt.Sprintf("%d-%d", t.Wins, t.Losses),
		SpreadRecord:   fmt.Sprintf("%d-%d", t.Covers, t.NotCovers),
	}
}
