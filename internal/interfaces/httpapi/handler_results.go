package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type pickResultDTO struct {
	GameID        int64   `json:"gameId"`
	PickedTeamID  int64   `json:"pickedTeamId"`
	PickedTeam    string  `json:"pickedTeam"`
	Opponent      string  `json:"opponent"`
	Confidence    int     `json:"confidence"`
	Spread        string  `json:"spread"`
	PickedScore   *int    `json:"pickedScore,omitempty"`
	OpponentScore *int    `json:"opponentScore,omitempty"`
	Outcome       string  `json:"outcome"`
	Points        float64 `json:"points"`
}

type userWeekResultDTO struct {
	Rank     int             `json:"rank"`
	Username string          `json:"username"`
	Points   float64         `json:"points"`
	Correct  int             `json:"correct"`
	Total    int             `json:"total"`
	Picks    []pickResultDTO `json:"picks"`
}

func (h *Handler) ListWeekResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekResults")
	defer span.End()

	year, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	results, err := h.resultsService.WeekResults(ctx, year, week, username)
	if err != nil {
		h.logger.WarnContext(ctx, "list week results failed", "year", year, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]userWeekResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, userWeekResultToDTO(result))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSeasonResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonResults")
	defer span.End()

	year, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	results, err := h.resultsService.SeasonResults(ctx, year, week, username)
	if err != nil {
		h.logger.WarnContext(ctx, "list season results failed", "year", year, "throughWeek", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]userWeekResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, userWeekResultToDTO(result))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func userWeekResultToDTO(result usecase.UserWeekResult) userWeekResultDTO {
	picks := make([]pickResultDTO, 0, len(result.Picks))
	for _, p := range result.Picks {
		picks = append(picks, pickResultDTO{
			GameID:        p.GameID,
			PickedTeamID:  p.PickedTeamID,
			PickedTeam:    p.PickedTeam,
			Opponent:      p.Opponent,
			Confidence:    p.Confidence,
			Spread:        odds.FormatLine(p.SpreadValue),
			PickedScore:   p.PickedScore,
			OpponentScore: p.OpponentScore,
			Outcome:       string(p.Outcome),
			Points:        p.Points,
		})
	}

	return userWeekResultDTO{
		Rank:     result.Rank,
		Username: result.Username,
		Points:   result.Points,
		Correct:  result.Correct,
		Total:    result.Total,
		Picks:    picks,
	}
}
