package httpapi

import (
	"net/http"
)

type standingRowDTO struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Points   float64 `json:"points"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Pct      float64 `json:"pct"`
}

type standingsHistoryDTO struct {
	Username string    `json:"username"`
	Weeks    []int     `json:"weeks"`
	Ranks    []int     `json:"ranks"`
	Scores   []float64 `json:"scores"`
	Pcts     []float64 `json:"pcts"`
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	year, err := seasonYearFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	throughWeek, err := optionalIntQuery(r, "through_week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.standingsService.Standings(ctx, year, throughWeek)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "year", year, "through_week", throughWeek, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowDTO{
			Rank:     row.Rank,
			Username: row.Username,
			Points:   row.Points,
			Correct:  row.Correct,
			Total:    row.Total,
			Pct:      row.Pct,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListStandingsHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandingsHistory")
	defer span.End()

	year, err := seasonYearFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	throughWeek, err := optionalIntQuery(r, "through_week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	series, err := h.standingsService.StandingsHistory(ctx, year, throughWeek)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings history failed", "year", year, "through_week", throughWeek, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingsHistoryDTO, 0, len(series))
	for _, entry := range series {
		items = append(items, standingsHistoryDTO{
			Username: entry.Username,
			Weeks:    entry.Weeks,
			Ranks:    entry.Ranks,
			Scores:   entry.Scores,
			Pcts:     entry.Pcts,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
