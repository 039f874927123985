package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type submitPicksRequest struct {
	Picks []pickEntryRequest `json:"picks" validate:"required,min=1,max=5,dive"`
}

type pickEntryRequest struct {
	GameID     int64 `json:"gameId" validate:"required,gt=0"`
	TeamID     int64 `json:"teamId" validate:"required,gt=0"`
	Confidence int   `json:"confidence" validate:"gte=0,lte=5"`
}

type pickDTO struct {
	GameID     int64  `json:"gameId"`
	TeamID     int64  `json:"teamId"`
	Confidence int    `json:"confidence"`
	Spread     string `json:"spread"`
	Status     string `json:"status"`
}

type pickSheetDTO struct {
	WeekNumber int       `json:"weekNumber"`
	Status     string    `json:"status"`
	Picks      []pickDTO `json:"picks"`
}

func (h *Handler) SubmitWeekPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitWeekPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	year, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPicksRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.PickEntry, 0, len(req.Picks))
	for _, item := range req.Picks {
		entries = append(entries, usecase.PickEntry{
			GameID:     item.GameID,
			TeamID:     item.TeamID,
			Confidence: item.Confidence,
		})
	}

	sheet, err := h.pickService.SubmitPicks(ctx, principal, year, week, entries)
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed",
			"username", principal.Username,
			"year", year,
			"week", week,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickSheetToDTO(sheet))
}

func (h *Handler) GetWeekPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	year, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sheet, err := h.pickService.GetWeekPicks(ctx, principal, year, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks failed",
			"username", principal.Username,
			"year", year,
			"week", week,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickSheetToDTO(sheet))
}

func pickSheetToDTO(sheet usecase.PickSheet) pickSheetDTO {
	items := make([]pickDTO, 0, len(sheet.Picks))
	for _, p := range sheet.Picks {
		items = append(items, pickDTO{
			GameID:     p.GameID,
			TeamID:     p.TeamID,
			Confidence: p.Confidence,
			Spread:     odds.FormatLine(p.SpreadValue),
			Status:     string(p.Status),
		})
	}

	return pickSheetDTO{
		WeekNumber: sheet.WeekNumber,
		Status:     string(sheet.Status),
		Picks:      items,
	}
}
