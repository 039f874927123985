package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/team"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const scheduleDateLayout = "2006-01-02"

type uploadTeamsRequest struct {
	Teams []teamUploadItem `json:"teams" validate:"required,min=1,dive"`
}

type teamUploadItem struct {
	Name           string `json:"name" validate:"required"`
	City           string `json:"city" validate:"required"`
	Abbreviation   string `json:"abbreviation" validate:"required,max=4"`
	Thumbnail      string `json:"thumbnail"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

type uploadScheduleRequest struct {
	Year       int                `json:"year" validate:"required,gt=0"`
	WeekNumber int                `json:"weekNumber" validate:"required,gt=0"`
	WeekStart  string             `json:"weekStart" validate:"required"`
	WeekEnd    string             `json:"weekEnd" validate:"required"`
	Games      []scheduleGameItem `json:"games" validate:"required,min=1,dive"`
}

type scheduleGameItem struct {
	HomeTeamID int64  `json:"homeTeamId" validate:"required,gt=0"`
	AwayTeamID int64  `json:"awayTeamId" validate:"required,gt=0"`
	StartDate  string `json:"startDate" validate:"required"`
	StartTime  string `json:"startTime"`
}

type recordResultRequest struct {
	GameID    int64 `json:"gameId" validate:"required,gt=0"`
	HomeScore int   `json:"homeScore" validate:"gte=0"`
	AwayScore int   `json:"awayScore" validate:"gte=0"`
}

type refreshOddsRequest struct {
	Year       int `json:"year" validate:"required,gt=0"`
	WeekNumber int `json:"weekNumber" validate:"required,gt=0"`
}

type oddsSyncReportDTO struct {
	EventsSeen      int `json:"eventsSeen"`
	EventsMatched   int `json:"eventsMatched"`
	SpreadsUpserted int `json:"spreadsUpserted"`
}

func (h *Handler) RunUploadTeamsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunUploadTeamsJob")
	defer span.End()

	var req uploadTeamsRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]team.Team, 0, len(req.Teams))
	for _, item := range req.Teams {
		items = append(items, team.Team{
			Name:           item.Name,
			City:           item.City,
			Abbreviation:   item.Abbreviation,
			Thumbnail:      item.Thumbnail,
			PrimaryColor:   item.PrimaryColor,
			SecondaryColor: item.SecondaryColor,
		})
	}

	if err := h.ingestionService.UpsertTeams(ctx, items); err != nil {
		h.logger.WarnContext(ctx, "upload teams job failed", "count", len(items), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"teams": len(items)})
}

func (h *Handler) RunUploadScheduleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunUploadScheduleJob")
	defer span.End()

	var req uploadScheduleRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := scheduleRequestToInput(req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.ingestionService.UpsertSchedule(ctx, input); err != nil {
		h.logger.WarnContext(ctx, "upload schedule job failed",
			"year", req.Year,
			"week", req.WeekNumber,
			"games", len(req.Games),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"games": len(req.Games)})
}

func (h *Handler) RunRecordResultJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecordResultJob")
	defer span.End()

	var req recordResultRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.ingestionService.RecordResult(ctx, req.GameID, req.HomeScore, req.AwayScore); err != nil {
		h.logger.WarnContext(ctx, "record result job failed", "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"gameId": req.GameID})
}

func (h *Handler) RunRefreshOddsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshOddsJob")
	defer span.End()

	var req refreshOddsRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.oddsSyncService.RefreshWeek(ctx, req.Year, req.WeekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh odds job failed", "year", req.Year, "week", req.WeekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, oddsSyncReportDTO{
		EventsSeen:      report.EventsSeen,
		EventsMatched:   report.EventsMatched,
		SpreadsUpserted: report.SpreadsUpserted,
	})
}

func scheduleRequestToInput(req uploadScheduleRequest) (usecase.ScheduleInput, error) {
	weekStart, err := time.Parse(scheduleDateLayout, req.WeekStart)
	if err != nil {
		return usecase.ScheduleInput{}, fmt.Errorf("%w: invalid weekStart %q", usecase.ErrInvalidInput, req.WeekStart)
	}
	weekEnd, err := time.Parse(scheduleDateLayout, req.WeekEnd)
	if err != nil {
		return usecase.ScheduleInput{}, fmt.Errorf("%w: invalid weekEnd %q", usecase.ErrInvalidInput, req.WeekEnd)
	}

	games := make([]usecase.ScheduleGameInput, 0, len(req.Games))
	for _, item := range req.Games {
		startDate, err := time.Parse(scheduleDateLayout, item.StartDate)
		if err != nil {
			return usecase.ScheduleInput{}, fmt.Errorf("%w: invalid startDate %q", usecase.ErrInvalidInput, item.StartDate)
		}
		games = append(games, usecase.ScheduleGameInput{
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			StartDate:  startDate,
			StartTime:  item.StartTime,
		})
	}

	return usecase.ScheduleInput{
		Year:       req.Year,
		WeekNumber: req.WeekNumber,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		Games:      games,
	}, nil
}
