package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type Handler struct {
	matchupService   *usecase.MatchupService
	pickService      *usecase.PickService
	resultsService   *usecase.ResultsService
	standingsService *usecase.StandingsService
	ingestionService *usecase.IngestionService
	oddsSyncService  *usecase.OddsSyncService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	matchupService *usecase.MatchupService,
	pickService *usecase.PickService,
	resultsService *usecase.ResultsService,
	standingsService *usecase.StandingsService,
	ingestionService *usecase.IngestionService,
	oddsSyncService *usecase.OddsSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchupService:   matchupService,
		pickService:      pickService,
		resultsService:   resultsService,
		standingsService: standingsService,
		ingestionService: ingestionService,
		oddsSyncService:  oddsSyncService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
