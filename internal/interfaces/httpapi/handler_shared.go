package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func decodeJSONRequest(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func seasonYearFromPath(r *http.Request) (int, error) {
	raw := r.PathValue("year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid season year %q", usecase.ErrInvalidInput, raw)
	}

	return year, nil
}

func seasonWeekFromPath(r *http.Request) (int, int, error) {
	year, err := seasonYearFromPath(r)
	if err != nil {
		return 0, 0, err
	}

	raw := r.PathValue("week")
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid week number %q", usecase.ErrInvalidInput, raw)
	}

	return year, week, nil
}

// optionalIntQuery reads an integer query parameter, returning 0 when
// it is absent.
func optionalIntQuery(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value %q", usecase.ErrInvalidInput, key, raw)
	}

	return value, nil
}
