package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
)

const maxBodySize = 64 << 20

type errorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// the status is already sent, nothing useful can be done on failure
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps application errors onto HTTP statuses.
func respondError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrInvalidArgument), errors.Is(err, apperror.ErrUnknownGameType):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrAlreadyExists):
		status = http.StatusConflict
	}

	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		detail = http.StatusText(status)
	}

	respondJSON(w, status, errorResponse{Detail: detail})
}

func decodeBody(r *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: malformed body: %w", apperror.ErrInvalidArgument, err)
	}

	return nil
}

func requiredQuery(r *http.Request, name string) (string, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", fmt.Errorf("%w: query parameter %s is required", apperror.ErrInvalidArgument, name)
	}

	return value, nil
}

func intQuery(r *http.Request, name string) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0, nil
	}

	number, err := strconv.Atoi(value)
	if err != nil || number < 0 {
		return 0, fmt.Errorf("%w: query parameter %s must be a non-negative integer", apperror.ErrInvalidArgument, name)
	}

	return number, nil
}

func boolQuery(r *http.Request, name string) (bool, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return false, nil
	}

	flag, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: query parameter %s must be a boolean", apperror.ErrInvalidArgument, name)
	}

	return flag, nil
}

// paging reads skip and limit.
func paging(r *http.Request) (int, int, error) {
	skip, err := intQuery(r, "skip")
	if err != nil {
		return 0, 0, err
	}

	limit, err := intQuery(r, "limit")
	if err != nil {
		return 0, 0, err
	}

	return skip, limit, nil
}
