package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/contract"
)

// retryAfterSeconds is advertised on contention responses.
const retryAfterSeconds = "1"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code contract.ErrorCode) int {
	switch code {
	case contract.ErrCodeValidation:
		return http.StatusBadRequest
	case contract.ErrCodeNotStakeholder:
		return http.StatusForbidden
	case contract.ErrCodeNotFound:
		return http.StatusNotFound
	case contract.ErrCodeContention:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := contract.NewErrorResponse(err)
	status := StatusFor(body.Code)
	if body.Code == contract.ErrCodeContention {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request_failed",
			"path", r.URL.Path,
			"code", body.Code,
			"error", err.Error(),
			"request_id", RequestID(r.Context()),
		)
	}
	writeJSON(w, status, body)
}

// useCaseID reads the {id} path value; anything but a positive integer is
// a validation error.
func useCaseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, batch.Validationf(-1, "invalid use case id %q", raw)
	}
	return id, nil
}

// decode reads a JSON body into dst. Unknown fields are tolerated; a
// missing, malformed or oversized body is a validation error.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return batch.Validationf(-1, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return batch.Validationf(-1, "decoding request body: %v", err)
	}
	return nil
}
