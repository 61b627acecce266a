package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/abhisek/simulado/internal/scoring"
	"github.com/abhisek/simulado/internal/session"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// respondErr maps domain errors to status codes.
func respondErr(w http.ResponseWriter, err error) {
	var pf *questionbank.ProviderFailure
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, session.ErrUnknownQuestion):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, exam.ErrConfigurationInvalid):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, session.ErrInvalidOption), errors.Is(err, session.ErrOutOfRange):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrFinished), errors.Is(err, session.ErrNotFinished),
		errors.Is(err, scoring.ErrNothingToRetry), errors.Is(err, questionbank.ErrGenerationInFlight):
		respondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &pf):
		respondError(w, http.StatusBadGateway, pf.UserMessage())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
