package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error(r.Context(), "Encoding response", "error", err)
	}
}

// writeRawJSON writes a stored document verbatim, without re-encoding.
func (s *Server) writeRawJSON(w http.ResponseWriter, r *http.Request, status int, doc []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(doc); err != nil {
		s.log.Error(r.Context(), "Writing response", "error", err)
	}
}

// writeError maps a service error onto a status code and the uniform error
// envelope. Anything without a sentinel mapping is a 500 and gets logged;
// the envelope then carries no detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := common.ErrorInternal.Error()
	message := ""

	switch {
	case errors.Is(err, common.ErrorNotFound):
		status, code = http.StatusNotFound, common.ErrorNotFound.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		status, code = http.StatusConflict, common.ErrorAlreadyExists.Error()
	case errors.Is(err, common.ErrTokenExpired):
		status, code = http.StatusUnauthorized, common.ErrTokenExpired.Error()
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrInvalidToken):
		status, code = http.StatusUnauthorized, common.ErrorUnauthorized.Error()
	case errors.Is(err, common.ErrorValidation):
		status, code, message = http.StatusBadRequest, common.ErrorValidation.Error(), err.Error()
	default:
		s.log.Error(r.Context(), "Internal error", "error", err)
	}

	s.writeJSON(w, r, status, api.ErrorResponse{Error: code, Message: message})
}
