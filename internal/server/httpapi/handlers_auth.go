package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed request body", common.ErrorValidation))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	user, err := s.users.Register(r.Context(), req.Login, []byte(req.Password))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info(r.Context(), "Registered", "username", req.Login, "user_id", user.ID)
	s.writeJSON(w, r, http.StatusCreated, nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed request body", common.ErrorValidation))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	pair, err := s.users.Login(r.Context(), req.Login, []byte(req.Password))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info(r.Context(), "Logged in", "username", req.Login)
	s.writeJSON(w, r, http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed request body", common.ErrorValidation))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
