package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

func (s *Server) handleListTombstones(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)

	var (
		list []*models.Tombstone
		err  error
	)
	if entityType := r.URL.Query().Get("type"); entityType != "" {
		list, err = s.entities.ListTombstonesByType(r.Context(), userID, entityType)
	} else {
		list, err = s.entities.ListTombstones(r.Context(), userID)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]api.Tombstone, 0, len(list))
	for _, ts := range list {
		out = append(out, api.Tombstone{
			EntityType: ts.EntityType,
			EntityID:   ts.EntityID,
			ProjectID:  ts.ProjectID,
			Timestamp:  ts.DeletedAt,
		})
	}

	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCleanupTombstones(w http.ResponseWriter, r *http.Request) {
	var req api.CleanupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed request body", common.ErrorValidation))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	removed, err := s.entities.CleanupTombstones(r.Context(), userIDFromRequest(r), req.OlderThanDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info(r.Context(), "Tombstone cleanup", "removed", removed, "older_than_days", req.OlderThanDays)
	s.writeJSON(w, r, http.StatusOK, api.CleanupResponse{Removed: int(removed)})
}
