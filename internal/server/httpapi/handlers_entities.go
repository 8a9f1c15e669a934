package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

// maxDocumentSize caps entity document bodies. Asset payloads travel through
// presigned URLs, so documents themselves stay small.
const maxDocumentSize = 1 << 20

func (s *Server) handleSaveEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityType, entityID := vars["type"], vars["id"]

	doc, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize+1))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: reading request body: %v", common.ErrorValidation, err))
		return
	}
	if len(doc) > maxDocumentSize {
		s.writeError(w, r, fmt.Errorf("%w: document exceeds %d bytes", common.ErrorValidation, maxDocumentSize))
		return
	}

	applied, err := s.entities.Save(r.Context(), userIDFromRequest(r), entityType, entityID, doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.SaveResponse{Applied: applied})
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	rec, err := s.entities.Get(r.Context(), userIDFromRequest(r), vars["type"], vars["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeRawJSON(w, r, http.StatusOK, rec.Doc)
}

func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	entityType := mux.Vars(r)["type"]
	userID := userIDFromRequest(r)
	q := r.URL.Query()

	var (
		recs []*models.Record
		err  error
	)
	switch {
	case q.Get("project_id") != "":
		recs, err = s.entities.ListByProject(r.Context(), userID, entityType, q.Get("project_id"))
	case q.Get("ids") != "":
		ids := strings.Split(q.Get("ids"), ",")
		recs, err = s.entities.ListByIDs(r.Context(), userID, entityType, ids)
	default:
		recs, err = s.entities.List(r.Context(), userID, entityType)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	docs := make([]json.RawMessage, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, json.RawMessage(rec.Doc))
	}

	s.writeJSON(w, r, http.StatusOK, docs)
}

func (s *Server) handleDeleteEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := s.entities.Delete(r.Context(), userIDFromRequest(r), vars["type"], vars["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusNoContent, nil)
}
