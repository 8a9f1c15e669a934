package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.media.GetPresignedPutUrl(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.UploadURLResponse{Key: key, URL: url})
}

func (s *Server) handleDownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		s.writeError(w, r, fmt.Errorf("%w: missing key parameter", common.ErrorValidation))
		return
	}

	url, err := s.media.GetPresignedGetUrl(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.DownloadURLResponse{URL: url})
}
