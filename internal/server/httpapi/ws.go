package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/dmitrijs2005/storykeeper/internal/server/auth"
	"github.com/dmitrijs2005/storykeeper/internal/server/ws"
)

// handleWebsocket upgrades the connection and subscribes it to the user's
// change feed. The token arrives as a query parameter or a bearer header;
// browser websocket clients cannot set headers, so both are accepted.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "change feed not available", http.StatusServiceUnavailable)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		if header := r.Header.Get(common.AuthHeaderName); strings.HasPrefix(header, common.AuthSchemePrefix) {
			token = strings.TrimPrefix(header, common.AuthSchemePrefix)
		}
	}
	if token == "" {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn(r.Context(), "Websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(uuid.New().String(), userID, conn, s.hub)
	s.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
