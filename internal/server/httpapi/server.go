// Package httpapi is the HTTP transport of the StoryKeeper backend: JSON
// endpoints for accounts, entity documents, the deletion ledger and
// presigned media URLs, plus a websocket change feed.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"github.com/dmitrijs2005/storykeeper/internal/server/models"
	"github.com/dmitrijs2005/storykeeper/internal/server/services"
	"github.com/dmitrijs2005/storykeeper/internal/server/ws"
)

type userService interface {
	Register(ctx context.Context, username string, password []byte) (*models.User, error)
	Login(ctx context.Context, userName string, password []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type entityService interface {
	Save(ctx context.Context, userID, entityType, entityID string, doc []byte) (bool, error)
	Get(ctx context.Context, userID, entityType, entityID string) (*models.Record, error)
	List(ctx context.Context, userID, entityType string) ([]*models.Record, error)
	ListByProject(ctx context.Context, userID, entityType, projectID string) ([]*models.Record, error)
	ListByIDs(ctx context.Context, userID, entityType string, ids []string) ([]*models.Record, error)
	Delete(ctx context.Context, userID, entityType, entityID string) error
	ListTombstones(ctx context.Context, userID string) ([]*models.Tombstone, error)
	ListTombstonesByType(ctx context.Context, userID, entityType string) ([]*models.Tombstone, error)
	CleanupTombstones(ctx context.Context, userID string, olderThanDays int) (int64, error)
}

type mediaService interface {
	GetPresignedPutUrl(ctx context.Context) (string, string, error)
	GetPresignedGetUrl(ctx context.Context, key string) (string, error)
}

// Server serves the StoryKeeper API over HTTP.
type Server struct {
	address   string
	log       logging.Logger
	users     userService
	entities  entityService
	media     mediaService
	hub       *ws.Manager
	jwtSecret string
	validate  *validator.Validate
	upgrader  websocket.Upgrader
}

func NewServer(address string, log logging.Logger, users userService, entities entityService,
	media mediaService, hub *ws.Manager, secretKey string) *Server {
	return &Server{
		address:   address,
		log:       log.With("module", "httpapi"),
		users:     users,
		entities:  entities,
		media:     media,
		hub:       hub,
		jwtSecret: secretKey,
		validate:  validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the route table. Public routes are registered before the
// protected subrouter so they match without a token.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh", s.handleRefresh).Methods(http.MethodPost)

	r.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(s.requireAuth)

	protected.HandleFunc("/entities/{type}", s.handleListEntities).Methods(http.MethodGet)
	protected.HandleFunc("/entities/{type}/{id}", s.handleGetEntity).Methods(http.MethodGet)
	protected.HandleFunc("/entities/{type}/{id}", s.handleSaveEntity).Methods(http.MethodPut)
	protected.HandleFunc("/entities/{type}/{id}", s.handleDeleteEntity).Methods(http.MethodDelete)

	protected.HandleFunc("/tombstones", s.handleListTombstones).Methods(http.MethodGet)
	protected.HandleFunc("/tombstones/cleanup", s.handleCleanupTombstones).Methods(http.MethodPost)

	protected.HandleFunc("/media/upload-url", s.handleUploadURL).Methods(http.MethodGet)
	protected.HandleFunc("/media/download-url", s.handleDownloadURL).Methods(http.MethodGet)

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error(ctx, "Shutdown error", "error", err)
		}
	}()

	s.log.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
