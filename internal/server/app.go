// Package server initializes and runs the main application server.
// It connects to PostgreSQL, applies schema migrations, assembles the
// services and starts the HTTP API together with the websocket change feed.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"github.com/dmitrijs2005/storykeeper/internal/server/config"
	"github.com/dmitrijs2005/storykeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/storykeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storykeeper/internal/server/services"
	"github.com/dmitrijs2005/storykeeper/internal/server/ws"
)

// tokenCleanupInterval is how often expired refresh tokens are purged.
const tokenCleanupInterval = 1 * time.Hour

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	hub           *ws.Manager
	userService   *services.UserService
	entityService *services.EntityService
	mediaService  *services.MediaService
}

func NewApp(c *config.Config) (*App, error) {

	s := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(s)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hub := ws.NewManager(logger)

	us := services.NewUserService(db, m, c)
	es := services.NewEntityService(db, m, hub)
	ms := services.NewMediaService(c)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		hub:           hub,
		userService:   us,
		entityService: es,
		mediaService:  ms,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.userService, app.entityService, app.mediaService, app.hub, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startTokenJanitor periodically removes expired refresh tokens so the
// table does not grow without bound.
func (app *App) startTokenJanitor(ctx context.Context) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.userService.DeleteExpiredRefreshTokens(ctx)
			if err != nil {
				app.logger.Warn(ctx, "Refresh token cleanup failed", "error", err.Error())
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "Removed expired refresh tokens", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	go app.hub.Run(ctx)
	go app.startTokenJanitor(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
