package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/client/config"
	"github.com/dmitrijs2005/storykeeper/internal/client/remote"
	"github.com/dmitrijs2005/storykeeper/internal/client/repositories"
	"github.com/dmitrijs2005/storykeeper/internal/client/services"
	"github.com/dmitrijs2005/storykeeper/internal/filex"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

// Mode reflects backend reachability as seen by the app.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App holds the console state. The auth service and the remote client exist
// for the whole process lifetime; the story service is bound to a user
// workspace and is only set between login and logout.
type App struct {
	config *config.Config
	client *remote.Client
	auth   services.AuthService
	story  *services.StoryService
	log    logging.Logger

	userName       string
	currentProject string
	Mode           Mode
	reader         *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	if err := filex.EnsureDir(c.DataDir); err != nil {
		log.Printf("error preparing data dir: %s", err.Error())
		return nil, err
	}

	client := remote.NewClient(c.ServerEndpointAddr)

	return &App{
		config: c,
		client: client,
		auth:   services.NewAuthService(client),
		log:    logger,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.story != nil
}

func (a *App) hasProject() bool {
	return a.currentProject != ""
}

// openWorkspace binds the app to one user's local workspace. Everything the
// user owns lives under {DataDir}/{userName}.
func (a *App) openWorkspace(userName string) error {
	repos, err := repositories.NewManager(a.config.DataDir, userName, a.client, a.log)
	if err != nil {
		return err
	}
	sync := services.NewSyncService(repos, a.client, a.log)
	a.story = services.NewStoryService(repos, sync, a.client, a.log)
	a.userName = userName
	return nil
}

func (a *App) closeWorkspace() {
	a.story = nil
	a.userName = ""
	a.currentProject = ""
}

// StartOnlineStatusWatcher pings the backend on the given interval and keeps
// App.Mode current. Coming back online triggers a background sync pass so
// offline edits are pushed without waiting for a manual sync.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
					if a.isLoggedIn() {
						go a.syncInBackground(ctx)
					}
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) syncInBackground(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := a.story.Sync(sctx); err != nil {
		log.Printf("Background sync failed: %s", err.Error())
	}
}
