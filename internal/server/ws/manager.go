// Package ws pushes change events to a user's connected devices over
// websockets. The feed is one-way: devices hold a connection open and run a
// sync pass whenever an event for their account arrives, instead of polling.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

const maxConnPerUser = 8

// Manager tracks connected clients per user and fans change events out to
// them. It satisfies the entity service's Notifier.
type Manager struct {
	clients      map[string]*Client
	userIndex    map[string]map[string]bool
	clientsMutex sync.RWMutex

	Register   chan *Client
	Unregister chan *Client

	log logging.Logger
}

func NewManager(log logging.Logger) *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		userIndex:  make(map[string]map[string]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		log:        log.With("module", "ws"),
	}
}

// Run processes registrations until the context is cancelled. Meant to run
// as a goroutine for the lifetime of the server.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case client := <-m.Register:
			m.registerClient(ctx, client)
		case client := <-m.Unregister:
			m.unregisterClient(ctx, client)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) registerClient(ctx context.Context, client *Client) {
	m.clientsMutex.Lock()
	defer m.clientsMutex.Unlock()

	if m.userIndex[client.UserID] == nil {
		m.userIndex[client.UserID] = make(map[string]bool)
	}

	if len(m.userIndex[client.UserID]) >= maxConnPerUser {
		m.log.Warn(ctx, "Connection limit reached", "user_id", client.UserID)
		close(client.Send)
		return
	}

	m.clients[client.ID] = client
	m.userIndex[client.UserID][client.ID] = true

	m.log.Info(ctx, "Client connected", "client_id", client.ID, "user_id", client.UserID)
}

func (m *Manager) unregisterClient(ctx context.Context, client *Client) {
	m.clientsMutex.Lock()
	defer m.clientsMutex.Unlock()

	if _, ok := m.clients[client.ID]; !ok {
		return
	}

	delete(m.clients, client.ID)
	delete(m.userIndex[client.UserID], client.ID)
	if len(m.userIndex[client.UserID]) == 0 {
		delete(m.userIndex, client.UserID)
	}

	close(client.Send)
	m.log.Info(ctx, "Client disconnected", "client_id", client.ID)
}

// NotifyChange sends ev to every connection the user holds. A client whose
// send buffer is full misses the event; it converges on its next sync pass
// anyway, so the message is dropped rather than blocking the writer.
func (m *Manager) NotifyChange(userID string, ev api.ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		m.log.Error(context.Background(), "Marshaling change event", "error", err)
		return
	}

	m.clientsMutex.RLock()
	defer m.clientsMutex.RUnlock()

	for clientID := range m.userIndex[userID] {
		client := m.clients[clientID]
		select {
		case client.Send <- payload:
		default:
			m.log.Warn(context.Background(), "Send buffer full, dropping event", "client_id", clientID)
		}
	}
}

// UserConnections reports how many connections the user currently holds.
func (m *Manager) UserConnections(userID string) int {
	m.clientsMutex.RLock()
	defer m.clientsMutex.RUnlock()
	return len(m.userIndex[userID])
}
