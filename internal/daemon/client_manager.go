package daemon

import (
	"sync"

	"github.com/mark3labs/mcp-go/client"
)

// ClientManager holds active MCP client connections for the profile the
// daemon is serving. It is safe for concurrent use by multiple goroutines.
type ClientManager struct {
	mu      sync.RWMutex
	clients map[string]client.MCPClient
}

// NewClientManager creates an empty, concurrency-safe ClientManager.
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[string]client.MCPClient),
	}
}

// Add registers a client by server name.
// This method is safe for concurrent use.
func (cm *ClientManager) Add(name string, c client.MCPClient) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.clients[name] = c
}

// Client returns the client for the given server name.
// It returns a boolean to indicate whether the client was found.
// This method is safe for concurrent use.
func (cm *ClientManager) Client(name string) (client.MCPClient, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	c, ok := cm.clients[name]
	return c, ok
}

// List returns all known server names.
// This method is safe for concurrent use.
func (cm *ClientManager) List() []string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	names := make([]string, 0, len(cm.clients))
	for name := range cm.clients {
		names = append(names, name)
	}
	return names
}

// Remove deletes the client by server name.
// This method is safe for concurrent use.
func (cm *ClientManager) Remove(name string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.clients, name)
}
