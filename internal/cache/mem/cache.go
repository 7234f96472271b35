package mem

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
	"github.com/cartolamix/mixserver/internal/normalize"
)

// Cache indexes the immutable player collection for the lookups the web
// and bot layers do on every request.
type Cache struct {
	mu     sync.RWMutex
	byName map[string]domain.Player
	byID   map[uuid.UUID]domain.Player
}

func New() *Cache {
	return &Cache{
		byName: make(map[string]domain.Player),
		byID:   make(map[uuid.UUID]domain.Player),
	}
}

func (c *Cache) Update(players []domain.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byName = make(map[string]domain.Player, len(players))
	c.byID = make(map[uuid.UUID]domain.Player, len(players))
	for i := range players {
		c.byName[normalize.Name(players[i].Name)] = players[i]
		c.byID[players[i].ID] = players[i]
	}
}

func (c *Cache) GetPlayerByName(name string) (domain.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	player, ok := c.byName[normalize.Name(name)]
	return player, ok
}

func (c *Cache) GetPlayerByID(id uuid.UUID) (domain.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	player, ok := c.byID[id]
	return player, ok
}
