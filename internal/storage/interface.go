package storage

import (
	"github.com/cartolamix/mixserver/internal/domain"
)

// TeamStorage is the persistence port for the user's fantasy team. The
// core treats the record as opaque: nothing beyond id matching is
// validated on load.
type TeamStorage interface {
	// Load returns the saved team and whether one exists.
	Load() (domain.SavedTeam, bool, error)
	Save(domain.SavedTeam) error
}
