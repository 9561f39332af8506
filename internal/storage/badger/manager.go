package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/common"
	"github.com/syntoo/nepsebot/internal/interfaces"
)

// Manager owns the Badger connection and the per-entity storage instances.
// All persistence flows through this component; no other code touches the
// underlying store directly.
type Manager struct {
	db          *BadgerDB
	subscribers interfaces.SubscriberStorage
	users       interfaces.UserStorage
	logger      arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:          db,
		subscribers: NewSubscriberStorage(db, logger),
		users:       NewUserStorage(db, logger),
		logger:      logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// SubscriberStorage returns the Subscriber storage interface
func (m *Manager) SubscriberStorage() interfaces.SubscriberStorage {
	return m.subscribers
}

// UserStorage returns the User storage interface
func (m *Manager) UserStorage() interfaces.UserStorage {
	return m.users
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
