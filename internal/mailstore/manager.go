package mailstore

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/emersion/go-imap"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/brandon/mcp-mailstore/internal/storage"
	"github.com/brandon/mcp-mailstore/pkg/types"
)

// MessageStore is the folder facade of one account's store
type MessageStore interface {
	GetFolder(folderID int64) (*types.FolderDetails, error)
	GetFolders(excludeLocalOnly bool) ([]types.FolderDetails, error)
	GetDisplayFolders(displayMode types.FolderMode, outboxFolderID *int64) ([]types.FolderDetails, error)
	GetFolderID(serverID string) (int64, bool, error)
	GetMessageCount(folderID int64) (int, error)
	GetUnreadMessageCount(folderID int64) (int, error)

	ChangeFolder(serverID, name string, folderType types.FolderType) error
	ChangeFolderFromMailbox(info *imap.MailboxInfo) error
	UpdateFolderSettings(details types.FolderDetails) error
	ModifyFolderSettings(folderID int64, modify func(details *types.FolderDetails) error) (*types.FolderDetails, error)
	SetIncludeInUnifiedInbox(folderID int64, include bool) error
	SetInTopGroup(folderID int64, inTopGroup bool) error
	SetDisplayClass(folderID int64, class types.FolderClass) error
	SetSyncClass(folderID int64, class types.FolderClass) error
	SetNotificationClass(folderID int64, class types.FolderClass) error
	SetPushClass(folderID int64, class types.FolderClass) error
}

// ErrManagerClosed is returned by GetMessageStore after Close
var ErrManagerClosed = errors.New("message store manager is closed")

// Factory builds the store of an account
type Factory interface {
	Create(account types.Account) (MessageStore, error)
}

// FactoryFunc adapts a function to Factory
type FactoryFunc func(account types.Account) (MessageStore, error)

func (f FactoryFunc) Create(account types.Account) (MessageStore, error) {
	return f(account)
}

// NewStorageFactory adapts the SQLite store factory
func NewStorageFactory(factory *storage.MessageStoreFactory) Factory {
	return FactoryFunc(func(account types.Account) (MessageStore, error) {
		store, err := factory.Create(account)
		if err != nil {
			return nil, err
		}
		return store, nil
	})
}

// AccountSource notifies about removed accounts
type AccountSource interface {
	AddAccountRemovedListener(listener func(account types.Account))
}

// Manager caches one MessageStore per account and drops it when the account is removed
type Manager struct {
	factory Factory
	logger  *logrus.Logger

	mu     sync.RWMutex
	stores map[string]MessageStore
	// epochs counts removals per account so a store built across a removal is not cached
	epochs map[string]uint64
	closed bool

	group singleflight.Group
}

// NewManager creates the cache and subscribes it to account removals
func NewManager(accounts AccountSource, factory Factory, logger *logrus.Logger) *Manager {
	m := &Manager{
		factory: factory,
		logger:  logger,
		stores:  make(map[string]MessageStore),
		epochs:  make(map[string]uint64),
	}
	accounts.AddAccountRemovedListener(m.onAccountRemoved)
	return m
}

// GetMessageStore returns the cached store for account, creating it on first use.
// Concurrent first calls for the same account share a single factory call.
// Any accepted spelling of the UUID maps to the same store.
func (m *Manager) GetMessageStore(account types.Account) (MessageStore, error) {
	key, err := accountKey(account)
	if err != nil {
		return nil, err
	}
	account.UUID = key

	if store, ok := m.lookup(key); ok {
		return store, nil
	}

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		if store, ok := m.lookup(key); ok {
			return store, nil
		}

		m.mu.RLock()
		closed := m.closed
		epoch := m.epochs[key]
		m.mu.RUnlock()
		if closed {
			return nil, ErrManagerClosed
		}

		store, err := m.factory.Create(account)
		if err != nil {
			m.logger.WithError(err).WithField("account", key).Error("Failed to create message store")
			return nil, err
		}

		m.mu.Lock()
		if !m.closed && m.epochs[key] == epoch {
			m.stores[key] = store
		}
		m.mu.Unlock()

		return store, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(MessageStore), nil
}

// Close closes every cached store and empties the cache. Stores evicted by
// an account removal are left to the callers still holding them.
func (m *Manager) Close() error {
	m.mu.Lock()
	stores := m.stores
	m.stores = make(map[string]MessageStore)
	m.closed = true
	m.mu.Unlock()

	var errs []error
	for key, store := range stores {
		closer, ok := store.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			m.logger.WithError(err).WithField("account", key).Warn("Failed to close message store")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of cached stores
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stores)
}

func (m *Manager) lookup(accountUUID string) (MessageStore, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	store, ok := m.stores[accountUUID]
	return store, ok
}

func (m *Manager) onAccountRemoved(account types.Account) {
	key, err := accountKey(account)
	if err != nil {
		return
	}

	m.mu.Lock()
	delete(m.stores, key)
	m.epochs[key]++
	m.mu.Unlock()
	m.group.Forget(key)

	m.logger.WithField("account", key).Debug("Message store evicted")
}

// accountKey returns the canonical form of the account UUID
func accountKey(account types.Account) (string, error) {
	id, err := uuid.Parse(account.UUID)
	if err != nil {
		return "", fmt.Errorf("invalid account uuid %q: %w", account.UUID, err)
	}
	return id.String(), nil
}
