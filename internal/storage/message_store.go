package storage

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mcp-mailstore/pkg/types"
)

// MessageStore is the persisted store of one account
type MessageStore struct {
	*RetrieveFolderOperations
	*UpdateFolderOperations

	account types.Account
	db      *LockableDatabase
}

// NewMessageStore composes the folder operations over db
func NewMessageStore(account types.Account, db *LockableDatabase) *MessageStore {
	return &MessageStore{
		RetrieveFolderOperations: NewRetrieveFolderOperations(db),
		UpdateFolderOperations:   NewUpdateFolderOperations(db),
		account:                  account,
		db:                       db,
	}
}

// Account returns the account the store belongs to
func (s *MessageStore) Account() types.Account {
	return s.account
}

// Close closes the underlying database
func (s *MessageStore) Close() error {
	return s.db.Close()
}

// MessageStoreFactory opens one SQLite file per account below a base directory
type MessageStoreFactory struct {
	baseDir string
	logger  *logrus.Logger
}

// NewMessageStoreFactory creates a factory storing databases in baseDir
func NewMessageStoreFactory(baseDir string, logger *logrus.Logger) *MessageStoreFactory {
	return &MessageStoreFactory{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Create opens the store for account
func (f *MessageStoreFactory) Create(account types.Account) (*MessageStore, error) {
	id, err := uuid.Parse(account.UUID)
	if err != nil {
		return nil, fmt.Errorf("invalid account uuid %q: %w", account.UUID, err)
	}

	dbPath := filepath.Join(f.baseDir, id.String()+".db")
	db, err := OpenLockableDatabase(dbPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store for account %s: %w", account.UUID, err)
	}

	f.logger.WithFields(logrus.Fields{
		"account": account.UUID,
		"path":    dbPath,
	}).Info("Message store created")
	return NewMessageStore(account, db), nil
}
