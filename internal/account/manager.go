package account

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mcp-mailstore/internal/config"
	"github.com/brandon/mcp-mailstore/pkg/types"
)

// RemovedListener is called after an account has been removed
type RemovedListener func(account types.Account)

// Manager keeps the configured accounts and announces their removal
type Manager struct {
	mu        sync.RWMutex
	accounts  map[string]types.Account
	listeners []RemovedListener
	logger    *logrus.Logger
}

// NewManager creates an account manager holding the configured accounts
func NewManager(cfg *config.Config, logger *logrus.Logger) (*Manager, error) {
	manager := &Manager{
		accounts: make(map[string]types.Account),
		logger:   logger,
	}

	for i := range cfg.Accounts {
		accCfg := &cfg.Accounts[i]
		if _, err := manager.AddAccount(accCfg.UUID, accCfg.Name); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

// AddAccount registers an account. An empty id gets a fresh UUID.
func (m *Manager) AddAccount(id, name string) (types.Account, error) {
	if id == "" {
		id = uuid.NewString()
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return types.Account{}, fmt.Errorf("invalid account uuid %q: %w", id, err)
	}

	account := types.Account{UUID: parsed.String(), Name: name}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[account.UUID]; exists {
		return types.Account{}, fmt.Errorf("account already exists: %s", account.UUID)
	}
	m.accounts[account.UUID] = account

	m.logger.WithFields(logrus.Fields{
		"account": account.UUID,
		"name":    account.Name,
	}).Debug("Account added")
	return account, nil
}

// GetAccount returns an account by UUID
func (m *Manager) GetAccount(id string) (types.Account, bool) {
	id = canonicalID(id)
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, exists := m.accounts[id]
	return account, exists
}

// ListAccounts returns all accounts sorted by name
func (m *Manager) ListAccounts() []types.Account {
	m.mu.RLock()
	accounts := make([]types.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		accounts = append(accounts, account)
	}
	m.mu.RUnlock()

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Name == accounts[j].Name {
			return accounts[i].UUID < accounts[j].UUID
		}
		return accounts[i].Name < accounts[j].Name
	})
	return accounts
}

// AddAccountRemovedListener subscribes listener to account removals
func (m *Manager) AddAccountRemovedListener(listener func(account types.Account)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// RemoveAccount deletes an account and notifies the listeners.
// It reports false if the account was unknown.
func (m *Manager) RemoveAccount(id string) bool {
	id = canonicalID(id)
	m.mu.Lock()
	account, exists := m.accounts[id]
	if !exists {
		m.mu.Unlock()
		return false
	}
	delete(m.accounts, id)
	listeners := make([]RemovedListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	m.logger.WithField("account", id).Info("Account removed")
	for _, listener := range listeners {
		listener(account)
	}
	return true
}

// canonicalID returns the hyphenated lowercase form of a UUID, or id unchanged if it does not parse
func canonicalID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return parsed.String()
}
