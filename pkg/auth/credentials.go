package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"vkbackup/pkg/config"
)

// DefaultAccountName is used when no account name is given
const DefaultAccountName = "default"

// Account is a named pair of tokens for the source platform and the storage provider
type Account struct {
	Name         string    `json:"name"`
	VKToken      string    `json:"vk_token,omitempty"`
	DiskToken    string    `json:"disk_token,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// CredentialStore is the interface for storing and retrieving accounts
type CredentialStore interface {
	// Store saves an account, replacing any account with the same name
	Store(account *Account) error

	// Retrieve gets the account with the given name
	Retrieve(name string) (*Account, error)

	// List returns all stored accounts
	List() ([]*Account, error)

	// Delete removes the account with the given name
	Delete(name string) error

	// Exists checks if an account with the given name is stored
	Exists(name string) bool
}

// Manager handles credential storage with fallback between stores
type Manager struct {
	stores []CredentialStore
}

// NewManager creates a manager over the system keychain, an encrypted file in
// the config directory and the environment, tried in that order.
func NewManager() (*Manager, error) {
	var stores []CredentialStore

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "credentials.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager over the given stores in order
func NewManagerWithStores(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the account in the first store that accepts it
func (m *Manager) Store(account *Account) error {
	if account == nil || account.Name == "" {
		return errors.New("account name is required")
	}
	if account.VKToken == "" && account.DiskToken == "" {
		return errors.New("at least one token is required")
	}

	account.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		err := store.Store(account)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store credentials: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Retrieve gets the account from the first store that has it
func (m *Manager) Retrieve(name string) (*Account, error) {
	if name == "" {
		name = DefaultAccountName
	}
	for _, store := range m.stores {
		if account, err := store.Retrieve(name); err == nil && account != nil {
			return account, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCredentialsNotFound, name)
}

// RetrieveDefault returns the default account, or the most recently modified one
func (m *Manager) RetrieveDefault() (*Account, error) {
	if account, err := m.Retrieve(DefaultAccountName); err == nil {
		return account, nil
	}

	accounts, err := m.List()
	if err == nil && len(accounts) > 0 {
		latest := accounts[0]
		for _, a := range accounts[1:] {
			if a.LastModified.After(latest.LastModified) {
				latest = a
			}
		}
		return latest, nil
	}

	return nil, ErrCredentialsNotFound
}

// List returns the accounts of all stores sorted by name.
// An account present in several stores is reported once, newest copy first.
func (m *Manager) List() ([]*Account, error) {
	byName := make(map[string]*Account)

	for _, store := range m.stores {
		accounts, err := store.List()
		if err != nil {
			continue
		}
		for _, account := range accounts {
			if existing, ok := byName[account.Name]; !ok || account.LastModified.After(existing.LastModified) {
				byName[account.Name] = account
			}
		}
	}

	result := make([]*Account, 0, len(byName))
	for _, account := range byName {
		result = append(result, account)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// Delete removes the account from every store holding it
func (m *Manager) Delete(name string) error {
	var deleted bool
	var lastErr error

	for _, store := range m.stores {
		err := store.Delete(name)
		switch {
		case err == nil:
			deleted = true
		case errors.Is(err, ErrCredentialsNotFound), errors.Is(err, ErrStoreUnavailable):
		default:
			lastErr = err
		}
	}

	if deleted {
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("failed to delete credentials: %w", lastErr)
	}
	return fmt.Errorf("%w: %s", ErrCredentialsNotFound, name)
}

// Apply fills empty tokens in cfg from account
func (a *Account) Apply(cfg *config.Config) {
	if cfg.VK.Token == "" {
		cfg.VK.Token = a.VKToken
	}
	if cfg.Disk.Token == "" {
		cfg.Disk.Token = a.DiskToken
	}
}

// getConfigDir returns the per-user configuration directory, creating it
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "vkbackup")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "vkbackup")
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "vkbackup")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "vkbackup")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// SanitizeAccount returns a copy of the account with tokens masked
func SanitizeAccount(account *Account) *Account {
	if account == nil {
		return nil
	}

	return &Account{
		Name:         account.Name,
		VKToken:      config.MaskSecret(account.VKToken),
		DiskToken:    config.MaskSecret(account.DiskToken),
		LastModified: account.LastModified,
	}
}

// Errors
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)
