package auth

import (
	"os"
	"time"
)

// Environment variables read by EnvironmentStore
const (
	EnvVKToken   = "VKBACKUP_VK_TOKEN"
	EnvDiskToken = "VKBACKUP_DISK_TOKEN"
)

// EnvironmentStore is a read-only CredentialStore over environment variables.
// It exposes a single account named DefaultAccountName.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(account *Account) error {
	return ErrStoreUnavailable
}

// Retrieve returns the environment account when name is empty or the default
func (e *EnvironmentStore) Retrieve(name string) (*Account, error) {
	if name != "" && name != DefaultAccountName {
		return nil, ErrCredentialsNotFound
	}

	vkToken := os.Getenv(EnvVKToken)
	diskToken := os.Getenv(EnvDiskToken)
	if vkToken == "" && diskToken == "" {
		return nil, ErrCredentialsNotFound
	}

	return &Account{
		Name:         DefaultAccountName,
		VKToken:      vkToken,
		DiskToken:    diskToken,
		LastModified: time.Time{},
	}, nil
}

// List returns the environment account if any token is set
func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve("")
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(name string) error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials exist
func (e *EnvironmentStore) Exists(name string) bool {
	_, err := e.Retrieve(name)
	return err == nil
}
