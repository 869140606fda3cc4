package auth

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"vkbackup/pkg/config"
)

func sampleAccount(name string) *Account {
	return &Account{
		Name:      name,
		VKToken:   "vk1.a.abcdefghijklmnop",
		DiskToken: "y0_AgAAAAAabcdefghijk",
	}
}

func TestCredentialManager(t *testing.T) {
	manager, mockStore := NewMockManager()

	require.NoError(t, manager.Store(sampleAccount("personal")))
	assert.Equal(t, 1, mockStore.Count())

	retrieved, err := manager.Retrieve("personal")
	require.NoError(t, err)
	assert.Equal(t, "vk1.a.abcdefghijklmnop", retrieved.VKToken)
	assert.Equal(t, "y0_AgAAAAAabcdefghijk", retrieved.DiskToken)
	assert.False(t, retrieved.LastModified.IsZero())

	accounts, err := manager.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	require.NoError(t, manager.Delete("personal"))
	_, err = manager.Retrieve("personal")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
	assert.Equal(t, 0, mockStore.Count())

	assert.ErrorIs(t, manager.Delete("personal"), ErrCredentialsNotFound)
}

func TestManagerStoreValidation(t *testing.T) {
	manager, _ := NewMockManager()

	assert.Error(t, manager.Store(nil))
	assert.Error(t, manager.Store(&Account{VKToken: "x"}))
	assert.Error(t, manager.Store(&Account{Name: "empty"}))
	assert.NoError(t, manager.Store(&Account{Name: "disk-only", DiskToken: "y0_token"}))
}

func TestManagerFallsBackToNextStore(t *testing.T) {
	broken := NewMockStore()
	broken.StoreError = errors.New("keychain locked")
	backup := NewMockStore()
	manager := NewManagerWithStores(broken, backup)

	require.NoError(t, manager.Store(sampleAccount("work")))
	assert.Equal(t, 0, broken.Count())
	assert.Equal(t, 1, backup.Count())

	broken2 := NewMockStore()
	broken2.StoreError = errors.New("nope")
	err := NewManagerWithStores(broken2).Store(sampleAccount("work"))
	assert.ErrorContains(t, err, "nope")
}

func TestManagerListDeduplicatesAndSorts(t *testing.T) {
	first := NewMockStore()
	second := NewMockStore()
	manager := NewManagerWithStores(first, second)

	old := sampleAccount("b")
	old.LastModified = time.Now().Add(-time.Hour)
	newer := sampleAccount("b")
	newer.VKToken = "newer-token-123456"
	newer.LastModified = time.Now()
	require.NoError(t, first.Store(old))
	require.NoError(t, second.Store(newer))
	require.NoError(t, second.Store(sampleAccount("a")))

	accounts, err := manager.List()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "a", accounts[0].Name)
	assert.Equal(t, "b", accounts[1].Name)
	assert.Equal(t, "newer-token-123456", accounts[1].VKToken)
}

func TestRetrieveDefault(t *testing.T) {
	manager, store := NewMockManager()

	_, err := manager.RetrieveDefault()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	older := sampleAccount("older")
	older.LastModified = time.Now().Add(-time.Hour)
	latest := sampleAccount("latest")
	latest.LastModified = time.Now()
	require.NoError(t, store.Store(older))
	require.NoError(t, store.Store(latest))

	account, err := manager.RetrieveDefault()
	require.NoError(t, err)
	assert.Equal(t, "latest", account.Name)

	require.NoError(t, store.Store(sampleAccount(DefaultAccountName)))
	account, err = manager.RetrieveDefault()
	require.NoError(t, err)
	assert.Equal(t, DefaultAccountName, account.Name)

	viaEmpty, err := manager.Retrieve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAccountName, viaEmpty.Name)
}

func TestAccountApply(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.VK.Token = "from-flag"

	sampleAccount("x").Apply(cfg)

	assert.Equal(t, "from-flag", cfg.VK.Token)
	assert.Equal(t, "y0_AgAAAAAabcdefghijk", cfg.Disk.Token)
}

func TestSanitizeAccount(t *testing.T) {
	account := sampleAccount("personal")
	sanitized := SanitizeAccount(account)

	assert.Equal(t, "personal", sanitized.Name)
	assert.Equal(t, "vk1....mnop", sanitized.VKToken)
	assert.Equal(t, "y0_A...hijk", sanitized.DiskToken)
	assert.Nil(t, SanitizeAccount(nil))
}

func TestEncryptedFileStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPassphrase, "")
	path := filepath.Join(dir, "creds", "credentials.enc")

	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	_, err = store.Retrieve("personal")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	require.NoError(t, store.Store(sampleAccount("personal")))
	require.NoError(t, store.Store(sampleAccount("work")))
	assert.True(t, store.Exists("personal"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "vk1.a.abcdefghijklmnop")
	assert.Contains(t, string(content), `"version": 1`)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = os.Stat(filepath.Join(dir, "creds", ".passphrase"))
	assert.NoError(t, err, "generated passphrase is persisted")

	reopened, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	account, err := reopened.Retrieve("work")
	require.NoError(t, err)
	assert.Equal(t, "y0_AgAAAAAabcdefghijk", account.DiskToken)

	accounts, err := reopened.List()
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	require.NoError(t, reopened.Delete("personal"))
	require.NoError(t, reopened.Delete("work"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file removed with the last account")
	assert.ErrorIs(t, reopened.Delete("work"), ErrCredentialsNotFound)
}

func TestEncryptedFileStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")

	require.NoError(t, NewEncryptedFileStoreWithPassphrase(path, "right").Store(sampleAccount("a")))

	_, err := NewEncryptedFileStoreWithPassphrase(path, "wrong").Retrieve("a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCredentialsNotFound)
}

func TestEncryptedFileStorePassphraseFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPassphrase, "from-env")

	store, err := NewEncryptedFileStore(filepath.Join(dir, "credentials.enc"))
	require.NoError(t, err)
	require.NoError(t, store.Store(sampleAccount("a")))

	_, err = os.Stat(filepath.Join(dir, ".passphrase"))
	assert.True(t, os.IsNotExist(err))

	_, err = NewEncryptedFileStoreWithPassphrase(filepath.Join(dir, "credentials.enc"), "from-env").Retrieve("a")
	assert.NoError(t, err)
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()
	t.Setenv(EnvVKToken, "")
	t.Setenv(EnvDiskToken, "")

	_, err := store.Retrieve("")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
	accounts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	t.Setenv(EnvVKToken, "env-vk")
	t.Setenv(EnvDiskToken, "env-disk")

	account, err := store.Retrieve(DefaultAccountName)
	require.NoError(t, err)
	assert.Equal(t, "env-vk", account.VKToken)
	assert.Equal(t, "env-disk", account.DiskToken)
	assert.True(t, store.Exists(""))
	assert.False(t, store.Exists("other"))

	assert.ErrorIs(t, store.Store(account), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Delete(DefaultAccountName), ErrStoreUnavailable)
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	store, err := NewKeyringStore()
	require.NoError(t, err)

	accounts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	require.NoError(t, store.Store(sampleAccount("personal")))
	require.NoError(t, store.Store(sampleAccount("work")))
	require.NoError(t, store.Store(sampleAccount("work")))

	accounts, err = store.List()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "personal", accounts[0].Name)

	account, err := store.Retrieve("work")
	require.NoError(t, err)
	assert.Equal(t, "vk1.a.abcdefghijklmnop", account.VKToken)

	require.NoError(t, store.Delete("personal"))
	assert.False(t, store.Exists("personal"))
	assert.ErrorIs(t, store.Delete("personal"), ErrCredentialsNotFound)

	require.NoError(t, store.Delete("work"))
	_, err = keyring.Get(keyringService, keyringIndex)
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestManagerDeleteIgnoresReadOnlyStores(t *testing.T) {
	t.Setenv(EnvVKToken, "")
	t.Setenv(EnvDiskToken, "")
	mock := NewMockStore()
	manager := NewManagerWithStores(mock, NewEnvironmentStore())

	require.NoError(t, manager.Store(sampleAccount("a")))
	assert.NoError(t, manager.Delete("a"))
	assert.ErrorIs(t, manager.Delete("a"), ErrCredentialsNotFound)
}

func TestShowTokenGuide(t *testing.T) {
	var buf bytes.Buffer
	ShowTokenGuide(&buf)
	assert.Contains(t, buf.String(), "scope=photos")
	assert.Contains(t, buf.String(), "Yandex Disk OAuth token")

	buf.Reset()
	ShowQuickTokenGuide(&buf)
	assert.Contains(t, buf.String(), "help")
}
