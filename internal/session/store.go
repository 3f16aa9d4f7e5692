// Package session provides credential storage and session lifecycle for the
// BuildBidz client.
package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/buildbidz/buildbidz-go/internal/crypto"
	"github.com/buildbidz/buildbidz-go/internal/errors"
)

// CredentialStore persists sensitive values encrypted on disk. Values are
// sealed with AES-256-GCM under a key derived from a machine identifier, and
// written with owner-only permissions.
type CredentialStore struct {
	dataDir   string
	machineID string
}

// NewCredentialStore creates a store rooted at dataDir.
func NewCredentialStore(dataDir string) *CredentialStore {
	return &CredentialStore{
		dataDir:   dataDir,
		machineID: machineIdentifier(),
	}
}

// Store encrypts and persists a credential under the given account name.
func (s *CredentialStore) Store(account, value string) error {
	secureDir := filepath.Join(s.dataDir, "secure")
	if err := os.MkdirAll(secureDir, 0700); err != nil {
		return errors.Wrap(errors.ErrInternal, "failed to create secure directory", err)
	}

	encrypted, err := crypto.Encrypt([]byte(value), crypto.DeriveKey(s.machineID))
	if err != nil {
		return errors.Wrap(errors.ErrCryptoFailed, "failed to encrypt credential", err)
	}

	if err := os.WriteFile(s.credFile(account), []byte(encrypted), 0600); err != nil {
		return errors.Wrap(errors.ErrInternal, "failed to write credential file", err)
	}
	return nil
}

// Get retrieves and decrypts a credential. A missing credential yields
// ErrCredentialNotFound.
func (s *CredentialStore) Get(account string) (string, error) {
	data, err := os.ReadFile(s.credFile(account))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCredentialNotFound, "credential not found: "+account)
		}
		return "", errors.Wrap(errors.ErrInternal, "failed to read credential file", err)
	}

	value, err := crypto.Decrypt(string(data), crypto.DeriveKey(s.machineID))
	if err != nil {
		return "", errors.Wrap(errors.ErrCryptoFailed, "failed to decrypt credential", err)
	}
	return string(value), nil
}

// Delete removes a credential. Deleting an absent credential is not an error.
func (s *CredentialStore) Delete(account string) error {
	if err := os.Remove(s.credFile(account)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrInternal, "failed to delete credential file", err)
	}
	return nil
}

func (s *CredentialStore) credFile(account string) string {
	// Sanitize account name for use as a filename
	safe := strings.ReplaceAll(account, "/", "_")
	safe = strings.ReplaceAll(safe, "\\", "_")
	safe = strings.ReplaceAll(safe, "..", "_")
	return filepath.Join(s.dataDir, "secure", safe+".cred")
}

// machineIdentifier returns a stable per-machine identifier used to bind the
// credential files to this host.
func machineIdentifier() string {
	if data, err := os.ReadFile("/etc/machine-id"); err == nil {
		return "linux:" + strings.TrimSpace(string(data))
	}
	if data, err := os.ReadFile("/var/lib/dbus/machine-id"); err == nil {
		return "linux:" + strings.TrimSpace(string(data))
	}
	hostname, _ := os.Hostname()
	return "host:" + hostname
}
