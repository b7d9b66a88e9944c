package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Credentials are HTTP basic auth credentials for one environment
// (for example "left" or "right")
type Credentials struct {
	Environment  string    `json:"environment"`
	Username     string    `json:"username"`
	Password     string    `json:"password"`
	LastModified time.Time `json:"last_modified"`
}

// CredentialStore stores credentials keyed by environment name
type CredentialStore interface {
	Store(creds *Credentials) error
	Retrieve(environment string) (*Credentials, error)
	Delete(environment string) error
	Exists(environment string) bool
}

// Errors
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)

// Manager consults its stores in order
type Manager struct {
	stores []CredentialStore
}

// NewManager uses the system keyring when available, then SHOTPAIR_*
// environment variables
func NewManager() *Manager {
	var stores []CredentialStore
	if ks, err := NewKeyringStore(); err == nil {
		stores = append(stores, ks)
	}
	stores = append(stores, NewEnvironmentStore())
	return &Manager{stores: stores}
}

// NewManagerWithStores creates a Manager over explicit stores
func NewManagerWithStores(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves creds in the first store that accepts them
func (m *Manager) Store(creds *Credentials) error {
	if err := validate(creds); err != nil {
		return err
	}
	creds.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(creds); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("failed to store credentials: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Retrieve returns credentials for environment from the first store that has them
func (m *Manager) Retrieve(environment string) (*Credentials, error) {
	for _, store := range m.stores {
		if creds, err := store.Retrieve(environment); err == nil && creds != nil {
			return creds, nil
		}
	}
	return nil, fmt.Errorf("%w for environment %q", ErrCredentialsNotFound, environment)
}

// Delete removes credentials for environment from every store
func (m *Manager) Delete(environment string) error {
	deleted := false
	for _, store := range m.stores {
		if err := store.Delete(environment); err == nil {
			deleted = true
		}
	}
	if !deleted {
		return fmt.Errorf("%w for environment %q", ErrCredentialsNotFound, environment)
	}
	return nil
}

// Exists reports whether any store has credentials for environment
func (m *Manager) Exists(environment string) bool {
	for _, store := range m.stores {
		if store.Exists(environment) {
			return true
		}
	}
	return false
}

// Headers returns the request headers needed for environment. user is the
// configured basic auth user; when it is empty no headers are needed.
// Stored credentials for a different user are rejected.
func (m *Manager) Headers(environment, user string) (map[string]string, error) {
	if user == "" {
		return nil, nil
	}
	creds, err := m.Retrieve(environment)
	if err != nil {
		return nil, err
	}
	if creds.Username != "" && creds.Username != user {
		return nil, fmt.Errorf("stored credentials for %q belong to %q, not %q", environment, creds.Username, user)
	}
	return map[string]string{
		"Authorization": BasicAuthorization(user, creds.Password),
	}, nil
}

// BasicAuthorization returns an RFC 7617 Authorization header value
func BasicAuthorization(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func validate(creds *Credentials) error {
	if creds == nil || creds.Environment == "" {
		return fmt.Errorf("%w: environment is required", ErrInvalidCredentials)
	}
	if creds.Username == "" || strings.Contains(creds.Username, ":") {
		return fmt.Errorf("%w: username is required and cannot contain ':'", ErrInvalidCredentials)
	}
	if creds.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidCredentials)
	}
	return nil
}

// MaskPassword returns a fixed-width mask so output does not leak the length
func MaskPassword(password string) string {
	if password == "" {
		return ""
	}
	return strings.Repeat("*", 8)
}
