package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "shotpair"
	keyringPrefix  = "basic_auth_"
)

// KeyringStore keeps credentials in the system keychain
type KeyringStore struct{}

// NewKeyringStore returns an error when no keychain backend is usable
func NewKeyringStore() (*KeyringStore, error) {
	probe := keyringPrefix + "availability"
	if err := keyring.Set(keyringService, probe, "probe"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, probe)
	return &KeyringStore{}, nil
}

func (k *KeyringStore) Store(creds *Credentials) error {
	if err := validate(creds); err != nil {
		return err
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := keyring.Set(keyringService, keyringPrefix+creds.Environment, string(data)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}
	return nil
}

func (k *KeyringStore) Retrieve(environment string) (*Credentials, error) {
	if environment == "" {
		return nil, ErrInvalidCredentials
	}
	data, err := keyring.Get(keyringService, keyringPrefix+environment)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to retrieve from keyring: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return &creds, nil
}

func (k *KeyringStore) Delete(environment string) error {
	if environment == "" {
		return ErrInvalidCredentials
	}
	if err := keyring.Delete(keyringService, keyringPrefix+environment); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

func (k *KeyringStore) Exists(environment string) bool {
	if environment == "" {
		return false
	}
	_, err := keyring.Get(keyringService, keyringPrefix+environment)
	return err == nil
}
