package auth

import (
	"os"
	"strings"
)

// EnvironmentStore reads credentials from SHOTPAIR_<ENV>_BASIC_AUTH_USER and
// SHOTPAIR_<ENV>_PASSWORD. It is read-only.
type EnvironmentStore struct{}

// NewEnvironmentStore creates an EnvironmentStore
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

func envKey(environment, suffix string) string {
	return "SHOTPAIR_" + strings.ToUpper(environment) + "_" + suffix
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(*Credentials) error {
	return ErrStoreUnavailable
}

// Retrieve requires the password variable; the user variable is optional
func (e *EnvironmentStore) Retrieve(environment string) (*Credentials, error) {
	if environment == "" {
		return nil, ErrInvalidCredentials
	}
	password := os.Getenv(envKey(environment, "PASSWORD"))
	if password == "" {
		return nil, ErrCredentialsNotFound
	}
	return &Credentials{
		Environment: environment,
		Username:    os.Getenv(envKey(environment, "BASIC_AUTH_USER")),
		Password:    password,
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(string) error {
	return ErrStoreUnavailable
}

func (e *EnvironmentStore) Exists(environment string) bool {
	return environment != "" && os.Getenv(envKey(environment, "PASSWORD")) != ""
}
