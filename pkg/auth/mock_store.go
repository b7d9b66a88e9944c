package auth

import "sync"

// MockStore is an in-memory CredentialStore for tests
type MockStore struct {
	creds map[string]*Credentials
	mu    sync.RWMutex

	StoreError    error
	RetrieveError error
}

// NewMockStore creates an empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{creds: make(map[string]*Credentials)}
}

func (m *MockStore) Store(creds *Credentials) error {
	if m.StoreError != nil {
		return m.StoreError
	}
	if err := validate(creds); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *creds
	m.creds[creds.Environment] = &c
	return nil
}

func (m *MockStore) Retrieve(environment string) (*Credentials, error) {
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.creds[environment]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	out := *c
	return &out, nil
}

func (m *MockStore) Delete(environment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.creds[environment]; !ok {
		return ErrCredentialsNotFound
	}
	delete(m.creds, environment)
	return nil
}

func (m *MockStore) Exists(environment string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.creds[environment]
	return ok
}
