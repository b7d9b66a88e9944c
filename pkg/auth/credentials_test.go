package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestManagerFallback(t *testing.T) {
	primary := NewMockStore()
	secondary := NewMockStore()
	require.NoError(t, secondary.Store(&Credentials{Environment: "right", Username: "qa", Password: "s3cret"}))

	m := NewManagerWithStores(primary, secondary)

	require.NoError(t, m.Store(&Credentials{Environment: "left", Username: "ops", Password: "pw"}))
	assert.True(t, primary.Exists("left"))
	assert.False(t, secondary.Exists("left"))

	creds, err := m.Retrieve("right")
	require.NoError(t, err)
	assert.Equal(t, "qa", creds.Username)

	_, err = m.Retrieve("staging")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	require.NoError(t, m.Delete("right"))
	assert.False(t, m.Exists("right"))
	assert.ErrorIs(t, m.Delete("right"), ErrCredentialsNotFound)
}

func TestManagerStoreFallsThroughOnError(t *testing.T) {
	broken := NewMockStore()
	broken.StoreError = errors.New("locked keychain")
	working := NewMockStore()

	m := NewManagerWithStores(broken, working)
	require.NoError(t, m.Store(&Credentials{Environment: "left", Username: "u", Password: "p"}))
	assert.True(t, working.Exists("left"))

	only := NewManagerWithStores(broken)
	err := only.Store(&Credentials{Environment: "left", Username: "u", Password: "p"})
	assert.ErrorContains(t, err, "locked keychain")
}

func TestStoreValidation(t *testing.T) {
	m := NewManagerWithStores(NewMockStore())
	for _, c := range []*Credentials{
		nil,
		{Username: "u", Password: "p"},
		{Environment: "left", Password: "p"},
		{Environment: "left", Username: "a:b", Password: "p"},
		{Environment: "left", Username: "u"},
	} {
		assert.ErrorIs(t, m.Store(c), ErrInvalidCredentials)
	}
}

func TestHeaders(t *testing.T) {
	store := NewMockStore()
	require.NoError(t, store.Store(&Credentials{Environment: "right", Username: "u", Password: "p"}))
	m := NewManagerWithStores(store)

	h, err := m.Headers("left", "")
	require.NoError(t, err)
	assert.Nil(t, h)

	h, err = m.Headers("right", "u")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Authorization": "Basic dTpw"}, h)

	_, err = m.Headers("right", "someone-else")
	assert.Error(t, err)

	_, err = m.Headers("left", "u")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestBasicAuthorization(t *testing.T) {
	// RFC 7617 section 2 example
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", BasicAuthorization("Aladdin", "open sesame"))
}

func TestEnvironmentStore(t *testing.T) {
	t.Setenv("SHOTPAIR_RIGHT_PASSWORD", "from-env")
	t.Setenv("SHOTPAIR_RIGHT_BASIC_AUTH_USER", "reviewer")

	s := NewEnvironmentStore()
	assert.True(t, s.Exists("right"))
	assert.False(t, s.Exists("left"))

	creds, err := s.Retrieve("right")
	require.NoError(t, err)
	assert.Equal(t, &Credentials{Environment: "right", Username: "reviewer", Password: "from-env"}, creds)

	_, err = s.Retrieve("left")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
	assert.ErrorIs(t, s.Store(creds), ErrStoreUnavailable)
	assert.ErrorIs(t, s.Delete("right"), ErrStoreUnavailable)
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	ks, err := NewKeyringStore()
	require.NoError(t, err)

	require.NoError(t, ks.Store(&Credentials{Environment: "left", Username: "u", Password: "p"}))
	assert.True(t, ks.Exists("left"))

	creds, err := ks.Retrieve("left")
	require.NoError(t, err)
	assert.Equal(t, "p", creds.Password)

	require.NoError(t, ks.Delete("left"))
	_, err = ks.Retrieve("left")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
	assert.ErrorIs(t, ks.Delete("left"), ErrCredentialsNotFound)
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "", MaskPassword(""))
	assert.Equal(t, "********", MaskPassword("x"))
	assert.Equal(t, "********", MaskPassword("a much longer password"))
}
