package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inkhive/pkg/cookie"
)

var (
	secretA = strings.Repeat("a", 32)
	secretB = strings.Repeat("b", 32)
)

// replay copies cookies set on rec into a fresh request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	assert.False(t, m.Secure())
}

func TestManager_Encrypted(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "tok", "access-token-value", cookie.WithMaxAge(60)))

	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.NotContains(t, set[0].Value, "access-token-value")
	assert.True(t, set[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)
	assert.Equal(t, 60, set[0].MaxAge)

	got, err := m.GetEncrypted(replay(rec), "tok")
	require.NoError(t, err)
	assert.Equal(t, "access-token-value", got)

	other, err := cookie.New([]string{secretB})
	require.NoError(t, err)
	_, err = other.GetEncrypted(replay(rec), "tok")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(rec, "sid", "session-id"))

	got, err := m.GetSigned(replay(rec), "sid")
	require.NoError(t, err)
	assert.Equal(t, "session-id", got)

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()
		value := rec.Result().Cookies()[0].Value
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "b3RoZXI." + value[strings.IndexByte(value, '.')+1:]})
		_, err := m.GetSigned(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "no-separator"})
		_, err := m.GetSigned(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_KeyRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, old.SetEncrypted(rec, "tok", "v"))

	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)
	got, err := rotated.GetEncrypted(replay(rec), "tok")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestManager_SecureNaming(t *testing.T) {
	t.Parallel()

	plain, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	assert.Equal(t, "inkhive.session-token", plain.Name("inkhive.session-token"))

	err = plain.Set(httptest.NewRecorder(), "__Secure-x", "v")
	assert.ErrorIs(t, err, cookie.ErrInsecurePrefixed)

	secure, err := cookie.New([]string{secretA}, cookie.WithSecure(true))
	require.NoError(t, err)
	name := secure.Name("inkhive.session-token")
	assert.Equal(t, "__Secure-inkhive.session-token", name)
	assert.Equal(t, name, secure.Name(name))

	rec := httptest.NewRecorder()
	require.NoError(t, secure.Set(rec, name, "v"))
	assert.True(t, rec.Result().Cookies()[0].Secure)
}

func TestManager_GetMissingAndDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "nope")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	rec := httptest.NewRecorder()
	m.Delete(rec, "tok")
	c := rec.Result().Cookies()
	require.Len(t, c, 1)
	assert.Equal(t, -1, c[0].MaxAge)
	assert.Empty(t, c[0].Value)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: " " + secretB + " , " + secretA, Secure: true})
	require.NoError(t, err)
	assert.True(t, m.Secure())

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
