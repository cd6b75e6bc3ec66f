package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/ratelimit"
)

type memStore struct {
	mu       sync.Mutex
	hashes   map[string]string
	failures map[string]int64
}

func newMemStore() *memStore {
	return &memStore{hashes: map[string]string{}, failures: map[string]int64{}}
}

func (s *memStore) Put(ctx context.Context, number, hash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[number] = hash
	s.failures[number] = 0
	return nil
}

func (s *memStore) Get(ctx context.Context, number string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hashes[number]
	if !ok {
		return "", errCodeNotFound
	}
	return h, nil
}

func (s *memStore) Fail(ctx context.Context, number string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[number]++
	return s.failures[number], nil
}

func (s *memStore) Delete(ctx context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hashes, number)
	delete(s.failures, number)
	return nil
}

type memCounter struct {
	hits map[string]int64
}

func (m *memCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.hits[key]++
	return m.hits[key], nil
}

func newTestVerifier(limiter *ratelimit.Limiter) (Verifier, *memStore, *JWTManager) {
	store := newMemStore()
	jwt := NewJWTManager("test-secret", time.Hour)
	v := NewVerifier(store, NewBcryptCodeHasherWithCost(4), jwt, limiter, 5*time.Minute, []string{"+1 (555) 000-0001"}, zap.NewNop())
	return v, store, jwt
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "15551234567", NormalizeNumber("+1 (555) 123-4567"))
	assert.Equal(t, "", NormalizeNumber("abc"))
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestSendAndVerify(t *testing.T) {
	v, _, jwt := newTestVerifier(nil)
	ctx := context.Background()

	code, normalized, err := v.SendCode(ctx, "555-123-4567")
	require.NoError(t, err)
	assert.Equal(t, "5551234567", normalized)

	_, err = v.Verify(ctx, "5551234567", "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	// Whitespace inside the code is ignored.
	spaced := code[:3] + " " + code[3:]
	session, err := v.Verify(ctx, "(555) 123 4567", spaced)
	require.NoError(t, err)
	assert.Equal(t, "5551234567", session.CustomerNumber)
	assert.False(t, session.Admin)

	claims, err := jwt.ParseAndValidate(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "5551234567", claims.Subject)
	assert.False(t, claims.Admin)

	// A code can only be used once.
	_, err = v.Verify(ctx, "5551234567", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestResendReplacesCode(t *testing.T) {
	v, _, _ := newTestVerifier(nil)
	ctx := context.Background()

	first, _, err := v.SendCode(ctx, "5551234567")
	require.NoError(t, err)
	second, _, err := v.SendCode(ctx, "5551234567")
	require.NoError(t, err)

	if first != second {
		_, err = v.Verify(ctx, "5551234567", first)
		assert.ErrorIs(t, err, ErrInvalidCode)
	}
	_, err = v.Verify(ctx, "5551234567", second)
	assert.NoError(t, err)
}

func TestVerifyAdmin(t *testing.T) {
	v, _, _ := newTestVerifier(nil)
	ctx := context.Background()

	code, _, err := v.SendCode(ctx, "15550000001")
	require.NoError(t, err)
	session, err := v.Verify(ctx, "15550000001", code)
	require.NoError(t, err)
	assert.True(t, session.Admin)
}

func TestInvalidNumbers(t *testing.T) {
	v, _, _ := newTestVerifier(nil)
	ctx := context.Background()

	for _, n := range []string{"", "12345", "abc-def", "1234567890123456"} {
		_, _, err := v.SendCode(ctx, n)
		assert.ErrorIs(t, err, ErrInvalidNumber, n)
	}

	_, err := v.Verify(ctx, "5551234567", "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyBurnsCodeAfterFailures(t *testing.T) {
	v, store, _ := newTestVerifier(nil)
	ctx := context.Background()

	code, _, err := v.SendCode(ctx, "5551234567")
	require.NoError(t, err)

	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}
	for i := 0; i < MaxVerifyFailures; i++ {
		_, err := v.Verify(ctx, "5551234567", wrong)
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	_, err = store.Get(ctx, "5551234567")
	assert.ErrorIs(t, err, errCodeNotFound)

	_, err = v.Verify(ctx, "5551234567", code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestSendCodeRateLimited(t *testing.T) {
	limiter := ratelimit.New(&memCounter{hits: map[string]int64{}}, 2, time.Minute, "code")
	v, _, _ := newTestVerifier(limiter)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _, err := v.SendCode(ctx, "5551234567")
		require.NoError(t, err)
	}
	_, _, err := v.SendCode(ctx, "555 123 4567")
	assert.ErrorIs(t, err, ErrTooManyCodes)

	_, _, err = v.SendCode(ctx, "5559876543")
	assert.NoError(t, err)
}

func TestLogout(t *testing.T) {
	v, store, _ := newTestVerifier(nil)
	ctx := context.Background()

	_, _, err := v.SendCode(ctx, "5551234567")
	require.NoError(t, err)
	require.NoError(t, v.Logout(ctx, "555-123-4567"))

	_, err = store.Get(ctx, "5551234567")
	assert.ErrorIs(t, err, errCodeNotFound)
	assert.NoError(t, v.Logout(ctx, ""))
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("one", time.Hour)
	other := NewJWTManager("two", time.Hour)

	token, expiresAt, err := issuer.GenerateAccessToken("5551234567", true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	_, err = other.ParseAndValidate(token)
	assert.Error(t, err)

	expired := NewJWTManager("one", -time.Minute)
	token, _, err = expired.GenerateAccessToken("5551234567", false)
	require.NoError(t, err)
	_, err = issuer.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt := NewJWTManager("secret", time.Hour)

	r := gin.New()
	r.GET("/me", AuthRequired(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"number": GetCustomerNumber(c), "admin": IsAdmin(c)})
	})
	r.GET("/admin", AuthRequired(jwt), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	call := func(path, header string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	customer, _, err := jwt.GenerateAccessToken("5551234567", false)
	require.NoError(t, err)
	admin, _, err := jwt.GenerateAccessToken("5550000001", true)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call("/me", ""))
	assert.Equal(t, http.StatusUnauthorized, call("/me", "Token "+customer))
	assert.Equal(t, http.StatusUnauthorized, call("/me", "Bearer garbage"))
	assert.Equal(t, http.StatusOK, call("/me", "Bearer "+customer))
	assert.Equal(t, http.StatusForbidden, call("/admin", "Bearer "+customer))
	assert.Equal(t, http.StatusNoContent, call("/admin", "Bearer "+admin))
}
