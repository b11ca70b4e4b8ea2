package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"club-events/internal/auth"
	"club-events/internal/models"
)

type MockClubDB struct {
	clubs map[string]*models.Club
}

func (m *MockClubDB) GetClubByID(ctx context.Context, id string) (*models.Club, error) {
	for _, club := range m.clubs {
		if club.ID == id {
			return club, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockClubDB) GetClubByUsername(ctx context.Context, username string) (*models.Club, error) {
	club, exists := m.clubs[username]
	if !exists {
		return nil, sql.ErrNoRows
	}
	return club, nil
}

func newTestService(t *testing.T, ttl time.Duration) *auth.Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Cybr!8mQ2#TzL"), bcrypt.MinCost)
	require.NoError(t, err)

	clubDB := &MockClubDB{clubs: map[string]*models.Club{
		"cybersync": {
			ID:           "club-a",
			Name:         "CyberSync",
			Username:     "cybersync",
			PasswordHash: string(hash),
		},
	}}
	return auth.NewService(clubDB, auth.NewMemoryStore(), "test-secret", ttl, "vce_session", false, nil)
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t, 8*time.Hour)

	club, session, token, err := svc.Login(context.Background(), "cybersync", "Cybr!8mQ2#TzL")
	require.NoError(t, err)
	assert.Equal(t, "club-a", club.ID)
	assert.Equal(t, "club-a", session.ClubID)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), session.ExpiresAt, time.Minute)

	resolved, err := svc.CurrentClub(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "club-a", resolved.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, 8*time.Hour)

	_, _, _, err := svc.Login(context.Background(), "cybersync", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc := newTestService(t, 8*time.Hour)

	_, _, _, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestCurrentClubInvalidToken(t *testing.T) {
	svc := newTestService(t, 8*time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		club, err := svc.CurrentClub(context.Background(), token)
		assert.NoError(t, err)
		assert.Nil(t, club)
	}
}

func TestCurrentClubExpiredSession(t *testing.T) {
	svc := newTestService(t, -time.Hour)

	_, _, token, err := svc.Login(context.Background(), "cybersync", "Cybr!8mQ2#TzL")
	require.NoError(t, err)

	club, err := svc.CurrentClub(context.Background(), token)
	assert.NoError(t, err)
	assert.Nil(t, club)
}

func TestLogoutInvalidatesAndIsIdempotent(t *testing.T) {
	svc := newTestService(t, 8*time.Hour)

	_, _, token, err := svc.Login(context.Background(), "cybersync", "Cybr!8mQ2#TzL")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	club, err := svc.CurrentClub(context.Background(), token)
	assert.NoError(t, err)
	assert.Nil(t, club)

	// Logging out twice, or with junk, is not an error.
	assert.NoError(t, svc.Logout(context.Background(), token))
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}

// FlakyStore delegates to a MemoryStore until failGet is set, after which
// every Get errors like an unreachable backend.
type FlakyStore struct {
	inner   *auth.MemoryStore
	failGet bool
}

func (s *FlakyStore) Put(ctx context.Context, sessionID, clubID string, ttl time.Duration) error {
	return s.inner.Put(ctx, sessionID, clubID, ttl)
}

func (s *FlakyStore) Get(ctx context.Context, sessionID string) (string, error) {
	if s.failGet {
		return "", errors.New("connection refused")
	}
	return s.inner.Get(ctx, sessionID)
}

func (s *FlakyStore) Delete(ctx context.Context, sessionID string) error {
	return s.inner.Delete(ctx, sessionID)
}

func TestCurrentClubStoreOutageIsAnError(t *testing.T) {
	svc := newTestService(t, 8*time.Hour)
	store := &FlakyStore{inner: auth.NewMemoryStore()}
	svc.Store = store

	_, _, token, err := svc.Login(context.Background(), "cybersync", "Cybr!8mQ2#TzL")
	require.NoError(t, err)

	// A store outage must not look like an anonymous caller.
	store.failGet = true
	club, err := svc.CurrentClub(context.Background(), token)
	assert.Error(t, err)
	assert.Nil(t, club)
}

func TestMiddlewareStoreOutageReturns500(t *testing.T) {
	svc := newTestService(t, 8*time.Hour)
	store := &FlakyStore{inner: auth.NewMemoryStore()}
	svc.Store = store

	_, _, token, err := svc.Login(context.Background(), "cybersync", "Cybr!8mQ2#TzL")
	require.NoError(t, err)

	handler := svc.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	authedRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/events/mine", nil)
		req.AddCookie(&http.Cookie{Name: "vce_session", Value: token})
		return req
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest())
	assert.Equal(t, http.StatusOK, w.Code)

	store.failGet = true
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTokenSignedWithDifferentSecretRejected(t *testing.T) {
	svc := newTestService(t, 8*time.Hour)
	other := newTestService(t, 8*time.Hour)
	other.Secret = []byte("different-secret")

	_, _, token, err := other.Login(context.Background(), "cybersync", "Cybr!8mQ2#TzL")
	require.NoError(t, err)

	club, err := svc.CurrentClub(context.Background(), token)
	assert.NoError(t, err)
	assert.Nil(t, club)
}
