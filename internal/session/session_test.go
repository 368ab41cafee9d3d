package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/config"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		MaxAge:     time.Hour,
		CookieName: "connect.sid",
		Store:      config.SessionStoreMemory,
	}
}

func newTestContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c.Request = req
	return c, rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	s := &Session{ID: "abc", UserID: 7, Email: "a@b.c", Roles: []string{"PATIENT"}}
	require.NoError(t, store.Save(ctx, s, time.Minute))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, []string{"PATIENT"}, got.Roles)

	// mutating the returned copy must not leak into the store
	got.Roles[0] = "ADMIN"
	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"PATIENT"}, again.Roles)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Save(ctx, &Session{ID: "short"}, 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSigner(t *testing.T) {
	now := time.Now()
	signer := NewSigner("secret")

	token, err := signer.Sign("sid-1", now, now.Add(time.Hour))
	require.NoError(t, err)

	id, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", id)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewSigner("other").Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := signer.Parse(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := signer.Sign("sid-2", now.Add(-2*time.Hour), now.Add(-time.Hour))
		require.NoError(t, err)
		_, err = signer.Parse(old)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := signer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestManagerLifecycle(t *testing.T) {
	m := metrics.New("test")
	mgr := NewManager(NewMemoryStore(time.Minute), testSessionConfig(), false, m)

	user := &model.User{Base: model.Base{ID: 42}, Email: "admin@quickhealth.com", Roles: "ADMIN"}

	c, rec := newTestContext()
	s, err := mgr.Start(c, user)
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, []string{"ADMIN"}, s.Roles)
	assert.True(t, s.IsAdmin())

	cookie := findCookie(rec, "connect.sid")
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)

	c2, _ := newTestContext(&http.Cookie{Name: "connect.sid", Value: cookie.Value})
	loaded, err := mgr.Load(c2)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, "admin@quickhealth.com", loaded.Email)

	c3, rec3 := newTestContext(&http.Cookie{Name: "connect.sid", Value: cookie.Value})
	require.NoError(t, mgr.Destroy(c3, loaded))
	cleared := findCookie(rec3, "connect.sid")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	c4, _ := newTestContext(&http.Cookie{Name: "connect.sid", Value: cookie.Value})
	gone, err := mgr.Load(c4)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestManagerSecureInProduction(t *testing.T) {
	mgr := NewManager(NewMemoryStore(time.Minute), testSessionConfig(), true, nil)

	c, rec := newTestContext()
	_, err := mgr.Start(c, &model.User{Base: model.Base{ID: 1}, Email: "p@test.com"})
	require.NoError(t, err)

	cookie := findCookie(rec, "connect.sid")
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestManagerLoadIgnoresBadCookies(t *testing.T) {
	mgr := NewManager(NewMemoryStore(time.Minute), testSessionConfig(), false, nil)

	tests := []struct {
		name    string
		cookies []*http.Cookie
	}{
		{name: "no cookie"},
		{name: "garbage", cookies: []*http.Cookie{{Name: "connect.sid", Value: "garbage"}}},
		{name: "unknown session", cookies: []*http.Cookie{{Name: "connect.sid", Value: mustSign(t, "missing")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(tt.cookies...)
			s, err := mgr.Load(c)
			assert.NoError(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := &Session{ID: "x"}
	got, ok := FromContext(NewContext(context.Background(), s))
	assert.True(t, ok)
	assert.Same(t, s, got)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, config.RedisConfig{URL: url})
	require.NoError(t, err)
	defer client.Close()

	store := NewRedisStore(client)
	s := &Session{ID: "redis-test", UserID: 3, Roles: []string{"PATIENT"}}
	require.NoError(t, store.Save(ctx, s, time.Minute))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func mustSign(t *testing.T, id string) string {
	t.Helper()
	now := time.Now()
	token, err := NewSigner("test-secret").Sign(id, now, now.Add(time.Hour))
	require.NoError(t, err)
	return token
}
