package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/config"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/metrics"
)

// Manager ties the session store to the browser cookie.
type Manager struct {
	store      Store
	signer     *Signer
	cookieName string
	maxAge     time.Duration
	secure     bool
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewManager builds a Manager from the session settings. The cookie is only
// marked Secure in production. m may be nil.
func NewManager(store Store, cfg config.SessionConfig, production bool, m *metrics.Metrics) *Manager {
	return &Manager{
		store:      store,
		signer:     NewSigner(cfg.Secret),
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     production,
		metrics:    m,
		now:        time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Start creates a fresh session for user, snapshotting its roles, and sets the
// session cookie on the response.
func (m *Manager) Start(c *gin.Context, user *model.User) (*Session, error) {
	now := m.now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Roles:     user.RoleSet(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.maxAge),
	}

	if err := m.store.Save(c.Request.Context(), s, m.maxAge); err != nil {
		return nil, err
	}

	value, err := m.signer.Sign(s.ID, now, s.ExpiresAt)
	if err != nil {
		_ = m.store.Delete(c.Request.Context(), s.ID)
		return nil, err
	}

	m.setCookie(c, value, int(m.maxAge/time.Second))
	if m.metrics != nil {
		m.metrics.SessionsCreated.Inc()
	}
	return s, nil
}

// Load resolves the session referenced by the request cookie. A missing,
// tampered or expired cookie yields (nil, nil); only store failures are
// returned as errors.
func (m *Manager) Load(c *gin.Context) (*Session, error) {
	value, err := c.Cookie(m.cookieName)
	if err != nil || value == "" {
		return nil, nil
	}

	id, err := m.signer.Parse(value)
	if err != nil {
		return nil, nil
	}

	s, err := m.store.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !s.ExpiresAt.IsZero() && m.now().After(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

// Destroy removes s from the store and clears the cookie.
func (m *Manager) Destroy(c *gin.Context, s *Session) error {
	m.setCookie(c, "", -1)
	if s == nil {
		return nil
	}
	if err := m.store.Delete(c.Request.Context(), s.ID); err != nil {
		return err
	}
	if m.metrics != nil {
		m.metrics.SessionsDeleted.Inc()
	}
	return nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}
