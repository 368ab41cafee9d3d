package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLogin(t *testing.T) {
	m := New("quickhealth")

	m.ObserveLogin(LoginSuccess)
	m.ObserveLogin(LoginInvalidCredentials)
	m.ObserveLogin(LoginInvalidCredentials)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(LoginInvalidCredentials)))
}

func TestObserveLoginNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveLogin(LoginSuccess) })
}
