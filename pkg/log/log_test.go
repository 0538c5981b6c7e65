package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*logger, *test.Hook) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	return &logger{entry: logrus.NewEntry(base)}, hook
}

func TestLogger_DevelopmentFieldFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	l, hook := newTestLogger()

	l.WithFields(Fields{
		"automation_id": "auto-1",
		"platform":      "twitter",
		"remote_addr":   "10.0.0.1",
		"user_id":       "user-1",
	}).WithField("user_agent", "curl").Info("teste")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "auto-1", entry.Data["automation_id"])
	assert.Equal(t, "twitter", entry.Data["platform"])
	assert.Equal(t, "user-1", entry.Data["user_id"])
	assert.NotContains(t, entry.Data, "remote_addr")
	assert.NotContains(t, entry.Data, "user_agent")
}

func TestLogger_ProductionKeepsAllFields(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	l, hook := newTestLogger()

	l.WithFields(Fields{"remote_addr": "10.0.0.1"}).WithAutomation("auto-1").Warn("teste")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "10.0.0.1", entry.Data["remote_addr"])
	assert.Equal(t, "auto-1", entry.Data["automation_id"])
	assert.Equal(t, logrus.WarnLevel, entry.Level)
}

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}
