package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DefaultsAndValidate(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, "production", c.Environment)
	assert.NoError(t, c.Validate())

	c.TracesSampleRate = 1.5
	assert.Error(t, c.Validate())
}

func TestNopMonitor(t *testing.T) {
	var m Monitor = NopMonitor{}
	assert.NotPanics(t, func() {
		m.CaptureException(assert.AnError, map[string]string{"k": "v"})
		m.Flush(0)
		defer m.Recover()
	})
}
