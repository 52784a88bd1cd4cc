package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(``))
	require.NoError(t, err)
	assert.Equal(t, DefaultProtectionLevel, cfg.ProtectionLevel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte("protection_level: 2\nlog_level: debug\nlog_format: json\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ProtectionLevel)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_NegativeProtectionLevel(t *testing.T) {
	_, err := Parse([]byte("protection_level: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidProtectionLevel)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	_, err := Parse([]byte("log_format: xml\n"))
	assert.ErrorIs(t, err, ErrInvalidLogFormat)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("protection_level: [not, a, number]\n"))
	assert.Error(t, err)
}

func TestLogger_FallsBackOnBadLevel(t *testing.T) {
	cfg := defaults()
	cfg.LogLevel = "not-a-level"
	log := cfg.Logger()
	require.NotNil(t, log)
}
