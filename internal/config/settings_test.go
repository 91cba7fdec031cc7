package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_File(t *testing.T) {
	path := writeTemp(t, "itrcalc_*.yaml", "server:\n  address: \":9090\"\n  read_timeout: 5s\nlogging:\n  level: debug\nadvance_tax:\n  exclude_past_due: true\n")

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", settings.Server.Address)
	assert.Equal(t, 5*time.Second, settings.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, settings.Server.WriteTimeout)
	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, "memory", settings.Store.Driver)
	assert.True(t, settings.AdvanceTax.ExcludePastDue)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	path := writeTemp(t, "itrcalc_*.yaml", "logging:\n  level: info\n")
	t.Setenv("ITRCALC_LOGGING_LEVEL", "warn")
	t.Setenv("ITRCALC_STORE_DRIVER", "postgres")
	t.Setenv("ITRCALC_STORE_DSN", "postgres://localhost/itr?sslmode=disable")

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, "postgres", settings.Store.Driver)
	assert.Equal(t, "postgres://localhost/itr?sslmode=disable", settings.Store.DSN)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "store:\n  driver: sqlite\n"},
		{"postgres without dsn", "store:\n  driver: postgres\n"},
		{"unknown level", "logging:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(writeTemp(t, "itrcalc_*.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid settings")
		})
	}
}

func TestSettingsLoadRules(t *testing.T) {
	settings := DefaultSettings()
	require.NoError(t, settings.Validate())

	book, err := settings.LoadRules()
	require.NoError(t, err)
	assert.Len(t, book.Years(), 3)

	settings.Rules.File = "../../configs/rules.statutory.yaml"
	book, err = settings.LoadRules()
	require.NoError(t, err)
	rules, err := book.Lookup("2024-2025")
	require.NoError(t, err)
	assert.False(t, rules.NewRegime.StandardDeduction.IsZero())
}
