package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"METALS_API_KEY", "METALS_BASE_URL", "METALS_CURRENCY", "METALS_UNIT",
		"HTTP_ADDR", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "HTTPS_PROXY", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	// Keep godotenv away from any .env in the package directory.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.metals.dev", cfg.Feed.BaseURL)
	assert.Equal(t, "INR", cfg.Feed.Currency)
	assert.Equal(t, "g", cfg.Feed.Unit)
	assert.Equal(t, 30*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, "₹", cfg.Display.CurrencySymbol)
	assert.Equal(t, "gram", cfg.Display.DetailUnit)
	assert.Equal(t, time.Second, cfg.Display.TickInterval)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.TelegramEnabled())

	assert.EqualError(t, cfg.Validate(), "feed.api_key is required")
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
feed:
  api_key: from-file
  currency: USD
  timeout: 5s
display:
  currency_symbol: "$"
  timezone: Asia/Kolkata
  tick_interval: 2s
telegram:
  bot_token: abc
  chat_id: "123"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("METALS_API_KEY", "from-env")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Feed.APIKey)
	assert.Equal(t, "USD", cfg.Feed.Currency)
	assert.Equal(t, 5*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, "$", cfg.Display.CurrencySymbol)
	assert.Equal(t, 2*time.Second, cfg.Display.TickInterval)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.True(t, cfg.TelegramEnabled())
	require.NoError(t, cfg.Validate())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("METALS_API_KEY")
	require.NoError(t, os.WriteFile(".env", []byte("METALS_API_KEY=dotenv-key\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("METALS_API_KEY") })

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.Feed.APIKey)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feed: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("missing.yaml")
	require.NoError(t, err)
	cfg.Feed.APIKey = "k"
	require.NoError(t, cfg.Validate())

	cfg.Display.TickInterval = 500 * time.Millisecond
	assert.Error(t, cfg.Validate())

	cfg.Display.TickInterval = time.Second
	cfg.Display.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())
}
