package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		format  Format
		want    *Config
		wantErr error
	}{
		{
			name:   "json",
			in:     `{"cache_size": 16, "log_level": "debug", "search_prefixes": ["app", "lib/*"]}`,
			format: FormatJSON,
			want: &Config{
				CacheSize:      16,
				LogLevel:       "debug",
				SearchPrefixes: []string{"app", "lib/*"},
				ServiceName:    "mirror",
			},
		},
		{
			name: "toml",
			in: `
cache_size = 32
tracing_endpoint = "localhost:4318"
service_name = "svc"
`,
			format: FormatTOML,
			want: &Config{
				CacheSize:       32,
				LogLevel:        "warning",
				TracingEndpoint: "localhost:4318",
				ServiceName:     "svc",
			},
		},
		{name: "empty", in: "  ", format: FormatJSON, wantErr: ErrCfgBytesEmpty},
		{name: "unknown format", in: "{}", format: Format(9), wantErr: ErrUnknownFormat},
		{name: "negative cache", in: `{"cache_size": -1}`, format: FormatJSON, wantErr: ErrInvalidValue},
		{name: "bad level", in: `log_level = "loud"`, format: FormatTOML, wantErr: ErrInvalidValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := FromBytes([]byte(tc.in), tc.format)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg)
		})
	}

	_, err := FromBytes([]byte("{"), FormatJSON)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvCacheSize:       " 64 ",
		EnvLogLevel:        "info",
		EnvSearchPrefixes:  "app, lib/* ,,",
		EnvTracingEndpoint: "collector:4318",
		EnvServiceName:     "svc",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, &Config{
		CacheSize:       64,
		LogLevel:        "info",
		SearchPrefixes:  []string{"app", "lib/*"},
		TracingEndpoint: "collector:4318",
		ServiceName:     "svc",
	}, cfg)

	env[EnvCacheSize] = "many"
	require.ErrorIs(t, Default().ApplyEnv(lookup), ErrInvalidValue)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "mirror.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("cache_size = 8\n"), 0o600))
	t.Setenv(EnvServiceName, "from-env")

	cfg, err := Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.CacheSize)
	assert.Equal(t, "from-env", cfg.ServiceName)

	_, err = Load(filepath.Join(dir, "mirror.yaml"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.ServiceName)
}
