package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{"api_key":"secret","port":9090,"min_keyword_len":4,"verbose":true}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 4, cfg.MinKeywordLen)
	assert.True(t, cfg.Verbose)
	assert.Empty(t, cfg.StorePath)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfig(t, `{not json`)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Job: "a.json", JobURL: "https://example.com"}
	assert.Error(t, cfg.Validate(), "job and job_url are mutually exclusive")

	cfg = Config{Port: 99999}
	assert.Error(t, cfg.Validate())

	cfg = Config{MinKeywordLen: -1}
	assert.Error(t, cfg.Validate())

	cfg = Config{Resume: filepath.Join(t.TempDir(), "missing.pdf")}
	assert.Error(t, cfg.Validate())

	cfg = Config{Port: 8080, MinKeywordLen: 3}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "from-file", Port: 9000}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "from-file", merged.APIKey)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, DefaultStorePath, merged.StorePath)
	assert.Equal(t, DefaultMinKeywordLen, merged.MinKeywordLen)
	assert.Equal(t, DefaultPerPage, merged.PerPage)
}

func TestResolve_EnvPrecedence(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvPort, "7070")

	// File value wins over env.
	resolved := Resolve(Config{APIKey: "from-file"})
	assert.Equal(t, "from-file", resolved.APIKey)
	assert.Equal(t, 7070, resolved.Port)

	// Env wins over defaults.
	resolved = Resolve(Config{})
	assert.Equal(t, "from-env", resolved.APIKey)
	assert.Equal(t, DefaultStorePath, resolved.StorePath)
}
