package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "./ledger.db", cfg.StorePath)
	assert.Equal(t, VectorBackendPersistent, cfg.VectorBackend)
	assert.Equal(t, EmbeddingDim, cfg.EmbeddingDim)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 4, cfg.MaxInflight)
	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())
}

func TestLoadConfig_FileAndUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgerd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storePath: /tmp/test.db
vectorBackend: memory
currency: USD
listenPort: 9999
someUnknownKey: ignored
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.StorePath)
	assert.Equal(t, VectorBackendMemory, cfg.VectorBackend)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 9999, cfg.ListenPort)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("LEDGERD_CURRENCY", "CHF")
	t.Setenv("LEDGERD_LISTEN_PORT", "7070")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "CHF", cfg.Currency)
	assert.Equal(t, 7070, cfg.ListenPort)
}

func TestLoadConfig_RejectsBadEnums(t *testing.T) {
	t.Setenv("LEDGERD_VECTOR_BACKEND", "qdrant")
	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestLoadConfig_RejectsWrongDim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgerd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embeddingDim: 768\n"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	err := Wrap(KindStoreFailure, "insert", assert.AnError)
	assert.Equal(t, KindStoreFailure, KindOf(err))
	assert.Equal(t, "insert", MessageOf(err))
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, KindInternal, KindOf(assert.AnError))
	assert.Nil(t, Wrap(KindStoreFailure, "noop", nil))
}
