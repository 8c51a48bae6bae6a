package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"scene-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "excalidraw-files", cfg.Storage.Bucket)
	assert.Equal(t, 30, cfg.Storage.RequestTimeoutSeconds)
	assert.Equal(t, "minioadmin", cfg.Storage.AccessKeyID)
	assert.False(t, cfg.Storage.Secure())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "AES-GCM", cfg.Crypto.Algorithm)
	assert.Equal(t, 31536000, cfg.Files.CacheMaxAgeSeconds)
	assert.Equal(t, 0, cfg.Files.Concurrency)
	assert.Equal(t, "pako@1", cfg.Files.Compression)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BUCKET", "room-files")
	t.Setenv("STORAGE_ENDPOINT", "https://s3.example.com")
	t.Setenv("FILES_CONCURRENCY", "8")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "room-files", cfg.Storage.Bucket)
	assert.True(t, cfg.Storage.Secure())
	assert.Equal(t, "s3.example.com", cfg.Storage.Host())
	assert.Equal(t, 8, cfg.Files.Concurrency)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  port: \"7070\"\ncrypto:\n  algorithm: ChaCha20-Poly1305\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "ChaCha20-Poly1305", cfg.Crypto.Algorithm)
}

func TestLoadConfig_UnknownAlgorithm(t *testing.T) {
	t.Setenv("CRYPTO_ALGORITHM", "DES")

	_, err := config.LoadConfig(t.TempDir())
	assert.Error(t, err)
}
