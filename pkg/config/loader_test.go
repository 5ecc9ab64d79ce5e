package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
port: "8080"
session_ttl: 2h
token_ttl: 12h
jwt_secret: ${LF_TEST_SECRET}
pg:
  host: localhost
  port: 5432
  user: postgres
  password: postgres
  database: lostfound
  retry_count: 3
  retry_interval: 2
redis:
  addr: localhost:6379
  redis_db: 1
minio:
  host: localhost
  port: 9000
  bucket_name: item-images
  public_base_url: http://cdn.local
messaging:
  unread_poll_interval: 15s
`

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lostfound_test.yaml"), []byte(testYAML), 0644))
	t.Setenv("LF_TEST_SECRET", "s3cr3t")

	cfg, err := ReadConfig[LostFound]("lostfound_test", dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.Equal(t, 5432, cfg.PostgreSQL.Port)
	assert.Equal(t, 1, cfg.Redis.RedisDB)
	assert.Equal(t, "http://cdn.local", cfg.MinIO.PublicBaseURL)
	assert.Equal(t, 15*time.Second, cfg.Messaging.UnreadPollInterval)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig[LostFound]("not_exist", t.TempDir())
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	var cfg LostFound
	cfg.ApplyDefaults()

	assert.Equal(t, 30*time.Second, cfg.Messaging.UnreadPollInterval)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxImageBytes)
	assert.Equal(t, "item-images", cfg.MinIO.BucketName)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)

	// jwt 有效期不可短於 session
	long := LostFound{SessionTTL: 48 * time.Hour, TokenTTL: time.Hour}
	long.ApplyDefaults()
	assert.Equal(t, 48*time.Hour, long.TokenTTL)
}

func TestGetPath(t *testing.T) {
	_, err := GetPath("definitely-not-here.env", 2)
	assert.Error(t, err)
}
