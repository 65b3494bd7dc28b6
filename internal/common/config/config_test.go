package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnv(t *testing.T) {
	t.Setenv("PS_TEST_DB_HOST", "db.internal")

	in := []byte("host: ${PS_TEST_DB_HOST}\nport: ${PS_TEST_DB_PORT:5432}\n")
	out := string(resolveEnv(in))
	assert.Contains(t, out, "host: db.internal")
	assert.Contains(t, out, "port: 5432")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apiserver.yaml")
	data := `
port: 8080
database:
  type: sqlite
  dbname: ` + filepath.Join(dir, "data", "app.db") + `
jwt:
  secret_key: ${PS_TEST_JWT_SECRET:fallback-secret-key-for-config-test}
  duration: 24h
storage:
  bucket: attachments
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, cfgPath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfgPath)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "fallback-secret-key-for-config-test", cfg.JWT.SecretKey)
	assert.Equal(t, "attachments", cfg.Storage.Bucket)
}

func TestGetDSN(t *testing.T) {
	pg := &DatabaseConfig{Type: "postgres", Host: "localhost", Port: 5432, User: "app", Password: "pw", DBName: "stash", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:pw@localhost:5432/stash?sslmode=disable", pg.GetDSN())

	my := &DatabaseConfig{Type: "mysql", Host: "localhost", Port: 3306, User: "app", Password: "pw", DBName: "stash"}
	assert.Contains(t, my.GetDSN(), "tcp(localhost:3306)/stash")

	unknown := &DatabaseConfig{Type: "oracle"}
	assert.Equal(t, "", unknown.GetDSN())
}
