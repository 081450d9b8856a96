package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf(`
log:
  level: error
jwt:
  secret: test-secret
db:
  driver: sqlite
  dsn: "file:%s?_foreign_keys=1"
  maxOpenConns: 1
  maxIdleConns: 1
  logLevel: silent
limits:
  bcryptCost: 4
`, filepath.Join(dir, "blog.db"))
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"migrate", "seed", "users"} {
		c, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestMigrateSeedUsers(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, "migrate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")

	out, err = run(t, "seed", "--config", cfg, "--file", "../../configs/seed.example.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "users=2")

	// 再跑一次不重复写入
	out, err = run(t, "seed", "--config", cfg, "--file", "../../configs/seed.example.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "users=0 categories=0 blogs=0 comments=0 likes=0")

	out, err = run(t, "users", "--config", cfg, "--role", "author")
	require.NoError(t, err)
	assert.Contains(t, out, "suman.sharma@example.com")
	assert.NotContains(t, out, "maya.kandel@example.com")
}

func TestUsers_BadRole(t *testing.T) {
	cfg := writeConfig(t)
	_, err := run(t, "users", "--config", cfg, "--role", "admin")
	assert.ErrorContains(t, err, "unknown role")
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "migrate", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
