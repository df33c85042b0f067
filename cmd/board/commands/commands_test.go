package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	t.Run("正常なサーバーなら成功する", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok","service":"board"}`))
		}))
		t.Cleanup(srv.Close)

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"healthcheck", "--url", srv.URL})
		require.NoError(t, rootCmd.Execute())
		assert.Equal(t, "board: ok\n", out.String())
	})

	t.Run("503なら失敗する", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable","service":"board"}`))
		}))
		t.Cleanup(srv.Close)

		rootCmd.SetArgs([]string{"healthcheck", "--url", srv.URL})
		assert.Error(t, rootCmd.Execute())
	})
}

func TestMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")

	rootCmd.SetArgs([]string{"migrate", "--db", path})
	require.NoError(t, rootCmd.Execute())

	// 2回目は適用済みのためスキップされる
	rootCmd.SetArgs([]string{"migrate", "--db", path})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, path)
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "from-env.db")
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("DATABASE_PATH="+dbFile+"\n"), 0o600))

	_, preset := os.LookupEnv("DATABASE_PATH")
	if preset {
		t.Skip("DATABASE_PATH が設定済みのため.envの値は使われない")
	}
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_PATH")
		envFile = ""
	})

	rootCmd.SetArgs([]string{"migrate", "--env-file", envPath, "--db", ""})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, dbFile)

	rootCmd.SetArgs([]string{"migrate", "--env-file", filepath.Join(dir, "missing.env")})
	assert.Error(t, rootCmd.Execute())
}
