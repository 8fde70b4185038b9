package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_LoadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	envFile := filepath.Join(tmp, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PRACTICE_SDK_TEST_ENV=ok\n"), 0o644))

	_ = os.Unsetenv("PRACTICE_SDK_TEST_ENV")
	n, err := LoadEnv([]string{envFile, filepath.Join(tmp, ".env.local")})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("PRACTICE_SDK_TEST_ENV"))
}

func TestDatabaseOptions_ConnectionString(t *testing.T) {
	t.Parallel()

	opts := DatabaseOptions{
		Name:     "practice_sdk",
		Host:     "db.internal",
		Port:     "5433",
		User:     "app",
		Password: "secret",
	}
	require.Equal(
		t,
		"host=db.internal port=5433 user=app dbname=practice_sdk password=secret sslmode=disable",
		opts.ConnectionString(),
	)
}

func TestConfiguration_LogrusLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]logrus.Level{
		"silent":  logrus.PanicLevel,
		"error":   logrus.ErrorLevel,
		"warn":    logrus.WarnLevel,
		"info":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"unknown": logrus.ErrorLevel,
	}
	for input, expected := range cases {
		c := &Configuration{LogLevel: input}
		require.Equal(t, expected, c.LogrusLogLevel(), "level %q", input)
	}
}
