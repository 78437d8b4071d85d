package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	t.Run("empty settings inherit all defaults", func(t *testing.T) {
		require.Equal(t, Default(), Fill(Settings{}))
	})

	t.Run("custom values survive", func(t *testing.T) {
		var s Settings
		s.Headers.Number.Maximal = 1024
		s.TCP.ReadTimeout = time.Minute

		filled := Fill(s)
		require.EqualValues(t, 1024, filled.Headers.Number.Maximal)
		require.Equal(t, time.Minute, filled.TCP.ReadTimeout)
		require.Equal(t, Default().Headers.Number.Default, filled.Headers.Number.Default)
		require.Equal(t, Default().Strings.Space, filled.Strings.Space)
	})
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	return path
}

func TestFromFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "settings.yaml", `
headers:
  number:
    maximal: 512
strings:
  space:
    default: 1024
`)
		s, err := FromFile(path)
		require.NoError(t, err)
		require.EqualValues(t, 512, s.Headers.Number.Maximal)
		require.EqualValues(t, 1024, s.Strings.Space.Default)
		require.Equal(t, Default().Headers.Number.Default, s.Headers.Number.Default)
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "settings.json", `{"headers": {"number": {"maximal": 512}}}`)
		s, err := FromFile(path)
		require.NoError(t, err)
		require.EqualValues(t, 512, s.Headers.Number.Maximal)
		require.Equal(t, Default().TCP.ReadBuffer, s.TCP.ReadBuffer)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "settings.toml", "")
		_, err := FromFile(path)
		require.Error(t, err)
	})

	t.Run("nonexistent file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nothing.yaml"))
		require.Error(t, err)
	})
}
