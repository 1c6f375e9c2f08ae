package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yolodolo42/emberwallet/internal/testutil"
)

func TestDetectStatus(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		dir := testutil.TempDir(t)
		status := DetectStatus(dir)
		assert.False(t, status.HasConfig)
		assert.Equal(t, filepath.Join(dir, "config.yaml"), status.ConfigPath)
		assert.True(t, NeedsSetup(dir))
	})

	t.Run("empty config file does not count", func(t *testing.T) {
		dir := testutil.TempDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), nil, 0600))
		assert.False(t, DetectStatus(dir).HasConfig)
		assert.True(t, NeedsSetup(dir))
	})

	t.Run("populated config file", func(t *testing.T) {
		dir := testutil.TempDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("network: mainnet\n"), 0600))
		assert.True(t, DetectStatus(dir).HasConfig)
		assert.False(t, NeedsSetup(dir))
	})

	t.Run("directory named config.yaml does not count", func(t *testing.T) {
		dir := testutil.TempDir(t)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "config.yaml"), 0700))
		assert.False(t, DetectStatus(dir).HasConfig)
	})
}

func TestGetDataDir(t *testing.T) {
	home := testutil.TempDir(t)
	testutil.SetEnv(t, "HOME", home)

	dir, err := GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".emberwallet"), dir)
}
