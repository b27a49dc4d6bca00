package cleanup

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	for _, dir := range dirs {
		path := filepath.Join(root, filepath.FromSlash(dir))
		require.NoError(t, os.MkdirAll(path, 0755))
		require.NoError(t, ioutil.WriteFile(filepath.Join(path, "f"), []byte("x"), 0644))
	}
}

func requireNotExist(t *testing.T, path string) {
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "%v still exists", path)
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"stat_log_db/build/lib",
		"stat_log_db/src/stat_log_db.egg-info",
		"stat_log_db/src/stat_log_db",
	)

	removed, err := Remove(root, []string{
		"stat_log_db/build",
		"stat_log_db/dist",
		"stat_log_db/src/stat_log_db.egg-info",
		".pytest_cache",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "stat_log_db", "build"),
		filepath.Join(root, "stat_log_db", "src", "stat_log_db.egg-info"),
	}, removed)

	requireNotExist(t, filepath.Join(root, "stat_log_db", "build"))
	requireNotExist(t, filepath.Join(root, "stat_log_db", "src", "stat_log_db.egg-info"))
	require.DirExists(t, filepath.Join(root, "stat_log_db", "src", "stat_log_db"))

	t.Run("Again", func(t *testing.T) {
		removed, err := Remove(root, []string{"stat_log_db/build"})
		require.NoError(t, err)
		assert.Empty(t, removed)
	})
}

func TestRemoveOutsideRoot(t *testing.T) {
	root := t.TempDir()

	for _, dir := range []string{"..", "../x", "/tmp", ".", "a/../../b"} {
		_, err := Remove(root, []string{dir})
		assert.Error(t, err, dir)
	}
}

func TestRemoveCaches(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"__pycache__",
		"tests/__pycache__",
		"stat_log_db/src/stat_log_db/__pycache__/nested/__pycache__",
		"stat_log_db/src/stat_log_db/modules/log/__pycache__",
		"stat_log_db/src/stat_log_db/pycache",
	)

	removed, err := RemoveCaches(root, "__pycache__")
	require.NoError(t, err)
	assert.Len(t, removed, 4)

	requireNotExist(t, filepath.Join(root, "__pycache__"))
	requireNotExist(t, filepath.Join(root, "tests", "__pycache__"))
	requireNotExist(t, filepath.Join(root, "stat_log_db", "src", "stat_log_db", "__pycache__"))
	requireNotExist(t, filepath.Join(root, "stat_log_db", "src", "stat_log_db", "modules", "log", "__pycache__"))
	require.DirExists(t, filepath.Join(root, "stat_log_db", "src", "stat_log_db", "pycache"))
	require.DirExists(t, filepath.Join(root, "tests"))

	t.Run("Nothing", func(t *testing.T) {
		removed, err := RemoveCaches(root, "__pycache__")
		require.NoError(t, err)
		assert.Empty(t, removed)
	})

	t.Run("BadPattern", func(t *testing.T) {
		_, err := RemoveCaches(root, "[")
		assert.Error(t, err)
	})

	t.Run("MissingRoot", func(t *testing.T) {
		removed, err := RemoveCaches(filepath.Join(root, "nope"), "__pycache__")
		require.NoError(t, err)
		assert.Empty(t, removed)
	})
}
