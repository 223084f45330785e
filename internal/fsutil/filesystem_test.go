package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// both runs a test against the OS filesystem (rooted in a temp dir) and the
// in-memory one so the two stay behaviourally aligned.
func both(t *testing.T, fn func(t *testing.T, fsys FileSystem, root string)) {
	t.Run("os", func(t *testing.T) {
		fn(t, OSFileSystem{}, t.TempDir())
	})
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryFileSystem(), "/work")
	})
}

func TestFileSystem_WriteAndRead(t *testing.T) {
	both(t, func(t *testing.T, fsys FileSystem, root string) {
		dir := filepath.Join(root, "projects", "kitchen")
		require.NoError(t, fsys.MkdirAll(dir, 0755))

		path := filepath.Join(dir, "config.json")
		require.NoError(t, fsys.WriteFile(path, []byte(`{"name":"kitchen"}`), 0644))

		data, err := fsys.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"kitchen"}`, string(data))

		require.NoError(t, fsys.WriteFile(path, []byte("{}"), 0644))
		data, err = fsys.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data), "write replaces the whole file")
	})
}

func TestFileSystem_Missing(t *testing.T) {
	both(t, func(t *testing.T, fsys FileSystem, root string) {
		path := filepath.Join(root, "nope.json")

		_, err := fsys.ReadFile(path)
		assert.True(t, errors.Is(err, fs.ErrNotExist))

		_, err = fsys.Stat(path)
		assert.True(t, errors.Is(err, fs.ErrNotExist))

		assert.False(t, fsys.Exists(path))
		assert.False(t, IsDir(fsys, path))

		_, err = fsys.ReadDir(filepath.Join(root, "missing"))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestFileSystem_ReadDirSorted(t *testing.T) {
	both(t, func(t *testing.T, fsys FileSystem, root string) {
		projects := filepath.Join(root, "projects")
		for _, name := range []string{"workshop", "garage", "office"} {
			require.NoError(t, fsys.MkdirAll(filepath.Join(projects, name), 0755))
		}
		require.NoError(t, fsys.WriteFile(filepath.Join(projects, "notes.txt"), []byte("x"), 0644))

		entries, err := fsys.ReadDir(projects)
		require.NoError(t, err)

		var names []string
		var dirs []string
		for _, e := range entries {
			names = append(names, e.Name())
			if e.IsDir() {
				dirs = append(dirs, e.Name())
			}
		}
		assert.Equal(t, []string{"garage", "notes.txt", "office", "workshop"}, names)
		assert.Equal(t, []string{"garage", "office", "workshop"}, dirs)
	})
}

func TestFileSystem_Stat(t *testing.T) {
	both(t, func(t *testing.T, fsys FileSystem, root string) {
		dir := filepath.Join(root, "out")
		file := filepath.Join(dir, "bin.stl")
		require.NoError(t, fsys.MkdirAll(dir, 0755))
		require.NoError(t, fsys.WriteFile(file, []byte("solid"), 0644))

		info, err := fsys.Stat(file)
		require.NoError(t, err)
		assert.False(t, info.IsDir())
		assert.Equal(t, int64(5), info.Size())
		assert.True(t, IsDir(fsys, dir))
		assert.False(t, IsDir(fsys, file))
	})
}

func TestMemoryFileSystem_WriteRegistersParents(t *testing.T) {
	mfs := NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("projects/a/config.json", []byte("{}"), 0644))

	assert.True(t, IsDir(mfs, "projects"))
	assert.True(t, IsDir(mfs, "projects/a"))
	assert.True(t, mfs.Exists("./projects/a/config.json"), "paths are cleaned")
}

func TestMemoryFileSystem_DataIsolation(t *testing.T) {
	mfs := NewMemoryFileSystem()
	original := []byte("abc")
	require.NoError(t, mfs.WriteFile("/f", original, 0644))
	original[0] = 'z'

	data, err := mfs.ReadFile("/f")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	data[1] = 'z'
	again, err := mfs.ReadFile("/f")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryFileSystem_FileDirConflicts(t *testing.T) {
	mfs := NewMemoryFileSystem()
	require.NoError(t, mfs.MkdirAll("/a/b", 0755))
	assert.Error(t, mfs.WriteFile("/a/b", []byte("x"), 0644))

	require.NoError(t, mfs.WriteFile("/c", []byte("x"), 0644))
	assert.Error(t, mfs.MkdirAll("/c", 0755))
}
