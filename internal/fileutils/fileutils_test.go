package fileutils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/finance-manager/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	// Existing directory and the working directory are no-ops
	assert.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.NoError(t, fileutils.EnsureDirectoryExists("."))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "budgets.csv")

	require.NoError(t, fileutils.WriteFile(path, []byte("category\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "category\n", string(data))
}

func TestOpenFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0600))

	file, err := fileutils.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	_, err = fileutils.OpenFile(filepath.Join(tmpDir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transactions.csv")

	file, err := fileutils.CreateFile(path)
	require.NoError(t, err)
	_, err = file.WriteString("date,kind\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.True(t, fileutils.FileExists(path))
}
