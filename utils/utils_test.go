package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateDirIfNotExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config", "db")
	assert.False(t, FileExist(dir))

	err := CreateDirIfNotExist(dir)
	assert.Nil(t, err)
	assert.True(t, FileExist(dir), "Expected nested dir to be created")

	// Calling it again on an existing dir is a no-op
	err = CreateDirIfNotExist(dir)
	assert.Nil(t, err)
}

func TestFileExist(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "server.yml")
	assert.False(t, FileExist(filePath))

	err := os.WriteFile(filePath, []byte("rolodex:"), 0600)
	assert.Nil(t, err)
	assert.True(t, FileExist(filePath))
}
