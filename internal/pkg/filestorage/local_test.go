package filestorage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func TestSaveFileWithPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	path, err := storage.SaveFileWithPath(uploadedFile(t, "photo.jpg", "image-bytes"), "posts")
	require.NoError(t, err)

	// Served under the base URL, stored with a generated name
	assert.True(t, strings.HasPrefix(path, "http://localhost:8080/uploads/posts/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))
	assert.NotContains(t, path, "photo")

	entries, err := os.ReadDir(filepath.Join(dir, "posts"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, "posts", entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestSaveFileWithPath_NilFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	path, err := storage.SaveFileWithPath(nil, "posts")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	path, err := storage.SaveFileWithPath(uploadedFile(t, "photo.png", "x"), "posts")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(path))

	entries, err := os.ReadDir(filepath.Join(dir, "posts"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Deleting again is a no-op
	assert.NoError(t, storage.DeleteFile(path))
}

func TestDeleteFile_EmptyPath(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	assert.NoError(t, storage.DeleteFile(""))
}
