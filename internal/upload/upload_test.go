package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/events", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), logrus.New())
	require.NoError(t, err)
	return s
}

func TestStore_SaveImage(t *testing.T) {
	s := newTestStore(t)

	req := multipartRequest(t, "image", "poster.PNG", pngHeader)
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	defer file.Close()

	path, err := s.Save(file, header)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, URLPrefix), "path %q should be under %s", path, URLPrefix)
	assert.True(t, strings.HasSuffix(path, ".png"), "extension should be lower-cased: %q", path)

	// The stored file holds the full upload
	data, err := os.ReadFile(filepath.Join(s.Dir(), filepath.Base(path)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestStore_SaveRejectsNonImage(t *testing.T) {
	s := newTestStore(t)

	req := multipartRequest(t, "image", "notes.txt", []byte("just some text"))
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	defer file.Close()

	_, err = s.Save(file, header)
	require.ErrorIs(t, err, ErrNotImage)

	// Nothing was written
	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_GeneratedNamesDoNotCollide(t *testing.T) {
	s := newTestStore(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		req := multipartRequest(t, "image", "same-name.png", pngHeader)
		file, header, err := req.FormFile("image")
		require.NoError(t, err)
		path, err := s.Save(file, header)
		file.Close()
		require.NoError(t, err)
		assert.False(t, seen[path], "duplicate generated path %q", path)
		seen[path] = true
	}
}

func TestStore_RemoveBestEffort(t *testing.T) {
	s := newTestStore(t)

	req := multipartRequest(t, "image", "poster.png", pngHeader)
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	defer file.Close()

	path, err := s.Save(file, header)
	require.NoError(t, err)

	s.Remove(path)
	_, err = os.Stat(filepath.Join(s.Dir(), filepath.Base(path)))
	assert.True(t, os.IsNotExist(err))

	// Removing again, a missing file or an empty path must not panic
	s.Remove(path)
	s.Remove("")
	s.Remove("/uploads/never-existed.png")
}
