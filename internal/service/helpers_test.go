package service

import (
	"bytes"
	"mime/multipart"
	"testing"
	"time"

	config "github.com/bkmarketing/post-composer/configs"
	"github.com/bkmarketing/post-composer/internal/models"
	"github.com/bkmarketing/post-composer/internal/repository"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 24)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 28)...)
	mp4Bytes  = append([]byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2'}, make([]byte, 20)...)
	textBytes = []byte("just some plain text, not media")
)

var testNow = time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestDraftService(t *testing.T) (*draftService, repository.DraftRepository) {
	t.Helper()
	dr := repository.NewDraftRepository()
	pr := repository.NewPageRepository(models.PageCatalog)
	s := NewDraftService(config.Config{Timezone: "UTC"}, dr, pr).(*draftService)
	s.now = func() time.Time { return testNow }
	return s, dr
}

type testFile struct {
	name string
	data []byte
}

func fileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["files"]
}
