package service

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/bkmarketing/post-composer/internal/models"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const largeImageBytes = 1 << 20

func readMediaFile(file *multipart.FileHeader) (models.MediaItem, error) {
	f, err := file.Open()
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("error reading file content: %w", err)
	}

	return decodeMedia(file.Filename, data)
}

// decodeMedia sniffs the content type and encodes data as a data URL.
func decodeMedia(name string, data []byte) (models.MediaItem, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown {
		return models.MediaItem{}, fmt.Errorf("%w: %s", ErrUnsupportedMedia, name)
	}

	var mediaKind models.MediaKind
	switch kind.MIME.Type {
	case "image":
		mediaKind = models.MediaKindImage
	case "video":
		mediaKind = models.MediaKindVideo
	default:
		return models.MediaItem{}, fmt.Errorf("%w: %s is %s", ErrUnsupportedMedia, name, kind.MIME.Value)
	}

	id, err := gonanoid.New()
	if err != nil {
		return models.MediaItem{}, err
	}

	return models.MediaItem{
		ID:           id,
		Kind:         mediaKind,
		SourceData:   fmt.Sprintf("data:%s;base64,%s", kind.MIME.Value, base64.StdEncoding.EncodeToString(data)),
		OriginalName: name,
		MimeType:     kind.MIME.Value,
		Size:         int64(len(data)),
	}, nil
}

func mediaNotice(item models.MediaItem) (string, bool) {
	if item.Kind == models.MediaKindImage && item.Size > largeImageBytes {
		return fmt.Sprintf("%s is larger than 1 MB and may load slowly in the preview", item.OriginalName), true
	}
	return "", false
}
