package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/blogicum/internal/blog"
)

const (
	mediaPrefix   = "/media"
	imageField    = "image"
	maxImageBytes = 5 << 20
)

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// saveImage stores the uploaded post image under the media directory and
// returns its public path. It returns "" when the request carries no file.
func (h *Handler) saveImage(c echo.Context) (string, error) {
	if h.mediaDir == "" {
		return "", nil
	}

	header, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	if header.Size > maxImageBytes {
		return "", imageError("the file is larger than 5 MB")
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	if !slices.ContainsFunc(imageTypes, mtype.Is) {
		return "", imageError("upload a JPEG, PNG, GIF or WebP image")
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(h.mediaDir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.NewString() + mtype.Extension()
	dst, err := os.Create(filepath.Join(h.mediaDir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return path.Join(mediaPrefix, name), nil
}

func imageError(message string) error {
	return &blog.ValidationError{Fields: map[string]string{imageField: message}}
}
