package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/media/port"
)

// DiskUploader is a local-filesystem stand-in for the external media
// service. Files are content-addressed so repeated uploads of the same
// bytes are idempotent.
type DiskUploader struct {
	dir     string
	baseURL string
}

func NewDiskUploader(dir, baseURL string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create dir: %w", err)
	}
	return &DiskUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

var _ port.Uploader = (*DiskUploader)(nil)

func (u *DiskUploader) Upload(ctx context.Context, data []byte, kind string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", apperr.ErrUpload)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUpload, err)
	}

	sum := sha256.Sum256(data)
	name := hex.EncodeToString(sum[:]) + extForKind(kind)
	path := filepath.Join(u.dir, name)

	if _, err := os.Stat(path); err != nil {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("%w: %v", apperr.ErrUpload, err)
		}
	}
	return u.baseURL + "/" + name, nil
}

func extForKind(kind string) string {
	switch kind {
	case "image":
		return ".jpg"
	case "video":
		return ".mp4"
	default:
		return ".bin"
	}
}
