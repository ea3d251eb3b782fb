// Package media is the filesystem media library: it writes downloaded
// map images under a root directory, grouped by folder, with sanitized
// filenames and extensions derived from the content type.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/unaigarro/mapstamp/internal/core/domain"
)

// Library implements ports.MediaStore.
type Library struct {
	root string
}

// New creates the library root if needed.
func New(root string) (*Library, error) {
	if root == "" {
		root = "./media"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Library{root: root}, nil
}

// Store writes the image atomically (temp file + rename) and returns
// the library-relative path. Name collisions get a content-hash suffix
// instead of overwriting an existing asset.
func (l *Library) Store(ctx context.Context, data []byte, meta domain.MediaMeta) (*domain.StoredFile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("refusing to store empty image")
	}

	folder := sanitize(meta.Folder)
	name := sanitize(meta.Filename)
	if name == "" {
		name = "static-map"
	}
	ext := extensionFor(meta.ContentType)

	dir := l.root
	rel := name + ext
	if folder != "" {
		dir = filepath.Join(l.root, folder)
		rel = filepath.Join(folder, name+ext)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create folder: %w", err)
		}
	}

	dest := filepath.Join(dir, name+ext)
	if _, err := os.Stat(dest); err == nil {
		sum := sha1.Sum(data)
		suffix := hex.EncodeToString(sum[:4])
		rel = strings.TrimSuffix(rel, ext) + "-" + suffix + ext
		dest = filepath.Join(l.root, rel)
	}

	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("finalize image: %w", err)
	}

	return &domain.StoredFile{Path: filepath.ToSlash(rel), SizeBytes: int64(len(data))}, nil
}

// sanitize reduces a name to lowercase letters, digits, and dashes.
func sanitize(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			sb.WriteByte('-')
		}
	}
	return strings.Trim(sb.String(), "-")
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	default:
		return ".img"
	}
}
