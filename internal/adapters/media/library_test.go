package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unaigarro/mapstamp/internal/adapters/media"
	"github.com/unaigarro/mapstamp/internal/core/domain"
)

func TestStore_WritesFile(t *testing.T) {
	lib, err := media.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	stored, err := lib.Store(context.Background(), []byte("imagebytes"), domain.MediaMeta{
		Filename:    "office-map",
		Folder:      "offices",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Path != "offices/office-map.png" {
		t.Errorf("unexpected path: %s", stored.Path)
	}
	if stored.SizeBytes != int64(len("imagebytes")) {
		t.Errorf("unexpected size: %d", stored.SizeBytes)
	}
}

func TestStore_CollisionGetsSuffix(t *testing.T) {
	root := t.TempDir()
	lib, err := media.New(root)
	if err != nil {
		t.Fatal(err)
	}
	meta := domain.MediaMeta{Filename: "map", ContentType: "image/png"}

	first, err := lib.Store(context.Background(), []byte("one"), meta)
	if err != nil {
		t.Fatal(err)
	}
	second, err := lib.Store(context.Background(), []byte("two"), meta)
	if err != nil {
		t.Fatal(err)
	}
	if first.Path == second.Path {
		t.Errorf("expected distinct paths, both got %s", first.Path)
	}
	if data, _ := os.ReadFile(filepath.Join(root, first.Path)); string(data) != "one" {
		t.Errorf("original file overwritten: %q", data)
	}
}

func TestStore_SanitizesNames(t *testing.T) {
	lib, err := media.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	stored, err := lib.Store(context.Background(), []byte("x"), domain.MediaMeta{
		Filename:    "My Office MAP!",
		ContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(stored.Path, " !A") {
		t.Errorf("path not sanitized: %s", stored.Path)
	}
	if !strings.HasSuffix(stored.Path, ".jpg") {
		t.Errorf("expected .jpg extension: %s", stored.Path)
	}
}

func TestStore_RejectsEmptyData(t *testing.T) {
	lib, err := media.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Store(context.Background(), nil, domain.MediaMeta{Filename: "x"}); err == nil {
		t.Error("expected error for empty image data")
	}
}

func TestStore_DefaultFilename(t *testing.T) {
	lib, err := media.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	stored, err := lib.Store(context.Background(), []byte("x"), domain.MediaMeta{ContentType: "image/png"})
	if err != nil {
		t.Fatal(err)
	}
	if stored.Path != "static-map.png" {
		t.Errorf("expected default filename, got %s", stored.Path)
	}
}
