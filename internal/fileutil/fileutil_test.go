package fileutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"remixd/internal/fileutil"
)

func TestWriteStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.mp3")
	n, err := fileutil.WriteStream(path, strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatalf("WriteStream returned error: %v", err)
	}
	if n != int64(len("audio-bytes")) {
		t.Fatalf("unexpected byte count: %d", n)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "audio-bytes" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestWriteStreamTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.mp3")
	if _, err := fileutil.WriteStream(path, strings.NewReader("a longer first payload")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := fileutil.WriteStream(path, strings.NewReader("short")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "short" {
		t.Fatalf("expected truncation, got %q", content)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if fileutil.Exists(path) {
		t.Fatal("missing file reported as existing")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !fileutil.Exists(path) {
		t.Fatal("existing file reported as missing")
	}
	if fileutil.Exists(dir) {
		t.Fatal("directory must not count as a regular file")
	}
}
