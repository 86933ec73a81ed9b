package fsutil

import (
	"io"
	"path/filepath"
	"sort"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}
	if fs.Exists("no_such_track.png") {
		t.Error("expected missing file to not exist")
	}
}

func TestOSFileSystem_CreateAndOpen(t *testing.T) {
	fs := OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "frames", "ep")

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	path := filepath.Join(dir, "frame.png")
	w, err := fs.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("pixels")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := fs.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "pixels" {
		t.Errorf("expected %q, got %q", "pixels", data)
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.WriteFile("/tracks/loop.png", []byte("img"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := mfs.ReadFile("/tracks/loop.png")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "img" {
		t.Errorf("expected %q, got %q", "img", data)
	}

	// returned slice is a copy
	data[0] = 'X'
	again, _ := mfs.ReadFile("/tracks/loop.png")
	if string(again) != "img" {
		t.Errorf("stored data modified through returned slice: %q", again)
	}
}

func TestMemoryFileSystem_CreateCommitsOnClose(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/out/frame_0001.png")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !mfs.Exists("/out/frame_0001.png") {
		t.Error("expected file to exist after Create")
	}
	w.Write([]byte("abc"))
	w.Write([]byte("def"))
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, _ := mfs.ReadFile("/out/frame_0001.png")
	if string(data) != "abcdef" {
		t.Errorf("expected %q, got %q", "abcdef", data)
	}
}

func TestMemoryFileSystem_Open(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/a/b.txt", []byte("hello"), 0o644)

	f, err := mfs.Open("/a/./b.txt")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "b.txt" || info.Size() != 5 || info.IsDir() {
		t.Errorf("unexpected file info: name=%s size=%d dir=%v", info.Name(), info.Size(), info.IsDir())
	}

	data, _ := io.ReadAll(f)
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", data)
	}

	if _, err := mfs.Open("/a/missing.txt"); err == nil {
		t.Error("expected error opening missing file")
	}
	if _, err := mfs.ReadFile("/a/missing.txt"); err == nil {
		t.Error("expected error reading missing file")
	}
}

func TestMemoryFileSystem_Exists(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/tracks/user/loop.png", nil, 0o644)
	mfs.MkdirAll("/frames/run1", 0o755)

	for _, p := range []string{"/tracks/user/loop.png", "/tracks/user", "/tracks", "/frames/run1", "/frames"} {
		if !mfs.Exists(p) {
			t.Errorf("expected %s to exist", p)
		}
	}
	if mfs.Exists("/tracks/other") {
		t.Error("expected /tracks/other to not exist")
	}
}

func TestMemoryFileSystem_Files(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/frames/0001.png", nil, 0o644)
	mfs.WriteFile("/frames/0002.png", nil, 0o644)
	mfs.WriteFile("/framesx/0003.png", nil, 0o644)

	got := mfs.Files("/frames")
	sort.Strings(got)
	if len(got) != 2 || got[0] != "/frames/0001.png" || got[1] != "/frames/0002.png" {
		t.Errorf("unexpected files: %v", got)
	}
}
