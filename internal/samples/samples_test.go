package samples

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/codetype/internal/engine"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDirProviderLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\r\n\tfunc main() {}\r\n")
	writeFile(t, dir, "b.py", "print('hi')\n")
	writeFile(t, dir, ".hidden", "secret")
	writeFile(t, dir, "blob.bin", string([]byte{0xff, 0xfe, 0x00}))
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	catalog, err := NewDirProvider(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ids := catalog.IDs()
	if len(ids) != 2 || ids[0] != "b.py" || ids[1] != "main.go" {
		t.Fatalf("unexpected ids: %v", ids)
	}
	raw, err := catalog.Raw("main.go")
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if raw != "package main\r\n\tfunc main() {}\r\n" {
		t.Fatalf("raw text must be unmodified, got %q", raw)
	}
	target, err := catalog.Target("main.go")
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if target != "package main\n    func main() {}\n" {
		t.Fatalf("unexpected normalized target %q", target)
	}
}

func TestDirProviderFollowsSymlinks(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "shared.go", "package shared")
	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(src, "shared.go"), filepath.Join(dir, "linked.go")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(src, "gone.go"), filepath.Join(dir, "dangling.go")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(src, filepath.Join(dir, "linkdir")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	catalog, err := NewDirProvider(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ids := catalog.IDs()
	if len(ids) != 1 || ids[0] != "linked.go" {
		t.Fatalf("expected only the linked file, got %v", ids)
	}
	raw, err := catalog.Raw("linked.go")
	if err != nil || raw != "package shared" {
		t.Fatalf("unexpected linked content %q err=%v", raw, err)
	}
}

func TestByteOrderMarkSampleOffset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bom.go", "\uFEFFpackage main\r\n")
	catalog, err := NewDirProvider(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	target, err := catalog.Target("bom.go")
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if got := engine.LocateFirstTypable(target); got != 1 {
		t.Fatalf("expected byte order mark to be skipped, got offset %d", got)
	}
}

func TestDirProviderCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "samples")
	catalog, err := NewDirProvider(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if catalog.Len() != 0 {
		t.Fatalf("expected empty catalog")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to be created: %v", err)
	}
}

func TestUnknownSample(t *testing.T) {
	var catalog Catalog
	if _, err := catalog.Target("nope"); !errors.Is(err, ErrUnknownSample) {
		t.Fatalf("expected ErrUnknownSample, got %v", err)
	}
}

type failingProvider struct{}

func (failingProvider) Load(context.Context) (Catalog, error) {
	return Catalog{}, errors.New("disk on fire")
}

func TestLoadUnavailable(t *testing.T) {
	res := Load(context.Background(), failingProvider{})
	if res.State != StateUnavailable {
		t.Fatalf("expected unavailable, got %v", res.State)
	}
	if res.Message() != "Samples unavailable: disk on fire" {
		t.Fatalf("unexpected message %q", res.Message())
	}
}

func TestLoadReady(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a")
	res := Load(context.Background(), NewDirProvider(dir))
	if res.State != StateReady || res.Catalog.Len() != 1 {
		t.Fatalf("expected ready catalog with 1 sample, got %+v", res)
	}
	if res.Message() != "1 samples" {
		t.Fatalf("unexpected message %q", res.Message())
	}
}

func TestFilter(t *testing.T) {
	ids := []string{"handler.go", "main.go", "server.py"}
	if got := Filter(ids, ""); len(got) != 3 || got[0] != "handler.go" {
		t.Fatalf("empty query should keep order, got %v", got)
	}
	got := Filter(ids, "mgo")
	if len(got) != 1 || got[0] != "main.go" {
		t.Fatalf("expected main.go, got %v", got)
	}
	if got := Filter(ids, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.Start()
	t.Cleanup(func() {
		_ = w.Stop()
	})

	writeFile(t, dir, "new.go", "package x")
	select {
	case <-w.Changes:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected change notification")
	}
}
