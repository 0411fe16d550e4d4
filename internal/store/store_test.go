package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/codetype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "codetype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestThemeRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.Theme(ctx); err != nil || ok {
		t.Fatalf("expected no stored theme, got ok=%v err=%v", ok, err)
	}
	if err := st.SetTheme(ctx, model.ThemeLight); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if err := st.SetTheme(ctx, model.ThemeDark); err != nil {
		t.Fatalf("overwrite theme: %v", err)
	}
	theme, ok, err := st.Theme(ctx)
	if err != nil || !ok {
		t.Fatalf("get theme: ok=%v err=%v", ok, err)
	}
	if theme != model.ThemeDark {
		t.Fatalf("expected dark, got %s", theme)
	}
}

func TestInvalidStoredThemeIgnored(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.SetPreference(ctx, keyTheme, "solarized"); err != nil {
		t.Fatalf("set preference: %v", err)
	}
	if _, ok, err := st.Theme(ctx); err != nil || ok {
		t.Fatalf("expected invalid theme to be ignored, got ok=%v err=%v", ok, err)
	}
}

func TestLastSample(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.SetLastSample(ctx, "main.go"); err != nil {
		t.Fatalf("set last sample: %v", err)
	}
	id, ok, err := st.LastSample(ctx)
	if err != nil || !ok || id != "main.go" {
		t.Fatalf("unexpected last sample %q ok=%v err=%v", id, ok, err)
	}
}

func TestReopenKeepsPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codetype.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.SetTheme(context.Background(), model.ThemeLight); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	theme, ok, err := st.Theme(context.Background())
	if err != nil || !ok || theme != model.ThemeLight {
		t.Fatalf("expected persisted light theme, got %s ok=%v err=%v", theme, ok, err)
	}
}
