package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"contexere/internal/domain"
)

func setupTestDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatalf("failed to create dir %s: %v", name, err)
			}
			continue
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", name, err)
		}
	}
	return dir
}

func TestBuildContext_CollectsIdentifiers(t *testing.T) {
	dir := setupTestDir(t,
		"proj22p1a_draft.ipynb",
		"proj22p1a_results.csv",
		"proj22p2a.ipynb",
		"proj22p2b/",
		"README.md",
		".proj22p9z.swp",
		"notes",
	)

	repo := NewRepository(dir)
	hctx, timeline, err := repo.BuildContext(dir)
	if err != nil {
		t.Fatalf("BuildContext failed: %v", err)
	}

	want := []string{"proj22p1a", "proj22p2a", "proj22p2b"}
	if got := timeline.Strings(); !slices.Equal(got, want) {
		t.Errorf("expected timeline %v, got %v", want, got)
	}

	id, _ := domain.ParseIdentifier("proj22p1a")
	if got := hctx.Names(id); !slices.Equal(got, []string{"proj22p1a_draft.ipynb", "proj22p1a_results.csv"}) {
		t.Errorf("unexpected names for proj22p1a: %v", got)
	}
	if hctx.Location != dir {
		t.Errorf("expected context location %s, got %s", dir, hctx.Location)
	}

	if got := repo.Last(timeline); !slices.Equal(got, []string{"proj22p2b"}) {
		t.Errorf("expected last [proj22p2b], got %v", got)
	}
}

func TestBuildContext_RelativeToRoot(t *testing.T) {
	root := setupTestDir(t, "sub/", "sub/x21o1a.md")

	repo := NewRepository(root)
	_, timeline, err := repo.BuildContext("sub")
	if err != nil {
		t.Fatalf("BuildContext failed: %v", err)
	}
	if got := timeline.Strings(); !slices.Equal(got, []string{"x21o1a"}) {
		t.Errorf("unexpected timeline %v", got)
	}

	_, timeline, err = repo.BuildContext("")
	if err != nil {
		t.Fatalf("BuildContext failed: %v", err)
	}
	if len(timeline) != 0 {
		t.Errorf("expected root to hold no identifiers, got %v", timeline.Strings())
	}
}

func TestBuildContext_EmptyAndAmbiguous(t *testing.T) {
	repo := NewRepository("")

	_, timeline, err := repo.BuildContext(setupTestDir(t, "README.md"))
	if err != nil {
		t.Fatalf("BuildContext failed: %v", err)
	}
	if got := repo.Last(timeline); len(got) != 0 {
		t.Errorf("expected no latest identifier, got %v", got)
	}

	_, timeline, err = repo.BuildContext(setupTestDir(t, "a22p3a.md", "b22p3b.md"))
	if err != nil {
		t.Fatalf("BuildContext failed: %v", err)
	}
	if got := repo.Last(timeline); len(got) != 2 {
		t.Errorf("expected two latest identifiers, got %v", got)
	}
}

func TestBuildContext_MissingDirectory(t *testing.T) {
	repo := NewRepository("")

	_, _, err := repo.BuildContext(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestCreateEntry(t *testing.T) {
	dir := setupTestDir(t, "proj22p3a.md")
	repo := NewRepository(dir)

	path, err := repo.CreateEntry("", "proj22p3b.md", false)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if path != filepath.Join(dir, "proj22p3b.md") {
		t.Errorf("unexpected path %s", path)
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		t.Errorf("expected a file at %s", path)
	}

	path, err = repo.CreateEntry(dir, "proj22p3c", true)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Errorf("expected a directory at %s", path)
	}

	if _, err := repo.CreateEntry("", "proj22p3a.md", false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected already exists error, got %v", err)
	}
	if _, err := repo.CreateEntry("", "notes.md", false); err == nil {
		t.Error("expected error for a name without identifier")
	}
	if _, err := repo.CreateEntry("", "../proj22p3d", false); err == nil {
		t.Error("expected error for a name with a path separator")
	}
}

func TestResolveLocation(t *testing.T) {
	abs, err := ResolveLocation("some/dir/..")
	if err != nil {
		t.Fatalf("ResolveLocation failed: %v", err)
	}
	if !filepath.IsAbs(abs) || filepath.Base(abs) != "some" {
		t.Errorf("unexpected location %s", abs)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/work"); got != filepath.Join(home, "work") {
		t.Errorf("expected ~ to expand to %s, got %s", home, got)
	}
}
