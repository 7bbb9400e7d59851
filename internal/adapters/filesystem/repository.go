package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"contexere/internal/domain"
	"contexere/internal/ports"
)

// Repository implements ports.HistoryProvider by scanning a directory for
// names that start with an identifier
type Repository struct {
	root string
}

var (
	_ ports.HistoryProvider = (*Repository)(nil)
	_ ports.EntryCreator    = (*Repository)(nil)
)

// NewRepository creates a new filesystem repository. Relative locations are
// resolved against root.
func NewRepository(root string) *Repository {
	return &Repository{root: ExpandPath(root)}
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

// ResolveLocation returns the absolute, cleaned form of a location so that
// the same directory always maps to the same ledger key
func ResolveLocation(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

// BuildContext scans a single directory (not recursively). Hidden entries and
// names without a leading identifier are skipped.
func (r *Repository) BuildContext(location string) (*domain.HistoryContext, domain.Timeline, error) {
	dir := r.resolve(location)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	hctx := domain.NewHistoryContext(location)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		id, ok := domain.MatchIdentifier(name)
		if !ok {
			continue
		}
		hctx.Add(id, name)
	}

	return hctx, hctx.Timeline(), nil
}

// Last returns the latest identifiers of the timeline
func (r *Repository) Last(timeline domain.Timeline) []string {
	return timeline.Last().Strings()
}

// CreateEntry creates an empty file, or a directory when dir is set, named
// name inside location. Existing entries are never overwritten.
func (r *Repository) CreateEntry(location, name string, dir bool) (string, error) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid entry name %q", name)
	}
	if _, ok := domain.MatchIdentifier(name); !ok {
		return "", fmt.Errorf("entry name %q does not start with an identifier", name)
	}

	path := filepath.Join(r.resolve(location), name)

	if dir {
		if err := os.Mkdir(path, 0755); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return "", fmt.Errorf("%s already exists", path)
			}
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
		return path, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%s already exists", path)
		}
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	return path, nil
}

// resolve maps a location to a directory: empty means root, ~ is expanded and
// relative paths are joined to root
func (r *Repository) resolve(location string) string {
	if location == "" {
		return r.root
	}
	location = ExpandPath(location)
	if filepath.IsAbs(location) || r.root == "" {
		return location
	}
	return filepath.Join(r.root, location)
}
