// Package samples loads practice texts from a directory.
package samples

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/codetype/internal/engine"
	"github.com/verte-zerg/codetype/internal/model"
)

var (
	// ErrNoSamples means the provider returned an empty catalog.
	ErrNoSamples = errors.New("no samples found")
	// ErrUnknownSample means the requested id is not in the catalog.
	ErrUnknownSample = errors.New("unknown sample")
)

// Provider supplies raw sample texts keyed by id.
type Provider interface {
	Load(ctx context.Context) (Catalog, error)
}

// Catalog maps sample ids to raw text.
type Catalog struct {
	texts map[string]string
}

// NewCatalog builds a catalog from samples; later duplicates win.
func NewCatalog(items []model.Sample) Catalog {
	texts := make(map[string]string, len(items))
	for _, item := range items {
		texts[item.ID] = item.Content
	}
	return Catalog{texts: texts}
}

// Len returns the number of samples.
func (c Catalog) Len() int {
	return len(c.texts)
}

// IDs returns the sample ids in sorted order.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c.texts))
	for id := range c.texts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Raw returns the unmodified text for id.
func (c Catalog) Raw(id string) (string, error) {
	text, ok := c.texts[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSample, id)
	}
	return text, nil
}

// Target returns the normalized typing target for id.
func (c Catalog) Target(id string) (string, error) {
	raw, err := c.Raw(id)
	if err != nil {
		return "", err
	}
	return engine.Normalize(raw), nil
}

// DirProvider reads every regular file in a directory as one sample.
type DirProvider struct {
	Dir string
}

// NewDirProvider returns a provider for dir.
func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{Dir: dir}
}

// Load reads the directory, creating it when missing. Symlinks are
// followed. Hidden files, subdirectories, dangling links and files that are
// not valid UTF-8 are skipped.
func (p *DirProvider) Load(ctx context.Context) (Catalog, error) {
	if p.Dir == "" {
		return Catalog{}, fmt.Errorf("samples directory is empty")
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return Catalog{}, fmt.Errorf("failed to create samples directory: %w", err)
	}
	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read samples directory: %w", err)
	}
	items := make([]model.Sample, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return Catalog{}, err
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(p.Dir, name)
		// Stat follows symlinks, so linked sample files are included.
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				// Dangling symlink.
				continue
			}
			return Catalog{}, fmt.Errorf("failed to stat sample %s: %w", name, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to read sample %s: %w", name, err)
		}
		if !utf8.Valid(data) {
			continue
		}
		items = append(items, model.Sample{ID: name, Content: string(data)})
	}
	return NewCatalog(items), nil
}

// State describes the outcome of the one-shot corpus load.
type State int

const (
	StateLoading State = iota
	StateReady
	StateUnavailable
)

// LoadResult is either a ready catalog or an unavailable condition.
type LoadResult struct {
	State   State
	Catalog Catalog
	Err     error
}

// Load runs the provider once and folds any failure into StateUnavailable.
func Load(ctx context.Context, p Provider) LoadResult {
	catalog, err := p.Load(ctx)
	if err != nil {
		return LoadResult{State: StateUnavailable, Err: err}
	}
	return LoadResult{State: StateReady, Catalog: catalog}
}

// Message returns a user-facing description of the load state.
func (r LoadResult) Message() string {
	switch r.State {
	case StateLoading:
		return "Loading samples..."
	case StateUnavailable:
		if r.Err != nil {
			return fmt.Sprintf("Samples unavailable: %v", r.Err)
		}
		return "Samples unavailable"
	default:
		if r.Catalog.Len() == 0 {
			return ErrNoSamples.Error()
		}
		return fmt.Sprintf("%d samples", r.Catalog.Len())
	}
}
