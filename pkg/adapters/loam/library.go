// Package loam adapts the Loam document library to the circuit store ports.
// Each circuit is one markdown file whose frontmatter carries the persisted
// document, so a circuit library is a plain directory that diffs well and
// can live in version control next to its notes.
package loam

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/breadboard/pkg/domain"
	"github.com/aretw0/breadboard/pkg/schema"
)

// Library implements ports.CircuitStore on a Loam repository.
type Library struct {
	dir   string
	base  core.Repository
	typed *loam.TypedRepository[CircuitMetadata]
}

// Open initializes a Loam repository in the given directory and wraps it.
func Open(dir string) (*Library, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve library dir: %w", err)
	}
	repo, err := loam.Init(abs)
	if err != nil {
		return nil, fmt.Errorf("open circuit library at %s: %w", abs, err)
	}
	return New(abs, repo), nil
}

// New wraps an already initialized repository rooted at dir.
func New(dir string, repo core.Repository) *Library {
	return &Library{
		dir:   dir,
		base:  repo,
		typed: loam.NewTypedRepository[CircuitMetadata](repo),
	}
}

// Dir returns the directory the library is rooted at.
func (l *Library) Dir() string {
	return l.dir
}

// LoadCircuit reads the named document and rebuilds a fresh circuit graph.
// The library wires itself into any sub-circuit components so nested
// references resolve against the same directory.
func (l *Library) LoadCircuit(name string) (*domain.Circuit, error) {
	doc, err := l.typed.Get(context.Background(), name)
	if err != nil {
		return nil, fmt.Errorf("circuit %q: %w", name, domain.ErrCircuitNotFound)
	}
	return doc.Data.toDocument(trimExtension(doc.ID)).Circuit(schema.WithLoader(l))
}

// ListCircuits returns the names of every circuit document, with collision
// detection between a frontmatter name and another file's name.
func (l *Library) ListCircuits() ([]string, error) {
	docs, err := l.typed.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		raw := doc.Data.Name
		if raw == "" {
			raw = doc.ID
		}
		name := trimExtension(raw)
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: circuit %q is defined in both %q and %q", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	return names, nil
}

// Documents returns the persisted form of every circuit in the library,
// without decoding into live graphs. Defects that decoding would silently
// drop are still present here, which is what validation wants.
func (l *Library) Documents(ctx context.Context) ([]*schema.Document, error) {
	docs, err := l.typed.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	out := make([]*schema.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Data.toDocument(trimExtension(doc.ID)))
	}
	return out, nil
}

// SaveCircuit writes the circuit as a markdown document with the persisted
// form in its frontmatter.
func (l *Library) SaveCircuit(ctx context.Context, name string, circuit *domain.Circuit) error {
	doc := schema.FromCircuit(circuit)
	doc.Name = name

	front, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("save circuit %q: %w", name, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n# ")
	b.WriteString(name)
	b.WriteString("\n")

	err = l.base.Save(ctx, core.Document{ID: name + ".md", Content: b.String()})
	if err != nil {
		return fmt.Errorf("save circuit %q: %w", name, err)
	}
	return nil
}

// DeleteCircuit removes the circuit's file. The document id maps directly to
// a markdown file under the library directory.
func (l *Library) DeleteCircuit(_ context.Context, name string) error {
	path := filepath.Join(l.dir, name+".md")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("circuit %q: %w", name, domain.ErrCircuitNotFound)
		}
		return fmt.Errorf("delete circuit %q: %w", name, err)
	}
	return nil
}

// Watch implements ports.Watchable, emitting the name of each changed
// circuit document.
func (l *Library) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.typed.Watch(ctx, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
