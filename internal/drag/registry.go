package drag

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed tables/*.csv
var embeddedTables embed.FS

// Kind names a standard projectile family.
type Kind string

// Standard drag families.
const (
	G1 Kind = "G1"
	G2 Kind = "G2"
	G5 Kind = "G5"
	G6 Kind = "G6"
	G7 Kind = "G7"
	G8 Kind = "G8"
	GI Kind = "GI"
	GS Kind = "GS"
)

// Kinds lists every recognised drag family.
var Kinds = []Kind{G1, G2, G5, G6, G7, G8, GI, GS}

// ErrUnknownTable is returned when a registry has no table for a kind.
var ErrUnknownTable = errors.New("no drag table registered")

// ParseKind parses a family name case-insensitively.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown drag table kind %q", name)
}

// Registry maps drag families to shared, immutable tables. Tables are
// built once and handed out by pointer; a Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tables map[Kind]*Table
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[Kind]*Table)}
}

// DefaultRegistry returns a registry loaded with the embedded standard tables.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	entries, err := embeddedTables.ReadDir("tables")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded drag tables: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		kind, err := ParseKind(strings.TrimSuffix(name, ".csv"))
		if err != nil {
			return nil, fmt.Errorf("embedded table %s: %w", name, err)
		}
		f, err := embeddedTables.Open("tables/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded table %s: %w", name, err)
		}
		t, err := ReadCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("embedded table %s: %w", name, err)
		}
		r.Register(kind, t)
	}
	return r, nil
}

// Register stores t under kind, replacing any previous table.
func (r *Registry) Register(kind Kind, t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[kind] = t
}

// Table returns the table registered for kind.
func (r *Registry) Table(kind Kind) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[kind]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrUnknownTable, kind)
	}
	return t, nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.tables))
	for k := range r.tables {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
