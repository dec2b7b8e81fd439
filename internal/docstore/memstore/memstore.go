// Package memstore keeps documents in process memory. Documents are held in
// their JSON form so filters see the same field names as the other backends.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/fkhayef/blog/internal/docstore"
)

// jsonIDField is where the identifier lives in a document's JSON form.
const jsonIDField = "id"

type document map[string]any

// Store is an in-memory docstore.Store.
type Store struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]document
	unique      map[string][]string
}

// New creates an empty store.
func New(name string) *Store {
	if name == "" {
		name = "memory"
	}
	return &Store{
		name:        name,
		collections: make(map[string][]document),
		unique:      make(map[string][]string),
	}
}

// Insert stores a copy of doc under a fresh identifier.
func (s *Store) Insert(ctx context.Context, collection string, doc any) (string, error) {
	d, err := toDocument(doc)
	if err != nil {
		return "", docstore.Wrap("insert", err)
	}
	id := docstore.NewID().Hex()
	d[jsonIDField] = id

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, field := range s.unique[collection] {
		for _, existing := range s.collections[collection] {
			if v, ok := d[field].(string); ok && existing[field] == v {
				return "", docstore.ErrDuplicateKey
			}
		}
	}
	s.collections[collection] = append(s.collections[collection], d)
	return id, nil
}

// FindOne decodes the first document matching filter into out.
func (s *Store) FindOne(ctx context.Context, collection string, filter docstore.Filter, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.collections[collection] {
		if matches(d, filter) {
			if err := decode(d, out); err != nil {
				return false, docstore.Wrap("find one", err)
			}
			return true, nil
		}
	}
	return false, nil
}

// FindMany decodes every matching document, in insertion order, into out.
func (s *Store) FindMany(ctx context.Context, collection string, filter docstore.Filter, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]document, 0)
	for _, d := range s.collections[collection] {
		if matches(d, filter) {
			found = append(found, d)
		}
	}
	if err := decode(found, out); err != nil {
		return docstore.Wrap("find many", err)
	}
	return nil
}

// UpdateOne applies update to the first matching document.
func (s *Store) UpdateOne(ctx context.Context, collection string, filter docstore.Filter, update docstore.Update) (int64, error) {
	if update.Op != docstore.OpPush {
		return 0, docstore.Wrap("update one", fmt.Errorf("unsupported update operator %d", update.Op))
	}
	value, err := toValue(update.Value)
	if err != nil {
		return 0, docstore.Wrap("update one", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.collections[collection] {
		if !matches(d, filter) {
			continue
		}
		var items []any
		switch existing := d[update.Field].(type) {
		case nil:
		case []any:
			items = existing
		default:
			return 0, docstore.Wrap("update one", fmt.Errorf("field %q is not an array", update.Field))
		}
		d[update.Field] = append(items, value)
		return 1, nil
	}
	return 0, nil
}

// EnsureUnique rejects future inserts that repeat a value of field.
func (s *Store) EnsureUnique(ctx context.Context, collection, field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.unique[collection] {
		if f == field {
			return nil
		}
	}
	s.unique[collection] = append(s.unique[collection], field)
	return nil
}

// Collections lists the names of collections holding at least one document.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Name() string { return s.name }

func (s *Store) Close(ctx context.Context) error { return nil }

func matches(d document, filter docstore.Filter) bool {
	for _, p := range filter {
		if !matchPredicate(d, p) {
			return false
		}
	}
	return true
}

func matchPredicate(d document, p docstore.Predicate) bool {
	field := p.Field
	if field == docstore.IDField {
		field = jsonIDField
	}
	want := p.StringValue()

	switch p.Op {
	case docstore.OpEq:
		got, ok := d[field].(string)
		return ok && got == want
	case docstore.OpContains:
		items, ok := d[field].([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func toDocument(doc any) (document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var d document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("document must encode as an object: %w", err)
	}
	return d, nil
}

func toValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(v any, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
