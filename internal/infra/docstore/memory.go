package docstore

import (
	"context"
	"encoding/json"
	"sync"

	"hummane-api/internal/infra"
)

// MemoryStore is an in-process Store used by unit tests. It mirrors the
// PostgreSQL implementation's semantics, including unique-field enforcement
// on Create, so idempotency paths can be exercised without a database.
type MemoryStore struct {
	mu           sync.RWMutex
	collections  map[string]map[string]json.RawMessage
	uniqueFields map[string][]string // collection -> fields unique within it
}

type MemoryOption func(*MemoryStore)

// WithUniqueField declares a field whose value must be unique across all
// documents of a collection, matching the schema's partial unique indexes.
func WithUniqueField(collection, field string) MemoryOption {
	return func(s *MemoryStore) {
		s.uniqueFields[collection] = append(s.uniqueFields[collection], field)
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		collections:  make(map[string]map[string]json.RawMessage),
		uniqueFields: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Collection(name string) Collection {
	return &memoryCollection{store: s, name: name}
}

func (s *MemoryStore) docs(collection string) map[string]json.RawMessage {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.collections[collection] = docs
	}
	return docs
}

type memoryCollection struct {
	store *MemoryStore
	name  string
}

func (c *memoryCollection) Doc(id string) Document {
	return &memoryDocument{store: c.store, collection: c.name, id: id}
}

func (c *memoryCollection) All(_ context.Context) ([]json.RawMessage, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var result []json.RawMessage
	for _, raw := range c.store.collections[c.name] {
		result = append(result, raw)
	}
	return result, nil
}

func (c *memoryCollection) Where(_ context.Context, field, value string) ([]json.RawMessage, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var result []json.RawMessage
	for _, raw := range c.store.collections[c.name] {
		if fieldEquals(raw, field, value) {
			result = append(result, raw)
		}
	}
	return result, nil
}

type memoryDocument struct {
	store      *MemoryStore
	collection string
	id         string
}

func (d *memoryDocument) Get(_ context.Context) (json.RawMessage, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	raw, ok := d.store.collections[d.collection][d.id]
	if !ok {
		return nil, infra.WrapRepoErr("document not found in "+d.collection, nil, infra.KindNotFound)
	}
	return raw, nil
}

func (d *memoryDocument) Set(_ context.Context, doc any, opts ...SetOption) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return infra.WrapRepoErr("failed to encode document for "+d.collection, err)
	}

	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	docs := d.store.docs(d.collection)
	if existing, ok := docs[d.id]; ok && applyOptions(opts).merge {
		merged, err := mergeDocuments(existing, data)
		if err != nil {
			return infra.WrapRepoErr("failed to merge document in "+d.collection, err)
		}
		docs[d.id] = merged
		return nil
	}

	docs[d.id] = data
	return nil
}

func (d *memoryDocument) Create(_ context.Context, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return infra.WrapRepoErr("failed to encode document for "+d.collection, err)
	}

	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	docs := d.store.docs(d.collection)
	if _, ok := docs[d.id]; ok {
		return infra.WrapRepoErr("document already exists in "+d.collection, nil, infra.KindDuplicateKey)
	}

	for _, field := range d.store.uniqueFields[d.collection] {
		value, ok := stringField(data, field)
		if !ok {
			continue
		}
		for _, raw := range docs {
			if fieldEquals(raw, field, value) {
				return infra.WrapRepoErr("document already exists in "+d.collection, nil, infra.KindDuplicateKey)
			}
		}
	}

	docs[d.id] = data
	return nil
}

func (d *memoryDocument) Delete(_ context.Context) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	delete(d.store.collections[d.collection], d.id)
	return nil
}

func fieldEquals(raw json.RawMessage, field, value string) bool {
	s, ok := stringField(raw, field)
	return ok && s == value
}

func stringField(raw json.RawMessage, field string) (string, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", false
	}
	s, ok := m[field].(string)
	return s, ok
}

func mergeDocuments(existing, patch json.RawMessage) (json.RawMessage, error) {
	var base, overlay map[string]any
	if err := json.Unmarshal(existing, &base); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return nil, err
	}
	for k, v := range overlay {
		base[k] = v
	}
	return json.Marshal(base)
}
