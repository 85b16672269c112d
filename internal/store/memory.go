package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// Memory is an in-process Store used for tests and local development.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	seq         map[string]uint64
	next        uint64
	now         func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]Document),
		seq:         make(map[string]uint64),
		now:         time.Now,
	}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

func (m *Memory) Create(ctx context.Context, collection string, data Document) (string, error) {
	id := uuid.New().String()
	stamp := utils.FormatISO(m.now())

	doc := Normalize(data)
	if doc == nil {
		doc = Document{}
	}
	doc[FieldID] = id
	doc[FieldCreatedAt] = stamp
	doc[FieldUpdatedAt] = stamp

	m.mu.Lock()
	defer m.mu.Unlock()
	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string]Document)
		m.collections[collection] = coll
	}
	coll[id] = doc
	m.next++
	m.seq[id] = m.next
	return id, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return Normalize(doc), nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, patch Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	m.apply(doc, patch)
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.collections[collection], id)
	delete(m.seq, id)
	return nil
}

// List returns matching documents, most recently created first.
func (m *Memory) List(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Document, 0, len(m.collections[collection]))
	for _, doc := range m.collections[collection] {
		if Matches(doc, filters) {
			out = append(out, Normalize(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return m.seq[out[i][FieldID].(string)] > m.seq[out[j][FieldID].(string)]
	})
	return out, nil
}

func (m *Memory) UpdateMany(ctx context.Context, collection string, patches map[string]Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	coll := m.collections[collection]
	for id := range patches {
		if _, ok := coll[id]; !ok {
			return ErrNotFound
		}
	}
	for id, patch := range patches {
		m.apply(coll[id], patch)
	}
	return nil
}

func (m *Memory) apply(doc, patch Document) {
	for k, v := range Normalize(patch) {
		if k == FieldID || k == FieldCreatedAt {
			continue
		}
		doc[k] = v
	}
	doc[FieldUpdatedAt] = utils.FormatISO(m.now())
}
