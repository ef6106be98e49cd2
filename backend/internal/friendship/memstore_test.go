package friendship

import (
	"context"
	"sync"
	"time"
)

// memStore is an in-memory Store. One mutex serializes every unit of work,
// which is the guarantee the graph store gives per pair.
type memStore struct {
	mu        sync.Mutex
	users     map[string]struct{}
	edges     []Edge
	failWith  error // returned by InPairTx and AcceptedNeighbours when set
	failOnTx  error // returned by PairTx.Create when set
	txCount   int
	friendsOf func(userID string) []string
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]struct{})}
}

func (m *memStore) InPairTx(ctx context.Context, a, b string, fn func(tx PairTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	m.txCount++

	users := make(map[string]struct{}, len(m.users))
	for id := range m.users {
		users[id] = struct{}{}
	}
	edges := append([]Edge(nil), m.edges...)

	m.users[a] = struct{}{}
	m.users[b] = struct{}{}

	if err := fn(&memTx{store: m, a: a, b: b}); err != nil {
		m.users = users
		m.edges = edges
		return err
	}
	return nil
}

func (m *memStore) AcceptedNeighbours(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.friendsOf != nil {
		return m.friendsOf(userID), nil
	}

	var out []string
	for _, e := range m.edges {
		if e.Kind != KindAccepted {
			continue
		}
		switch userID {
		case e.From:
			out = append(out, e.To)
		case e.To:
			out = append(out, e.From)
		}
	}
	return out, nil
}

// seed inserts an edge directly, bypassing the rules.
func (m *memStore) seed(from, to string, kind Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[from] = struct{}{}
	m.users[to] = struct{}{}
	m.edges = append(m.edges, Edge{From: from, To: to, Kind: kind, CreatedAt: time.Now().UTC()})
}

// between returns the edges connecting a and b in either direction.
func (m *memStore) between(a, b string) []Edge {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Edge
	for _, e := range m.edges {
		if e.Involves(a, b) {
			out = append(out, e)
		}
	}
	return out
}

func (m *memStore) hasUser(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok
}

type memTx struct {
	store *memStore
	a, b  string
}

func (t *memTx) Edges(ctx context.Context) ([]Edge, error) {
	var out []Edge
	for _, e := range t.store.edges {
		if e.Involves(t.a, t.b) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (t *memTx) Delete(ctx context.Context, target Edge) error {
	kept := t.store.edges[:0]
	for _, e := range t.store.edges {
		if e.From == target.From && e.To == target.To && e.Kind == target.Kind {
			continue
		}
		kept = append(kept, e)
	}
	t.store.edges = kept
	return nil
}

func (t *memTx) Create(ctx context.Context, from, to string, kind Kind) (Edge, error) {
	if t.store.failOnTx != nil {
		return Edge{}, t.store.failOnTx
	}
	e := Edge{From: from, To: to, Kind: kind, CreatedAt: time.Now().UTC()}
	t.store.edges = append(t.store.edges, e)
	return e, nil
}
