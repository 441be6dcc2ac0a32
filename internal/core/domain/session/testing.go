package session

import (
	"context"
	"sync"
)

type SetCall struct {
	ID    ID
	Key   string
	Value string
}

type FakeStore struct {
	Values   map[ID]map[string]string
	SetCalls []SetCall
	GetError error
	SetError error
	lock     sync.Mutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{Values: make(map[ID]map[string]string)}
}

func (s *FakeStore) Get(ctx context.Context, id ID, key string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.GetError != nil {
		return "", s.GetError
	}
	return s.Values[id][key], nil
}

func (s *FakeStore) Set(ctx context.Context, id ID, key string, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SetCalls = append(s.SetCalls, SetCall{ID: id, Key: key, Value: value})
	if s.SetError != nil {
		return s.SetError
	}
	s.put(id, key, value)
	return nil
}

// Put sets a slot without recording the call.
func (s *FakeStore) Put(id ID, key string, value string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.put(id, key, value)
}

func (s *FakeStore) Value(id ID, key string) (string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	value, ok := s.Values[id][key]
	return value, ok
}

func (s *FakeStore) put(id ID, key string, value string) {
	if _, ok := s.Values[id]; !ok {
		s.Values[id] = make(map[string]string)
	}
	s.Values[id][key] = value
}

type FakeIDGenerator struct {
	IDs []ID
	n   int
}

func NewFakeIDGenerator(ids ...ID) *FakeIDGenerator {
	return &FakeIDGenerator{IDs: ids}
}

func (g *FakeIDGenerator) GenerateID() ID {
	id := g.IDs[g.n%len(g.IDs)]
	g.n++
	return id
}
