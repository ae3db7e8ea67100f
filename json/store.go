package json

import (
	"errors"
	"io/fs"
	"maps"
	"sync"

	"github.com/CoderFake/ragchat"
)

var _ ragchat.StateStore = (*FileStore)(nil)

// FileStore is a StateStore backed by a single JSON file. It is safe for
// concurrent use.
type FileStore struct {
	path string

	mu    sync.RWMutex
	state ragchat.State
}

// NewFileStore returns a store for path. Call Init before use.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, state: ragchat.DefaultState()}
}

// Init loads the file, writing defaults when it does not exist yet.
func (s *FileStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := Load(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.state = ragchat.DefaultState()
		return Save(s.path, s.state)
	}
	if err != nil {
		return err
	}
	s.state = st
	return nil
}

// Get returns a copy of the current state.
func (s *FileStore) Get() ragchat.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.state)
}

// Set persists st and makes it current. The in-memory state is unchanged
// when the write fails.
func (s *FileStore) Set(st ragchat.State) error {
	st = clone(st)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := Save(s.path, st); err != nil {
		return err
	}
	s.state = st
	return nil
}

// Clear signs out, keeping preferences.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state.SignedOut()
	if err := Save(s.path, st); err != nil {
		return err
	}
	s.state = st
	return nil
}

func clone(st ragchat.State) ragchat.State {
	st.SessionIDs = maps.Clone(st.SessionIDs)
	if st.SessionIDs == nil {
		st.SessionIDs = make(map[string]string)
	}
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
