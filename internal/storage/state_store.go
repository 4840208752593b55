package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DefaultStateKey is the key the current revision stores its state under.
const DefaultStateKey = "@gamify_todo_v6"

// StateStore reads and writes the whole State as one JSON blob under one key.
type StateStore struct {
	repo *KVRepo
	key  string
}

func NewStateStore(repo *KVRepo, key string) *StateStore {
	if strings.TrimSpace(key) == "" {
		key = DefaultStateKey
	}
	return &StateStore{repo: repo, key: key}
}

func (s *StateStore) Key() string { return s.key }

// Load returns the stored state. found is false when nothing was saved yet,
// in which case the returned state is empty but normalized.
func (s *StateStore) Load(ctx context.Context) (State, bool, error) {
	raw, found, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return State{}, false, err
	}
	var st State
	if !found {
		st.Normalize()
		return st, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return State{}, true, fmt.Errorf("decode state %q: %w", s.key, err)
	}
	st.Normalize()
	return st, true, nil
}

func (s *StateStore) Save(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return s.repo.Put(ctx, s.key, string(data))
}

// Export writes the stored state as indented JSON.
func (s *StateStore) Export(ctx context.Context, w io.Writer) error {
	st, _, err := s.Load(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("export state: %w", err)
	}
	return nil
}

// Import replaces the stored state with the JSON document read from r.
// The replaced state is kept under BackupKey.
func (s *StateStore) Import(ctx context.Context, r io.Reader) (State, error) {
	var st State
	if err := json.NewDecoder(r).Decode(&st); err != nil {
		return State{}, fmt.Errorf("import state: %w", err)
	}
	st.Normalize()
	data, err := json.Marshal(st)
	if err != nil {
		return State{}, fmt.Errorf("encode state: %w", err)
	}
	if err := s.repo.PutWithBackup(ctx, s.key, s.BackupKey(), string(data)); err != nil {
		return State{}, err
	}
	return st, nil
}

// BackupKey holds the state that the last Import replaced.
func (s *StateStore) BackupKey() string { return s.key + ".bak" }
