package store

import "github.com/amishk599/jobwatch/internal/model"

// NopStore is a no-op store used in check (dry-run) mode. It always loads an
// empty set and never persists, so every listing appears new on each run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) LoadSeen(scope string) (model.SeenSet, error)    { return make(model.SeenSet), nil }
func (s *NopStore) SaveSeen(scope string, seen model.SeenSet) error { return nil }
