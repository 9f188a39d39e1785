package assets

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Recorder is an in-memory Client used by tests. It records every stored and
// deleted key and can be told to fail deletes to exercise best-effort paths.
type Recorder struct {
	mu      sync.Mutex
	Stored  map[string][]byte
	Deleted []string

	FailDeletes bool
}

func NewRecorder() *Recorder {
	return &Recorder{Stored: make(map[string][]byte)}
}

func (r *Recorder) Store(ctx context.Context, data []byte, contentType string) (*StoredAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := "covers/" + uuid.New().String()
	r.Stored[key] = data
	return &StoredAsset{Url: "https://assets.test/" + key, Key: key}, nil
}

func (r *Recorder) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailDeletes {
		return errors.New("asset delete failed")
	}
	r.Deleted = append(r.Deleted, key)
	delete(r.Stored, key)
	return nil
}

func (r *Recorder) DeletedKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Deleted...)
}
