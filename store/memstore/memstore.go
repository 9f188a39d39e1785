package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkwell-server/store"
)

// Store is an in-memory implementation of store.Store with the same unique
// index semantics as the MongoDB implementation. It backs tests and local
// development. Documents round-trip through bson so that struct tags behave
// identically on both implementations.
type Store struct {
	mu      sync.Mutex
	colls   map[string][]bson.M
	indexes []store.UniqueIndex
}

func New() *Store {
	return &Store{
		colls:   make(map[string][]bson.M),
		indexes: store.UniqueIndexes(),
	}
}

func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	// decode while holding the lock - UpdateById mutates stored maps in place
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.colls[collection] {
		if doc["_id"] == id {
			return decodeDoc(doc, out)
		}
	}
	return store.ErrNotFound
}

func (s *Store) Find(ctx context.Context, collection string, filter store.Filter, opts store.FindOptions, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []bson.M
	for _, doc := range s.colls[collection] {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}

	if opts.SortField != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			cmp := compareValues(matched[i][opts.SortField], matched[j][opts.SortField])
			if opts.SortDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	return decodeDocs(matched, out)
}

func (s *Store) Create(ctx context.Context, collection string, doc any) (string, error) {
	m, err := encodeDoc(doc)
	if err != nil {
		return "", err
	}

	id, _ := m["_id"].(string)
	if id == "" {
		id = uuid.New().String()
		m["_id"] = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, idx := range s.indexes {
		if idx.Collection != collection {
			continue
		}
		for _, existing := range s.colls[collection] {
			dup := true
			for _, field := range idx.Fields {
				if !reflect.DeepEqual(existing[field], m[field]) {
					dup = false
					break
				}
			}
			if dup {
				return "", store.ErrDuplicate
			}
		}
	}

	s.colls[collection] = append(s.colls[collection], m)
	return id, nil
}

func (s *Store) UpdateById(ctx context.Context, collection, id string, patch store.Patch) error {
	normalized, err := encodeDoc(map[string]any(patch))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.colls[collection] {
		if doc["_id"] == id {
			for k := range patch {
				doc[k] = normalized[k]
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteById(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.colls[collection]
	for i, doc := range docs {
		if doc["_id"] == id {
			s.colls[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	// deleting an already-gone document is a no-op, matching DeleteOne
	return nil
}

func (s *Store) DeleteMany(ctx context.Context, collection string, filter store.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []bson.M
	var deleted int64
	for _, doc := range s.colls[collection] {
		if matches(doc, filter) {
			deleted++
		} else {
			kept = append(kept, doc)
		}
	}
	s.colls[collection] = kept
	return deleted, nil
}

func (s *Store) Count(ctx context.Context, collection string, filter store.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, doc := range s.colls[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (s *Store) AggregateGroupBy(ctx context.Context, collection string, filter store.Filter, groupField string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int64)
	for _, doc := range s.colls[collection] {
		if !matches(doc, filter) {
			continue
		}
		v, ok := doc[groupField]
		if !ok || v == nil {
			continue
		}
		counts[fmt.Sprint(v)]++
	}
	return counts, nil
}

func matches(doc bson.M, filter store.Filter) bool {
	for field, want := range filter {
		got := doc[field]
		if in, ok := want.(store.In); ok {
			hit := false
			for _, candidate := range in {
				if got == candidate {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, normalize(want)) {
			return false
		}
	}
	return true
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case primitive.DateTime:
		bv, _ := b.(primitive.DateTime)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case int32:
		bv, _ := b.(int32)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case int64:
		bv, _ := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

// encodeDoc round-trips a value through bson so stored documents look the
// way the MongoDB driver would store them (field names from bson tags,
// time.Time as primitive.DateTime).
func encodeDoc(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding document")
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "error decoding document")
	}
	return m, nil
}

func decodeDoc(m bson.M, out any) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "error encoding document")
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "error decoding document")
	}
	return nil
}

// decodeDocs decodes into *[]T or *[]*T.
func decodeDocs(docs []bson.M, out any) error {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.Elem().Kind() != reflect.Slice {
		return errors.New("out must be a pointer to a slice")
	}

	sliceVal := outVal.Elem()
	sliceVal.Set(reflect.MakeSlice(sliceVal.Type(), 0, len(docs)))
	elemType := sliceVal.Type().Elem()

	for _, m := range docs {
		var target reflect.Value
		if elemType.Kind() == reflect.Ptr {
			target = reflect.New(elemType.Elem())
			if err := decodeDoc(m, target.Interface()); err != nil {
				return err
			}
			sliceVal.Set(reflect.Append(sliceVal, target))
		} else {
			target = reflect.New(elemType)
			if err := decodeDoc(m, target.Interface()); err != nil {
				return err
			}
			sliceVal.Set(reflect.Append(sliceVal, target.Elem()))
		}
	}
	return nil
}

func normalize(v any) any {
	switch tv := v.(type) {
	case string, nil, bool, int32, int64, float64, primitive.DateTime:
		return tv
	}
	m, err := encodeDoc(bson.M{"v": v})
	if err != nil {
		return v
	}
	return m["v"]
}
