package store

import (
	"context"

	"github.com/pkg/errors"
)

const (
	CollectionUsers     = "users"
	CollectionPosts     = "posts"
	CollectionComments  = "comments"
	CollectionReactions = "reactions"
	CollectionVisitors  = "visitors"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("unique index violation")
)

// Filter matches documents by field equality. A value of type In matches
// when the document's field equals any of the listed values.
type Filter map[string]any

type In []string

// Patch sets fields on a document. A nil value clears the field.
type Patch map[string]any

type FindOptions struct {
	SortField string
	SortDesc  bool
	Limit     int64
}

// Store is the aggregate store capability: CRUD, bulk delete, count and
// group-aggregate over schemaless document collections. There is no
// cross-document atomicity and no foreign key enforcement - multi-document
// mutations are built as idempotent sequences on top of this interface.
//
// Get returns ErrNotFound when the id doesn't resolve. Create returns the
// new document id, or ErrDuplicate when a unique index is violated.
type Store interface {
	Get(ctx context.Context, collection, id string, out any) error
	Find(ctx context.Context, collection string, filter Filter, opts FindOptions, out any) error
	Create(ctx context.Context, collection string, doc any) (string, error)
	UpdateById(ctx context.Context, collection, id string, patch Patch) error
	DeleteById(ctx context.Context, collection, id string) error
	DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
	AggregateGroupBy(ctx context.Context, collection string, filter Filter, groupField string) (map[string]int64, error)
}

// UniqueIndex declares a uniqueness constraint both implementations enforce
// on insert.
type UniqueIndex struct {
	Collection string
	Fields     []string
}

// UniqueIndexes returns the indexes the system depends on: unique usernames
// and emails, and at most one reaction per (post, user) pair. The reaction
// index alone isn't enough to uphold the invariant under concurrent toggles -
// the toggle protocol in the db package handles the race - but it turns a
// double-create into a detectable ErrDuplicate instead of a silent second row.
func UniqueIndexes() []UniqueIndex {
	return []UniqueIndex{
		{Collection: CollectionUsers, Fields: []string{"username"}},
		{Collection: CollectionUsers, Fields: []string{"email"}},
		{Collection: CollectionReactions, Fields: []string{"post", "user"}},
	}
}
