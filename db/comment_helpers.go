package db

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"inkwell-server/store"
)

func CreateComment(ctx context.Context, comment *Comment) error {
	comment.CreatedAt = time.Now().UTC()

	id, err := Conn.Create(ctx, store.CollectionComments, comment)
	if err != nil {
		return errors.Wrap(err, "error creating comment")
	}
	comment.Id = id
	return nil
}

// GetComment returns (nil, nil) when the id doesn't resolve.
func GetComment(ctx context.Context, id string) (*Comment, error) {
	var comment Comment
	err := Conn.Get(ctx, store.CollectionComments, id, &comment)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error fetching comment")
	}
	return &comment, nil
}

// DeleteComment removes a comment by id. Deleting an already-gone comment
// is a no-op.
func DeleteComment(ctx context.Context, id string) error {
	if err := Conn.DeleteById(ctx, store.CollectionComments, id); err != nil {
		return errors.Wrap(err, "error deleting comment")
	}
	return nil
}

// ListCommentsForPost returns a post's comments newest-first with their
// authors, reconciling orphans on the way.
func ListCommentsForPost(ctx context.Context, postId string) ([]*Comment, map[string]*User, error) {
	var comments []*Comment
	err := Conn.Find(ctx, store.CollectionComments, store.Filter{"post": postId}, store.FindOptions{SortField: "createdAt", SortDesc: true}, &comments)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error listing comments")
	}

	return reconcileComments(ctx, comments)
}
