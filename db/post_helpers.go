package db

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"inkwell-server/store"
)

func CreatePost(ctx context.Context, post *Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	id, err := Conn.Create(ctx, store.CollectionPosts, post)
	if err != nil {
		return errors.Wrap(err, "error creating post")
	}
	post.Id = id
	return nil
}

// GetPost returns (nil, nil) when the id doesn't resolve.
func GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	err := Conn.Get(ctx, store.CollectionPosts, id, &post)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error fetching post")
	}
	return &post, nil
}

// ListPosts returns all posts newest-first along with their authors,
// reconciling orphans on the way.
func ListPosts(ctx context.Context) ([]*Post, map[string]*User, error) {
	var posts []*Post
	err := Conn.Find(ctx, store.CollectionPosts, store.Filter{}, store.FindOptions{SortField: "createdAt", SortDesc: true}, &posts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error listing posts")
	}

	return reconcilePosts(ctx, posts)
}

func ListPostsByAuthor(ctx context.Context, authorId string) ([]*Post, error) {
	var posts []*Post
	err := Conn.Find(ctx, store.CollectionPosts, store.Filter{"author": authorId}, store.FindOptions{}, &posts)
	if err != nil {
		return nil, errors.Wrap(err, "error listing posts by author")
	}
	return posts, nil
}

func UpdatePost(ctx context.Context, id string, patch store.Patch) error {
	patch["updatedAt"] = time.Now().UTC()
	err := Conn.UpdateById(ctx, store.CollectionPosts, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "error updating post")
	}
	return nil
}
