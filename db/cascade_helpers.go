package db

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"inkwell-server/assets"
	"inkwell-server/store"
)

// DeletePostCascade removes a post together with everything that references
// it. The store can't do this for us - comments and reactions are siblings
// holding a post id, not embedded documents - so the engine reaches out and
// deletes them itself:
//
//  1. load the post (absent post is a successful no-op)
//  2. best-effort delete of the cover asset
//  3. delete the post's comments and reactions concurrently, joining both
//  4. only then delete the post record itself
//
// If step 3 partially fails the post record is kept, leaving a "post still
// visible, some dependents gone" state that a retry can finish, rather than
// a post-less pile of dangling dependents. Every step tolerates re-running.
func DeletePostCascade(ctx context.Context, postId string) error {
	post, err := GetPost(ctx, postId)
	if err != nil {
		return err
	}
	if post == nil {
		return nil
	}

	assets.Delete(ctx, post.CoverKey)

	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := Conn.DeleteMany(groupCtx, store.CollectionComments, store.Filter{"post": postId})
		return errors.Wrap(err, "error deleting post comments")
	})
	g.Go(func() error {
		_, err := Conn.DeleteMany(groupCtx, store.CollectionReactions, store.Filter{"post": postId})
		return errors.Wrap(err, "error deleting post reactions")
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := Conn.DeleteById(ctx, store.CollectionPosts, postId); err != nil {
		return errors.Wrap(err, "error deleting post")
	}
	return nil
}

// DeleteUserCascade removes a user and all content they own or authored.
// Owned posts cascade first; if any of those cascades fails the user record
// is kept, because deleting the user while owned content is still reachable
// would permanently orphan it.
func DeleteUserCascade(ctx context.Context, userId string) error {
	posts, err := ListPostsByAuthor(ctx, userId)
	if err != nil {
		return err
	}

	for _, post := range posts {
		if err := DeletePostCascade(ctx, post.Id); err != nil {
			return errors.Wrapf(err, "error cascading post %s", post.Id)
		}
	}

	if _, err := Conn.DeleteMany(ctx, store.CollectionComments, store.Filter{"author": userId}); err != nil {
		return errors.Wrap(err, "error deleting user comments")
	}

	if _, err := Conn.DeleteMany(ctx, store.CollectionReactions, store.Filter{"user": userId}); err != nil {
		return errors.Wrap(err, "error deleting user reactions")
	}

	if err := Conn.DeleteById(ctx, store.CollectionUsers, userId); err != nil {
		return errors.Wrap(err, "error deleting user")
	}
	return nil
}
