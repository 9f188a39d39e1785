package db

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"inkwell-server/store"
)

// Orphan reconciliation runs inside the list-read helpers, never on
// single-document reads and never before writes. Listing endpoints return
// only records whose parent still resolves; the orphaned remainder is purged
// best-effort. Cleanup failures are logged and never fail the read -
// duplicate deletes of already-gone records are no-ops, so concurrent
// reconciliation passes are safe.

// usersById resolves a set of user ids to the users that still exist.
func usersById(ctx context.Context, ids []string) (map[string]*User, error) {
	if len(ids) == 0 {
		return map[string]*User{}, nil
	}

	var users []*User
	err := Conn.Find(ctx, store.CollectionUsers, store.Filter{"_id": store.In(ids)}, store.FindOptions{}, &users)
	if err != nil {
		return nil, errors.Wrap(err, "error resolving users")
	}

	byId := make(map[string]*User, len(users))
	for _, user := range users {
		byId[user.Id] = user
	}
	return byId, nil
}

// reconcilePosts partitions posts by whether their author still exists,
// cascade-deletes the orphaned partition (dependents and cover asset
// included) and returns the resolving partition with its authors.
func reconcilePosts(ctx context.Context, posts []*Post) ([]*Post, map[string]*User, error) {
	authorIds := make([]string, 0, len(posts))
	for _, post := range posts {
		authorIds = append(authorIds, post.AuthorId)
	}

	authors, err := usersById(ctx, dedupe(authorIds))
	if err != nil {
		return nil, nil, err
	}

	valid := make([]*Post, 0, len(posts))
	for _, post := range posts {
		if _, ok := authors[post.AuthorId]; ok {
			valid = append(valid, post)
			continue
		}
		if err := DeletePostCascade(ctx, post.Id); err != nil {
			log.Printf("error cleaning up orphaned post %s: %v\n", post.Id, err)
		}
	}

	return valid, authors, nil
}

// reconcileComments drops comments whose author no longer exists.
func reconcileComments(ctx context.Context, comments []*Comment) ([]*Comment, map[string]*User, error) {
	authorIds := make([]string, 0, len(comments))
	for _, comment := range comments {
		authorIds = append(authorIds, comment.AuthorId)
	}

	authors, err := usersById(ctx, dedupe(authorIds))
	if err != nil {
		return nil, nil, err
	}

	valid := make([]*Comment, 0, len(comments))
	var orphaned []string
	for _, comment := range comments {
		if _, ok := authors[comment.AuthorId]; ok {
			valid = append(valid, comment)
		} else {
			orphaned = append(orphaned, comment.Id)
		}
	}

	purgeByIds(ctx, store.CollectionComments, orphaned)
	return valid, authors, nil
}

// reconcileReactions drops reactions whose user no longer exists.
func reconcileReactions(ctx context.Context, reactions []*Reaction) ([]*Reaction, map[string]*User, error) {
	userIds := make([]string, 0, len(reactions))
	for _, reaction := range reactions {
		userIds = append(userIds, reaction.UserId)
	}

	users, err := usersById(ctx, dedupe(userIds))
	if err != nil {
		return nil, nil, err
	}

	valid := make([]*Reaction, 0, len(reactions))
	var orphaned []string
	for _, reaction := range reactions {
		if _, ok := users[reaction.UserId]; ok {
			valid = append(valid, reaction)
		} else {
			orphaned = append(orphaned, reaction.Id)
		}
	}

	purgeByIds(ctx, store.CollectionReactions, orphaned)
	return valid, users, nil
}

func purgeByIds(ctx context.Context, collection string, ids []string) {
	if len(ids) == 0 {
		return
	}
	if _, err := Conn.DeleteMany(ctx, collection, store.Filter{"_id": store.In(ids)}); err != nil {
		log.Printf("error purging orphaned %s: %v\n", collection, err)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
