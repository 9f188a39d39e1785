package db

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"inkwell-server/shared"
	"inkwell-server/store"
)

// ErrReactionConflict is returned when a toggle loses the creation race
// twice in a row. A single loss is absorbed by the retry below.
var ErrReactionConflict = errors.New("conflicting reaction updates")

// SetReaction toggles a user's reaction on a post. Same type again removes
// it; a different type replaces the existing one; otherwise a fresh reaction
// is added. The delete-then-create pair isn't atomic, so a concurrent toggle
// from the same user can make the create trip the (post, user) unique index.
// That's treated as a benign conflict and retried once against the
// now-current state.
func SetReaction(ctx context.Context, postId, userId string, reactionType shared.ReactionType) (shared.ToggleResult, error) {
	var existing []*Reaction
	err := Conn.Find(ctx, store.CollectionReactions, store.Filter{"post": postId, "user": userId}, store.FindOptions{}, &existing)
	if err != nil {
		return "", errors.Wrap(err, "error fetching reaction")
	}

	if len(existing) > 0 && existing[0].Type == reactionType {
		if err := Conn.DeleteById(ctx, store.CollectionReactions, existing[0].Id); err != nil {
			return "", errors.Wrap(err, "error removing reaction")
		}
		return shared.ToggleResultRemoved, nil
	}

	err = replaceReaction(ctx, postId, userId, reactionType)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost the race to a concurrent toggle. Retry once as a plain
		// delete-then-create; a second loss escalates.
		err = replaceReaction(ctx, postId, userId, reactionType)
		if errors.Is(err, store.ErrDuplicate) {
			return "", ErrReactionConflict
		}
	}
	if err != nil {
		return "", err
	}

	return shared.ToggleResultAdded, nil
}

func replaceReaction(ctx context.Context, postId, userId string, reactionType shared.ReactionType) error {
	_, err := Conn.DeleteMany(ctx, store.CollectionReactions, store.Filter{"post": postId, "user": userId})
	if err != nil {
		return errors.Wrap(err, "error clearing reaction")
	}

	_, err = Conn.Create(ctx, store.CollectionReactions, &Reaction{
		PostId:    postId,
		UserId:    userId,
		Type:      reactionType,
		CreatedAt: time.Now().UTC(),
	})
	if errors.Is(err, store.ErrDuplicate) {
		return store.ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "error creating reaction")
	}
	return nil
}

// GetReactionCounts reconciles a post's reactions and returns counts for all
// four types, zero-filled - the response shape never omits a key.
func GetReactionCounts(ctx context.Context, postId string) (*shared.ReactionCounts, error) {
	var reactions []*Reaction
	err := Conn.Find(ctx, store.CollectionReactions, store.Filter{"post": postId}, store.FindOptions{}, &reactions)
	if err != nil {
		return nil, errors.Wrap(err, "error listing reactions")
	}

	if _, _, err := reconcileReactions(ctx, reactions); err != nil {
		return nil, err
	}

	grouped, err := Conn.AggregateGroupBy(ctx, store.CollectionReactions, store.Filter{"post": postId}, "type")
	if err != nil {
		return nil, errors.Wrap(err, "error aggregating reactions")
	}

	return &shared.ReactionCounts{
		Likes:    grouped[string(shared.ReactionLike)],
		Dislikes: grouped[string(shared.ReactionDislike)],
		Loves:    grouped[string(shared.ReactionLove)],
		Fires:    grouped[string(shared.ReactionFire)],
	}, nil
}

// ListReactionUsers returns the users who reacted to a post with the given
// type, reconciling orphans on the way.
func ListReactionUsers(ctx context.Context, postId string, reactionType shared.ReactionType) ([]*shared.Author, error) {
	var reactions []*Reaction
	err := Conn.Find(ctx, store.CollectionReactions, store.Filter{"post": postId, "type": string(reactionType)}, store.FindOptions{}, &reactions)
	if err != nil {
		return nil, errors.Wrap(err, "error listing reactions")
	}

	valid, users, err := reconcileReactions(ctx, reactions)
	if err != nil {
		return nil, err
	}

	authors := make([]*shared.Author, 0, len(valid))
	for _, reaction := range valid {
		authors = append(authors, users[reaction.UserId].ToAuthor())
	}
	return authors, nil
}
