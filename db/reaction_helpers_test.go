package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-server/shared"
	"inkwell-server/store"
)

func reactionCountFor(t *testing.T, postId, userId string) int64 {
	t.Helper()
	n, err := Conn.Count(context.Background(), store.CollectionReactions, store.Filter{"post": postId, "user": userId})
	require.NoError(t, err)
	return n
}

func TestSetReactionToggle(t *testing.T) {
	setupTestDb(t)
	ctx := context.Background()

	author := mustCreateUser(t, "author")
	reactor := mustCreateUser(t, "reactor")
	post := mustCreatePost(t, author.Id)

	// Fresh reaction.
	result, err := SetReaction(ctx, post.Id, reactor.Id, shared.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, shared.ToggleResultAdded, result)
	assert.Equal(t, int64(1), reactionCountFor(t, post.Id, reactor.Id))

	// Different type replaces, never coexists.
	result, err = SetReaction(ctx, post.Id, reactor.Id, shared.ReactionFire)
	require.NoError(t, err)
	assert.Equal(t, shared.ToggleResultAdded, result)
	assert.Equal(t, int64(1), reactionCountFor(t, post.Id, reactor.Id))

	counts, err := GetReactionCounts(ctx, post.Id)
	require.NoError(t, err)
	assert.Equal(t, &shared.ReactionCounts{Fires: 1}, counts)

	// Same type again removes.
	result, err = SetReaction(ctx, post.Id, reactor.Id, shared.ReactionFire)
	require.NoError(t, err)
	assert.Equal(t, shared.ToggleResultRemoved, result)
	assert.Equal(t, int64(0), reactionCountFor(t, post.Id, reactor.Id))

	// Removing leaves nothing behind, so the next toggle adds again.
	result, err = SetReaction(ctx, post.Id, reactor.Id, shared.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, shared.ToggleResultAdded, result)
}

func TestReactionsIndependentAcrossUsersAndPosts(t *testing.T) {
	setupTestDb(t)
	ctx := context.Background()

	author := mustCreateUser(t, "author")
	a := mustCreateUser(t, "a")
	b := mustCreateUser(t, "b")
	post1 := mustCreatePost(t, author.Id)
	post2 := mustCreatePost(t, author.Id)

	_, err := SetReaction(ctx, post1.Id, a.Id, shared.ReactionLike)
	require.NoError(t, err)
	_, err = SetReaction(ctx, post1.Id, b.Id, shared.ReactionLike)
	require.NoError(t, err)
	_, err = SetReaction(ctx, post2.Id, a.Id, shared.ReactionDislike)
	require.NoError(t, err)

	counts, err := GetReactionCounts(ctx, post1.Id)
	require.NoError(t, err)
	assert.Equal(t, &shared.ReactionCounts{Likes: 2}, counts)

	counts, err = GetReactionCounts(ctx, post2.Id)
	require.NoError(t, err)
	assert.Equal(t, &shared.ReactionCounts{Dislikes: 1}, counts)
}

func TestGetReactionCountsZeroFilled(t *testing.T) {
	setupTestDb(t)
	ctx := context.Background()

	author := mustCreateUser(t, "author")
	post := mustCreatePost(t, author.Id)

	counts, err := GetReactionCounts(ctx, post.Id)
	require.NoError(t, err)
	assert.Equal(t, &shared.ReactionCounts{}, counts)
}

func TestListReactionUsers(t *testing.T) {
	setupTestDb(t)
	ctx := context.Background()

	author := mustCreateUser(t, "author")
	a := mustCreateUser(t, "a")
	b := mustCreateUser(t, "b")
	post := mustCreatePost(t, author.Id)

	_, err := SetReaction(ctx, post.Id, a.Id, shared.ReactionFire)
	require.NoError(t, err)
	_, err = SetReaction(ctx, post.Id, b.Id, shared.ReactionLike)
	require.NoError(t, err)

	authors, err := ListReactionUsers(ctx, post.Id, shared.ReactionFire)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, a.Id, authors[0].Id)
	assert.Equal(t, "a", authors[0].Username)

	authors, err = ListReactionUsers(ctx, post.Id, shared.ReactionLove)
	require.NoError(t, err)
	assert.Empty(t, authors)
}
