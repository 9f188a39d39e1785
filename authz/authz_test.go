package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	owner := &Session{UserId: "owner-1"}
	other := &Session{UserId: "other-1"}
	admin := &Session{UserId: "admin-1", IsAdmin: true}

	tests := []struct {
		name    string
		sess    *Session
		action  Action
		res     Resource
		allowed bool
		reason  DenyReason
	}{
		{
			name:   "nil session denied",
			sess:   nil,
			action: ActionCreatePost,
			reason: DenyAuthRequired,
		},
		{
			name:   "empty user id denied",
			sess:   &Session{},
			action: ActionCreatePost,
			reason: DenyAuthRequired,
		},
		{
			name:    "any user may create posts",
			sess:    other,
			action:  ActionCreatePost,
			allowed: true,
		},
		{
			name:    "any user may comment",
			sess:    other,
			action:  ActionCreateComment,
			res:     Resource{OwnerId: "owner-1"},
			allowed: true,
		},
		{
			name:    "any user may react",
			sess:    other,
			action:  ActionSetReaction,
			res:     Resource{OwnerId: "owner-1"},
			allowed: true,
		},
		{
			name:    "owner may edit own post",
			sess:    owner,
			action:  ActionEditPost,
			res:     Resource{OwnerId: "owner-1"},
			allowed: true,
		},
		{
			name:   "non-owner may not edit post",
			sess:   other,
			action: ActionEditPost,
			res:    Resource{OwnerId: "owner-1"},
			reason: DenyNotOwner,
		},
		{
			name:   "non-owner may not delete post",
			sess:   other,
			action: ActionDeletePost,
			res:    Resource{OwnerId: "owner-1"},
			reason: DenyNotOwner,
		},
		{
			name:    "admin may delete any post",
			sess:    admin,
			action:  ActionDeletePost,
			res:     Resource{OwnerId: "owner-1"},
			allowed: true,
		},
		{
			name:   "non-owner may not delete comment",
			sess:   other,
			action: ActionDeleteComment,
			res:    Resource{OwnerId: "owner-1"},
			reason: DenyNotOwner,
		},
		{
			name:    "admin may delete any comment",
			sess:    admin,
			action:  ActionDeleteComment,
			res:     Resource{OwnerId: "owner-1"},
			allowed: true,
		},
		{
			name:   "non-admin may not list users",
			sess:   owner,
			action: ActionListUsers,
			reason: DenyAdminRequired,
		},
		{
			name:    "admin may list users",
			sess:    admin,
			action:  ActionListUsers,
			allowed: true,
		},
		{
			name:   "non-admin may not view stats",
			sess:   owner,
			action: ActionViewUserStats,
			res:    Resource{OwnerId: "other-1"},
			reason: DenyAdminRequired,
		},
		{
			name:    "admin may view stats",
			sess:    admin,
			action:  ActionViewUserStats,
			res:     Resource{OwnerId: "other-1"},
			allowed: true,
		},
		{
			name:   "non-admin may not delete users",
			sess:   owner,
			action: ActionDeleteUser,
			res:    Resource{OwnerId: "other-1"},
			reason: DenyAdminRequired,
		},
		{
			name:    "admin may delete another user",
			sess:    admin,
			action:  ActionDeleteUser,
			res:     Resource{OwnerId: "other-1"},
			allowed: true,
		},
		{
			name:   "admin may not delete own account",
			sess:   admin,
			action: ActionDeleteUser,
			res:    Resource{OwnerId: "admin-1"},
			reason: DenySelfModification,
		},
		{
			name:    "admin may toggle another user's role",
			sess:    admin,
			action:  ActionToggleRole,
			res:     Resource{OwnerId: "other-1"},
			allowed: true,
		},
		{
			name:   "admin may not toggle own role",
			sess:   admin,
			action: ActionToggleRole,
			res:    Resource{OwnerId: "admin-1"},
			reason: DenySelfModification,
		},
		{
			name:   "non-admin self-delete still hits admin gate first",
			sess:   owner,
			action: ActionDeleteUser,
			res:    Resource{OwnerId: "owner-1"},
			reason: DenyAdminRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Authorize(tt.sess, tt.action, tt.res)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.reason, decision.Reason)
			}
		})
	}
}
