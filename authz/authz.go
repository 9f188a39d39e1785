// Package authz decides whether a session may perform an action on a
// resource. Decisions are pure functions of the inputs - no store access, no
// side effects - so the full rule table is unit-testable.
package authz

type Action string

const (
	ActionCreatePost    Action = "create_post"
	ActionEditPost      Action = "edit_post"
	ActionDeletePost    Action = "delete_post"
	ActionCreateComment Action = "create_comment"
	ActionDeleteComment Action = "delete_comment"
	ActionSetReaction   Action = "set_reaction"

	ActionListUsers     Action = "list_users"
	ActionDeleteUser    Action = "delete_user"
	ActionViewUserStats Action = "view_user_stats"
	ActionToggleRole    Action = "toggle_role"
)

// Session is the verified identity making the request. IsAdmin must come
// from a fresh user fetch, never from stale token claims.
type Session struct {
	UserId  string
	IsAdmin bool
}

// Resource carries the ownership facts a decision needs. For post and
// comment actions OwnerId is the author; for user-management actions it is
// the target user's id.
type Resource struct {
	OwnerId string
}

type DenyReason string

const (
	DenyAuthRequired     DenyReason = "auth_required"
	DenyAdminRequired    DenyReason = "admin_required"
	DenyNotOwner         DenyReason = "not_owner"
	DenySelfModification DenyReason = "self_modification"
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Authorize evaluates the rules in order: valid session, admin requirement,
// ownership requirement, self-protection for admin user-management actions.
func Authorize(sess *Session, action Action, res Resource) Decision {
	if sess == nil || sess.UserId == "" {
		return deny(DenyAuthRequired)
	}

	if requiresAdmin(action) && !sess.IsAdmin {
		return deny(DenyAdminRequired)
	}

	if requiresOwnership(action) && res.OwnerId != sess.UserId && !sess.IsAdmin {
		return deny(DenyNotOwner)
	}

	// An admin must not delete or re-role their own account through the
	// user-management actions, even though they pass the admin check.
	if selfProtected(action) && res.OwnerId == sess.UserId {
		return deny(DenySelfModification)
	}

	return allow()
}

func requiresAdmin(action Action) bool {
	switch action {
	case ActionListUsers, ActionDeleteUser, ActionViewUserStats, ActionToggleRole:
		return true
	}
	return false
}

func requiresOwnership(action Action) bool {
	switch action {
	case ActionEditPost, ActionDeletePost, ActionDeleteComment:
		return true
	}
	return false
}

func selfProtected(action Action) bool {
	switch action {
	case ActionDeleteUser, ActionToggleRole:
		return true
	}
	return false
}
