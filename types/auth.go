package types

import (
	"inkwell-server/authz"
	"inkwell-server/db"
	"inkwell-server/token"
)

// ServerAuth is a verified request identity: the decoded token claims plus
// the freshly fetched user record. User, not Claims, is the source of truth
// for the admin role - claims only prove who the token was issued to.
type ServerAuth struct {
	Claims *token.Claims
	User   *db.User
}

func (a *ServerAuth) Session() *authz.Session {
	return &authz.Session{
		UserId:  a.User.Id,
		IsAdmin: a.User.IsAdmin,
	}
}
