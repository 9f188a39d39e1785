package db

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"inkwell-server/store"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already registered")
)

func CreateUser(ctx context.Context, user *User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	// Pre-check so registration can report which field collided; the unique
	// indexes still catch races.
	n, err := Conn.Count(ctx, store.CollectionUsers, store.Filter{"username": user.Username})
	if err != nil {
		return errors.Wrap(err, "error checking username")
	}
	if n > 0 {
		return ErrUsernameExists
	}

	n, err = Conn.Count(ctx, store.CollectionUsers, store.Filter{"email": user.Email})
	if err != nil {
		return errors.Wrap(err, "error checking email")
	}
	if n > 0 {
		return ErrEmailExists
	}

	id, err := Conn.Create(ctx, store.CollectionUsers, user)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a registration race. The username index is checked first on
		// both paths, so report it first here too.
		n, countErr := Conn.Count(ctx, store.CollectionUsers, store.Filter{"username": user.Username})
		if countErr == nil && n > 0 {
			return ErrUsernameExists
		}
		return ErrEmailExists
	}
	if err != nil {
		return errors.Wrap(err, "error creating user")
	}

	user.Id = id
	return nil
}

// GetUser returns (nil, nil) when the id doesn't resolve, so callers can
// distinguish a missing subject from a store failure.
func GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	err := Conn.Get(ctx, store.CollectionUsers, id, &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error fetching user")
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var users []*User
	err := Conn.Find(ctx, store.CollectionUsers, store.Filter{"email": email}, store.FindOptions{Limit: 1}, &users)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching user by email")
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := Conn.Find(ctx, store.CollectionUsers, store.Filter{}, store.FindOptions{SortField: "createdAt"}, &users)
	if err != nil {
		return nil, errors.Wrap(err, "error listing users")
	}
	return users, nil
}

func CountUsers(ctx context.Context) (int64, error) {
	n, err := Conn.Count(ctx, store.CollectionUsers, store.Filter{})
	if err != nil {
		return 0, errors.Wrap(err, "error counting users")
	}
	return n, nil
}

// SetUserResetCode stores the one-way hash of a password reset code plus its
// expiry on the user record.
func SetUserResetCode(ctx context.Context, userId, codeHash string, expiresAt time.Time) error {
	err := Conn.UpdateById(ctx, store.CollectionUsers, userId, store.Patch{
		"resetPasswordToken":   codeHash,
		"resetPasswordExpires": expiresAt,
		"updatedAt":            time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "error setting reset code")
	}
	return nil
}

// ResetUserPassword replaces the password hash and clears the reset fields
// in the same patch.
func ResetUserPassword(ctx context.Context, userId, passwordHash string) error {
	err := Conn.UpdateById(ctx, store.CollectionUsers, userId, store.Patch{
		"password":             passwordHash,
		"resetPasswordToken":   nil,
		"resetPasswordExpires": nil,
		"updatedAt":            time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "error resetting password")
	}
	return nil
}

func SetUserRole(ctx context.Context, userId string, isAdmin bool) error {
	err := Conn.UpdateById(ctx, store.CollectionUsers, userId, store.Patch{
		"isAdmin":   isAdmin,
		"updatedAt": time.Now().UTC(),
	})
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "error updating user role")
	}
	return nil
}

func GetUserStats(ctx context.Context, userId string) (postsCount, commentsCount, reactionsCount int64, err error) {
	postsCount, err = Conn.Count(ctx, store.CollectionPosts, store.Filter{"author": userId})
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "error counting posts")
	}

	commentsCount, err = Conn.Count(ctx, store.CollectionComments, store.Filter{"author": userId})
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "error counting comments")
	}

	reactionsCount, err = Conn.Count(ctx, store.CollectionReactions, store.Filter{"user": userId})
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "error counting reactions")
	}

	return postsCount, commentsCount, reactionsCount, nil
}
