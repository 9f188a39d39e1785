package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Session tokens live for 7 days. The isAdmin claim is a snapshot taken at
// issue time - callers must re-fetch the user to get the current role and to
// confirm the subject still exists.
const SessionDuration = 7 * 24 * time.Hour

var (
	ErrExpiredToken   = errors.New("expired session token")
	ErrMalformedToken = errors.New("malformed session token")
)

// Claims are the identity assertions carried by a session token.
type Claims struct {
	UserId   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed session assertions.
type Codec struct {
	secret []byte

	// Now is overridable in tests.
	Now func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), Now: time.Now}
}

func (c *Codec) Issue(userId, username, email string, isAdmin bool) (string, error) {
	now := c.Now()
	claims := Claims{
		UserId:   userId,
		Username: username,
		Email:    email,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionDuration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "error signing session token")
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the decoded claims.
// It returns ErrExpiredToken or ErrMalformedToken; any other failure mode is
// folded into ErrMalformedToken so callers have exactly two cases to handle.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return c.Now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrMalformedToken
	}
	if claims.UserId == "" {
		return nil, ErrMalformedToken
	}
	return &claims, nil
}
