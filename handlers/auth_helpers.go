package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"inkwell-server/authz"
	"inkwell-server/db"
	"inkwell-server/shared"
	"inkwell-server/token"
	"inkwell-server/types"
)

const sessionCookieName = "token"

// authenticate verifies the session assertion on a request and re-fetches
// the user it points at. The re-fetch is mandatory: a deleted user must lose
// access before token expiry, and the admin flag is only trusted from the
// store, never from the claims. Writes the error response and returns nil
// on failure.
func authenticate(w http.ResponseWriter, r *http.Request) *types.ServerAuth {
	tokenStr := tokenFromRequest(r)
	if tokenStr == "" {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeAuthRequired,
			Status: http.StatusUnauthorized,
			Msg:    "Authentication required",
		})
		return nil
	}

	claims, err := sessionCodec.Verify(tokenStr)
	if err != nil {
		log.Printf("error verifying session token: %v\n", err)
		clearSessionCookie(w)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid or expired session",
		})
		return nil
	}

	user, err := db.GetUser(r.Context(), claims.UserId)
	if err != nil {
		serverError(w, r, "Error fetching user", err)
		return nil
	}

	if user == nil {
		log.Printf("session subject %s no longer exists\n", claims.UserId)
		clearSessionCookie(w)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeSubjectNotFound,
			Status: http.StatusUnauthorized,
			Msg:    "User no longer exists",
		})
		return nil
	}

	return &types.ServerAuth{Claims: claims, User: user}
}

// requireAuthorized runs the gate and writes the matching error response on
// a denial.
func requireAuthorized(w http.ResponseWriter, auth *types.ServerAuth, action authz.Action, res authz.Resource) bool {
	decision := authz.Authorize(auth.Session(), action, res)
	if decision.Allowed {
		return true
	}

	switch decision.Reason {
	case authz.DenyAuthRequired:
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeAuthRequired,
			Status: http.StatusUnauthorized,
			Msg:    "Authentication required",
		})
	case authz.DenyAdminRequired:
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeAdminRequired,
			Status: http.StatusForbidden,
			Msg:    "Admin access required",
		})
	case authz.DenyNotOwner:
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotOwner,
			Status: http.StatusForbidden,
			Msg:    "Not authorized to modify this resource",
		})
	case authz.DenySelfModification:
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeSelfModification,
			Status: http.StatusBadRequest,
			Msg:    "Cannot perform this action on your own account",
		})
	}
	return false
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, tokenStr string) {
	sameSite := http.SameSiteLaxMode
	if goEnv == "production" {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:  sessionCookieName,
		Value: tokenStr,
		Path:  "/",
		// readable client-side so the SPA can mirror it into localStorage
		HttpOnly: false,
		Secure:   goEnv == "production",
		SameSite: sameSite,
		MaxAge:   int(token.SessionDuration / time.Second),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	sameSite := http.SameSiteLaxMode
	if goEnv == "production" {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: false,
		Secure:   goEnv == "production",
		SameSite: sameSite,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
