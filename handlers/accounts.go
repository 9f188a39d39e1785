package handlers

import (
	"crypto/rand"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"inkwell-server/db"
	"inkwell-server/email"
	"inkwell-server/hooks"
	"inkwell-server/shared"
)

const resetCodeExpiration = 15 * time.Minute

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for RegisterHandler")

	var req shared.RegisterRequest
	if !readJson(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, r, "Error hashing password", err)
		return
	}

	user := &db.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	err = db.CreateUser(r.Context(), user)
	if errors.Is(err, db.ErrUsernameExists) || errors.Is(err, db.ErrEmailExists) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    err.Error(),
		})
		return
	}
	if err != nil {
		serverError(w, r, "Error creating user", err)
		return
	}

	if apiErr := hooks.ExecHook(hooks.CreateAccount, hooks.HookParams{User: user}); apiErr != nil {
		writeApiError(w, *apiErr)
		return
	}

	log.Println("Successfully registered user")

	writeJson(w, shared.RegisterResponse{Id: user.Id, Msg: "Registration successful"})
}

func SignInHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignInHandler")

	var req shared.SignInRequest
	if !readJson(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(req.Email)

	user, err := db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		serverError(w, r, "Error fetching user", err)
		return
	}
	if user == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "User not found",
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Invalid password",
		})
		return
	}

	tokenStr, err := sessionCodec.Issue(user.Id, user.Username, user.Email, user.IsAdmin)
	if err != nil {
		serverError(w, r, "Error issuing session token", err)
		return
	}

	setSessionCookie(w, tokenStr)

	log.Println("Successfully signed in user")

	writeJson(w, shared.SessionResponse{
		Id:       user.Id,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		// also returned in the body for clients that prefer a bearer header
		Token: tokenStr,
	})
}

func SignOutHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignOutHandler")

	clearSessionCookie(w)
	writeJson(w, map[string]string{"message": "Logged out successfully"})
}

func ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ForgotPasswordHandler")

	var req shared.ForgotPasswordRequest
	if !readJson(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(req.Email)

	user, err := db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		serverError(w, r, "Error fetching user", err)
		return
	}
	if user == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "User not found",
		})
		return
	}

	code, err := genResetCode()
	if err != nil {
		serverError(w, r, "Error generating reset code", err)
		return
	}

	// only the one-way hash is persisted
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, r, "Error hashing reset code", err)
		return
	}

	expiresAt := time.Now().UTC().Add(resetCodeExpiration)
	if err := db.SetUserResetCode(r.Context(), user.Id, string(codeHash), expiresAt); err != nil {
		serverError(w, r, "Error saving reset code", err)
		return
	}

	if err := email.SendResetCodeEmail(user.Email, code); err != nil {
		serverError(w, r, "Error sending reset code", err)
		return
	}

	log.Println("Successfully generated reset code")

	writeJson(w, shared.ForgotPasswordResponse{
		Msg:       "Reset code sent",
		ExpiresIn: "15 minutes",
	})
}

func ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ResetPasswordHandler")

	var req shared.ResetPasswordRequest
	if !readJson(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(req.Email)

	user, err := db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		serverError(w, r, "Error fetching user", err)
		return
	}

	if user == nil || user.ResetCodeHash == nil || user.ResetExpiresAt == nil || user.ResetExpiresAt.Before(time.Now().UTC()) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Invalid or expired reset code",
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.ResetCodeHash), []byte(req.ResetCode)) != nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Invalid reset code",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, r, "Error hashing password", err)
		return
	}

	if err := db.ResetUserPassword(r.Context(), user.Id, string(hash)); err != nil {
		serverError(w, r, "Error resetting password", err)
		return
	}

	log.Println("Successfully reset password")

	writeJson(w, map[string]string{"message": "Password updated successfully"})
}

func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ProfileHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	writeJson(w, shared.SessionResponse{
		Id:       auth.User.Id,
		Username: auth.User.Username,
		Email:    auth.User.Email,
		IsAdmin:  auth.User.IsAdmin,
	})
}

func genResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", errors.Wrap(err, "error generating random code")
	}
	return (n.Add(n, big.NewInt(100000))).String(), nil
}
