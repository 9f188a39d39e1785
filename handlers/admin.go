package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"inkwell-server/authz"
	"inkwell-server/db"
	"inkwell-server/hooks"
	"inkwell-server/shared"
)

func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListUsersHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}
	if !requireAuthorized(w, auth, authz.ActionListUsers, authz.Resource{}) {
		return
	}

	users, err := db.ListUsers(r.Context())
	if err != nil {
		serverError(w, r, "Error listing users", err)
		return
	}

	apiUsers := make([]*shared.User, 0, len(users))
	for _, user := range users {
		apiUsers = append(apiUsers, user.ToApi())
	}
	writeJson(w, apiUsers)
}

func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteUserHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	userId := mux.Vars(r)["id"]
	if !requireAuthorized(w, auth, authz.ActionDeleteUser, authz.Resource{OwnerId: userId}) {
		return
	}

	user, err := db.GetUser(r.Context(), userId)
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

	if apiErr := hooks.ExecHook(hooks.DeleteAccount, hooks.HookParams{User: user}); apiErr != nil {
		writeApiError(w, *apiErr)
		return
	}

	if err := db.DeleteUserCascade(r.Context(), user.Id); err != nil {
		serverError(w, r, "Error deleting user and associated content", err)
		return
	}

	log.Println("Successfully deleted user")

	writeJson(w, map[string]string{"message": "User and all associated content deleted successfully"})
}

func UserStatsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UserStatsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	userId := mux.Vars(r)["id"]
	if !requireAuthorized(w, auth, authz.ActionViewUserStats, authz.Resource{OwnerId: userId}) {
		return
	}

	postsCount, commentsCount, reactionsCount, err := db.GetUserStats(r.Context(), userId)
	if err != nil {
		serverError(w, r, "Error fetching user stats", err)
		return
	}

	writeJson(w, shared.UserStats{
		PostsCount:     postsCount,
		CommentsCount:  commentsCount,
		ReactionsCount: reactionsCount,
	})
}

func ToggleUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ToggleUserRoleHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	userId := mux.Vars(r)["id"]
	if !requireAuthorized(w, auth, authz.ActionToggleRole, authz.Resource{OwnerId: userId}) {
		return
	}

	user, err := db.GetUser(r.Context(), userId)
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

	newRole := !user.IsAdmin
	if err := db.SetUserRole(r.Context(), user.Id, newRole); err != nil {
		serverError(w, r, "Error updating user role", err)
		return
	}

	log.Println("Successfully toggled user role")

	msg := "User role updated successfully. New role: User"
	if newRole {
		msg = "User role updated successfully. New role: Admin"
	}
	writeJson(w, shared.ToggleRoleResponse{IsAdmin: newRole, Msg: msg})
}
