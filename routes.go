package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"inkwell-server/handlers"
)

func routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		// get version from version.txt
		bytes, err := os.ReadFile("version.txt")

		if err != nil {
			http.Error(w, "Error getting version", http.StatusInternalServerError)
			return
		}

		fmt.Fprint(w, string(bytes))
	})

	r.HandleFunc("/register", handlers.RegisterHandler).Methods("POST")
	r.HandleFunc("/login", handlers.SignInHandler).Methods("POST")
	r.HandleFunc("/logout", handlers.SignOutHandler).Methods("POST")
	r.HandleFunc("/forgot-password", handlers.ForgotPasswordHandler).Methods("POST")
	r.HandleFunc("/reset-password", handlers.ResetPasswordHandler).Methods("POST")
	r.HandleFunc("/profile", handlers.ProfileHandler).Methods("GET")

	r.HandleFunc("/post", handlers.CreatePostHandler).Methods("POST")
	r.HandleFunc("/posts", handlers.ListPostsHandler).Methods("GET")
	r.HandleFunc("/post/{id}", handlers.GetPostHandler).Methods("GET")
	r.HandleFunc("/post/{id}", handlers.UpdatePostHandler).Methods("PUT")
	r.HandleFunc("/post/{id}", handlers.DeletePostHandler).Methods("DELETE")

	r.HandleFunc("/post/{id}/comments", handlers.ListCommentsHandler).Methods("GET")
	r.HandleFunc("/post/{id}/comment", handlers.CreateCommentHandler).Methods("POST")
	r.HandleFunc("/post/{id}/comment/{commentId}", handlers.DeleteCommentHandler).Methods("DELETE")

	r.HandleFunc("/post/{id}/reactions", handlers.GetReactionCountsHandler).Methods("GET")
	r.HandleFunc("/post/{id}/reaction", handlers.SetReactionHandler).Methods("POST")
	r.HandleFunc("/post/{id}/reactions/users/{type}", handlers.ListReactionUsersHandler).Methods("GET")

	r.HandleFunc("/admin/users", handlers.ListUsersHandler).Methods("GET")
	r.HandleFunc("/admin/users/{id}", handlers.DeleteUserHandler).Methods("DELETE")
	r.HandleFunc("/admin/users/{id}/stats", handlers.UserStatsHandler).Methods("GET")
	r.HandleFunc("/admin/users/{id}/role", handlers.ToggleUserRoleHandler).Methods("PATCH")

	r.HandleFunc("/api/visitors", handlers.CreateVisitorHandler).Methods("POST")
	r.HandleFunc("/api/visitors", handlers.VisitorCountHandler).Methods("GET")
	r.HandleFunc("/api/user-count", handlers.UserCountHandler).Methods("GET")

	return r

}
