package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"inkwell-server/authz"
	"inkwell-server/db"
	"inkwell-server/shared"
)

func SetReactionHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SetReactionHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}
	if !requireAuthorized(w, auth, authz.ActionSetReaction, authz.Resource{}) {
		return
	}

	post, err := db.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serverError(w, r, "Error fetching post", err)
		return
	}
	if post == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Post not found",
		})
		return
	}

	var req shared.SetReactionRequest
	if !readJson(w, r, &req) {
		return
	}
	if !req.Type.IsValid() {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Invalid reaction type",
		})
		return
	}

	result, err := db.SetReaction(r.Context(), post.Id, auth.User.Id, req.Type)
	if errors.Is(err, db.ErrReactionConflict) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeConflict,
			Status: http.StatusConflict,
			Msg:    "Conflicting reaction updates, please retry",
		})
		return
	}
	if err != nil {
		serverError(w, r, "Error updating reaction", err)
		return
	}

	msg := "Reaction added successfully"
	if result == shared.ToggleResultRemoved {
		msg = "Reaction removed successfully"
	}

	log.Println("Successfully toggled reaction")

	writeJson(w, shared.SetReactionResponse{Result: result, Msg: msg})
}

func GetReactionCountsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetReactionCountsHandler")

	counts, err := db.GetReactionCounts(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serverError(w, r, "Error fetching reactions", err)
		return
	}

	writeJson(w, counts)
}

func ListReactionUsersHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListReactionUsersHandler")

	vars := mux.Vars(r)

	reactionType := shared.ReactionType(vars["type"])
	if !reactionType.IsValid() {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Invalid reaction type",
		})
		return
	}

	users, err := db.ListReactionUsers(r.Context(), vars["id"], reactionType)
	if err != nil {
		serverError(w, r, "Error fetching reaction users", err)
		return
	}

	writeJson(w, users)
}
