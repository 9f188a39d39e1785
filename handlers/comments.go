package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"inkwell-server/authz"
	"inkwell-server/db"
	"inkwell-server/shared"
)

func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateCommentHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}
	if !requireAuthorized(w, auth, authz.ActionCreateComment, authz.Resource{}) {
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

	var req shared.CreateCommentRequest
	if !readJson(w, r, &req) {
		return
	}

	comment := &db.Comment{
		PostId:   post.Id,
		AuthorId: auth.User.Id,
		Content:  req.Content,
	}
	if err := db.CreateComment(r.Context(), comment); err != nil {
		serverError(w, r, "Error creating comment", err)
		return
	}

	log.Println("Successfully created comment")

	writeJsonStatus(w, http.StatusCreated, comment.ToApi(auth.User))
}

func DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteCommentHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)

	comment, err := db.GetComment(r.Context(), vars["commentId"])
	if err != nil {
		serverError(w, r, "Error fetching comment", err)
		return
	}
	if comment == nil || comment.PostId != vars["id"] {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Comment not found",
		})
		return
	}

	if !requireAuthorized(w, auth, authz.ActionDeleteComment, authz.Resource{OwnerId: comment.AuthorId}) {
		return
	}

	if err := db.DeleteComment(r.Context(), comment.Id); err != nil {
		serverError(w, r, "Error deleting comment", err)
		return
	}

	log.Println("Successfully deleted comment")

	writeJson(w, map[string]string{"message": "Comment deleted successfully"})
}

func ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListCommentsHandler")

	comments, authors, err := db.ListCommentsForPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serverError(w, r, "Error listing comments", err)
		return
	}

	apiComments := make([]*shared.Comment, 0, len(comments))
	for _, comment := range comments {
		apiComments = append(apiComments, comment.ToApi(authors[comment.AuthorId]))
	}
	writeJson(w, apiComments)
}
