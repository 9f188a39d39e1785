package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"inkwell-server/assets"
	"inkwell-server/authz"
	"inkwell-server/db"
	"inkwell-server/shared"
	"inkwell-server/store"
)

const maxCoverSize = 10 << 20 // 10 MB

func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreatePostHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}
	if !requireAuthorized(w, auth, authz.ActionCreatePost, authz.Resource{}) {
		return
	}

	if err := r.ParseMultipartForm(maxCoverSize); err != nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Invalid multipart form",
		})
		return
	}

	title := r.FormValue("title")
	summary := r.FormValue("summary")
	content := r.FormValue("content")
	if title == "" || summary == "" || content == "" {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Title, summary, and content are required",
		})
		return
	}

	cover, ok := readCoverFile(w, r, true)
	if !ok {
		return
	}

	stored, err := assets.Store(r.Context(), cover.data, cover.contentType)
	if err != nil {
		log.Printf("error storing cover asset: %v\n", err)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeUpstreamAsset,
			Status: http.StatusBadGateway,
			Msg:    "Failed to store cover image",
		})
		return
	}

	post := &db.Post{
		Title:    title,
		Summary:  summary,
		Content:  content,
		Cover:    stored.Url,
		CoverKey: stored.Key,
		AuthorId: auth.User.Id,
	}
	if err := db.CreatePost(r.Context(), post); err != nil {
		serverError(w, r, "Error creating post", err)
		return
	}

	log.Println("Successfully created post")

	writeJsonStatus(w, http.StatusCreated, post.ToApi(auth.User))
}

func ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListPostsHandler")

	posts, authors, err := db.ListPosts(r.Context())
	if err != nil {
		serverError(w, r, "Error listing posts", err)
		return
	}

	apiPosts := make([]*shared.Post, 0, len(posts))
	for _, post := range posts {
		apiPosts = append(apiPosts, post.ToApi(authors[post.AuthorId]))
	}
	writeJson(w, apiPosts)
}

func GetPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetPostHandler")

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

	// single-item reads don't reconcile; a missing author just renders null
	author, err := db.GetUser(r.Context(), post.AuthorId)
	if err != nil {
		serverError(w, r, "Error fetching author", err)
		return
	}

	writeJson(w, post.ToApi(author))
}

func UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdatePostHandler")

	auth := authenticate(w, r)
	if auth == nil {
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

	if !requireAuthorized(w, auth, authz.ActionEditPost, authz.Resource{OwnerId: post.AuthorId}) {
		return
	}

	patch := store.Patch{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxCoverSize); err != nil {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeValidation,
				Status: http.StatusBadRequest,
				Msg:    "Invalid multipart form",
			})
			return
		}

		applyIfSet(patch, "title", r.FormValue("title"))
		applyIfSet(patch, "summary", r.FormValue("summary"))
		applyIfSet(patch, "content", r.FormValue("content"))

		cover, ok := readCoverFile(w, r, false)
		if !ok {
			return
		}
		if cover != nil {
			stored, err := assets.Store(r.Context(), cover.data, cover.contentType)
			if err != nil {
				log.Printf("error storing cover asset: %v\n", err)
				writeApiError(w, shared.ApiError{
					Type:   shared.ApiErrorTypeUpstreamAsset,
					Status: http.StatusBadGateway,
					Msg:    "Failed to store cover image",
				})
				return
			}
			// the replaced cover is deleted best-effort
			assets.Delete(r.Context(), post.CoverKey)
			patch["cover"] = stored.Url
			patch["coverId"] = stored.Key
		}
	} else {
		var req shared.UpdatePostRequest
		if !readJson(w, r, &req) {
			return
		}
		applyIfSet(patch, "title", req.Title)
		applyIfSet(patch, "summary", req.Summary)
		applyIfSet(patch, "content", req.Content)
	}

	if err := db.UpdatePost(r.Context(), post.Id, patch); err != nil {
		serverError(w, r, "Error updating post", err)
		return
	}

	updated, err := db.GetPost(r.Context(), post.Id)
	if err != nil || updated == nil {
		serverError(w, r, "Error fetching updated post", err)
		return
	}

	author, err := db.GetUser(r.Context(), updated.AuthorId)
	if err != nil {
		serverError(w, r, "Error fetching author", err)
		return
	}

	log.Println("Successfully updated post")

	writeJson(w, updated.ToApi(author))
}

func DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeletePostHandler")

	auth := authenticate(w, r)
	if auth == nil {
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

	if !requireAuthorized(w, auth, authz.ActionDeletePost, authz.Resource{OwnerId: post.AuthorId}) {
		return
	}

	if err := db.DeletePostCascade(r.Context(), post.Id); err != nil {
		serverError(w, r, "Error deleting post and associated content", err)
		return
	}

	log.Println("Successfully deleted post")

	writeJson(w, map[string]string{"message": "Post and associated content deleted successfully"})
}

type coverFile struct {
	data        []byte
	contentType string
}

// readCoverFile pulls the uploaded "file" part out of a parsed multipart
// form. Returns (nil, true) when the part is absent and not required.
func readCoverFile(w http.ResponseWriter, r *http.Request, required bool) (*coverFile, bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if !required {
			return nil, true
		}
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeValidation,
			Status: http.StatusBadRequest,
			Msg:    "Cover image is required",
		})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		serverError(w, r, "Error reading cover image", err)
		return nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &coverFile{data: data, contentType: contentType}, true
}

func applyIfSet(patch store.Patch, field, value string) {
	if value != "" {
		patch[field] = value
	}
}
