package shared

import "time"

// Client-facing models. Server-side documents live in the db package and
// convert with ToApi() so that store-only fields (password hashes, reset
// tokens, asset keys) never leak to the client.

type User struct {
	Id        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Post struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover"`
	Author    *Author   `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Author is the subset of User embedded in posts and comments.
type Author struct {
	Id       string `json:"id"`
	Username string `json:"username"`
}

type Comment struct {
	Id        string    `json:"id"`
	PostId    string    `json:"postId"`
	Content   string    `json:"content"`
	Author    *Author   `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserStats struct {
	PostsCount     int64 `json:"postsCount"`
	CommentsCount  int64 `json:"commentsCount"`
	ReactionsCount int64 `json:"reactionsCount"`
}
