package db

import (
	"time"

	"inkwell-server/shared"
)

// The models below should only be used server-side. Models exposed to the
// client have a ToApi() method converting to the corresponding shared model,
// which keeps store-only fields (password hashes, reset tokens, asset keys)
// from leaking.

type User struct {
	Id           string `bson:"_id,omitempty"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password"`
	IsAdmin      bool   `bson:"isAdmin"`

	ResetCodeHash  *string    `bson:"resetPasswordToken,omitempty"`
	ResetExpiresAt *time.Time `bson:"resetPasswordExpires,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (user *User) ToApi() *shared.User {
	return &shared.User{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (user *User) ToAuthor() *shared.Author {
	return &shared.Author{
		Id:       user.Id,
		Username: user.Username,
	}
}

type Post struct {
	Id      string `bson:"_id,omitempty"`
	Title   string `bson:"title"`
	Summary string `bson:"summary"`
	Content string `bson:"content"`

	// Cover is the public URL; CoverKey is the storage key needed to delete
	// the object.
	Cover    string `bson:"cover"`
	CoverKey string `bson:"coverId"`

	AuthorId string `bson:"author"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (post *Post) ToApi(author *User) *shared.Post {
	var a *shared.Author
	if author != nil {
		a = author.ToAuthor()
	}
	return &shared.Post{
		Id:        post.Id,
		Title:     post.Title,
		Summary:   post.Summary,
		Content:   post.Content,
		Cover:     post.Cover,
		Author:    a,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

type Comment struct {
	Id       string `bson:"_id,omitempty"`
	PostId   string `bson:"post"`
	AuthorId string `bson:"author"`
	Content  string `bson:"content"`

	CreatedAt time.Time `bson:"createdAt"`
}

func (comment *Comment) ToApi(author *User) *shared.Comment {
	var a *shared.Author
	if author != nil {
		a = author.ToAuthor()
	}
	return &shared.Comment{
		Id:        comment.Id,
		PostId:    comment.PostId,
		Content:   comment.Content,
		Author:    a,
		CreatedAt: comment.CreatedAt,
	}
}

type Reaction struct {
	Id     string              `bson:"_id,omitempty"`
	PostId string              `bson:"post"`
	UserId string              `bson:"user"`
	Type   shared.ReactionType `bson:"type"`

	CreatedAt time.Time `bson:"createdAt"`
}

type Visitor struct {
	Id           string    `bson:"_id,omitempty"`
	City         string    `bson:"city"`
	Country      string    `bson:"country"`
	DateAccepted time.Time `bson:"dateAccepted"`
}
