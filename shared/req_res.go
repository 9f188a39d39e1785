package shared

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=4,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterResponse struct {
	Id  string `json:"id"`
	Msg string `json:"message"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	Token    string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordResponse struct {
	Msg       string `json:"message"`
	ExpiresIn string `json:"expiresIn"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ResetCode   string `json:"resetCode" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type UpdatePostRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type SetReactionRequest struct {
	Type ReactionType `json:"type" validate:"required"`
}

type SetReactionResponse struct {
	Result ToggleResult `json:"result"`
	Msg    string       `json:"message"`
}

type ToggleRoleResponse struct {
	IsAdmin bool   `json:"isAdmin"`
	Msg     string `json:"message"`
}

type CreateVisitorRequest struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
