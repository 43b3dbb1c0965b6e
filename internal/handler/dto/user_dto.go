package dto

// LoginRequest is the login form
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterRequest creates the first (SuperAdmin) account
type RegisterRequest struct {
	FullName             string `form:"fullName" json:"full_name" binding:"required,min=3"`
	Email                string `form:"email" json:"email" binding:"required,email"`
	Password             string `form:"password" json:"password" binding:"required,min=8"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation" binding:"eqfield=Password"`
}

// TokenResponse carries a bearer token for API clients
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	UserID      uint   `json:"user_id"`
	Role        string `json:"role"`
}

// UserInput is the account part of a Guru/Staf/Siswa form. Password is
// optional on update; when given it must be confirmed.
type UserInput struct {
	FullName             string `json:"full_name" binding:"required,min=3"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"omitempty,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"eqfield=Password"`
}

// PaginatedResponse wraps one page of any listing
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalPages int         `json:"total_pages"`
}

// NewPaginatedResponse computes TotalPages
func NewPaginatedResponse(data interface{}, total int64, page, perPage int) *PaginatedResponse {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &PaginatedResponse{Data: data, Total: total, Page: page, PerPage: perPage, TotalPages: pages}
}
