package model

// LoginRequest is the login form payload. The password is accepted but not verified.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration form payload
type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Name           string `json:"name" binding:"required"`
	Role           Role   `json:"role" binding:"required,role"`
	Specialization string `json:"specialization"`
	Department     string `json:"department"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	Address        string `json:"address"`
}

// AuthState is the serializable snapshot of a session.
// IsAuthenticated is always derived from the session state, never set directly.
type AuthState struct {
	User            *User   `json:"user"`
	Token           *string `json:"token"`
	IsAuthenticated bool    `json:"is_authenticated"`
}
