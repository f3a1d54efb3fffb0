package dto

// Envelope is the uniform response wrapper. Every API response carries
// success; message is set on business-rule failures.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// SessionUser is the trimmed identity returned by login.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type LoginResponse struct {
	Success  bool        `json:"success"`
	UserType string      `json:"userType"`
	User     SessionUser `json:"user"`
}

// ProfileUser is the shape returned by current-user; includes email.
type ProfileUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type CurrentUserResponse struct {
	Success  bool        `json:"success"`
	User     ProfileUser `json:"user"`
	UserType string      `json:"userType"`
}
