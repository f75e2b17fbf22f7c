package models

// User is the minimal identity the client keeps about the signed-in account.
// The full profile is owned by the backend.
type User struct {
	// Email identifies the user on the client side.
	Email string `json:"email"`
}

// Credentials carries the values a user types into the login or
// registration form. Username is used only during registration.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registered is the profile echoed back by a successful registration.
type Registered struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"created_at"`
}
