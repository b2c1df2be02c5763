package dto

// RegisterRequest payload for new users. Fields arrive as form values
// or JSON; both bind to the same flat shape.
type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ActionResult is the uniform result shape every action returns.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
