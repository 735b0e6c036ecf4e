package dto

// LoginRequest carries administrator credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"super"`
	Password string `json:"password" binding:"required" example:"super123"`
}

// LoginResponse returns the issued token and the administrator's role
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role" example:"super"`
	ExpiresIn int    `json:"expiresIn" example:"86400"`
}
