package auth

// RegisterInput represents the request body for user registration.
type RegisterInput struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	BaseCurrency string `json:"base_currency,omitempty" validate:"omitempty,min=3,max=5"`
}

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the bearer token handed out on login and registration.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
