package dto

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for account registration
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
}

// SignInRequest: payload for signing in
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest: payload for rotating the token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse: token pair returned by sign-in and refresh
type AuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"` // always "Bearer"
	ExpiresIn    int64           `json:"expires_in"` // seconds
	Profile      ProfileResponse `json:"profile"`
}
