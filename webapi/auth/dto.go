package auth

// LoginInput is the request body for the login endpoint. Identity accepts a
// username or an email.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
