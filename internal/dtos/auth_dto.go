package dtos

// TokenRequest is the identity a client asks to be issued a credential for.
// The email is taken as given; it is only required to be present.
// Extra profile fields are carried into the token as-is.
type TokenRequest struct {
	Email string `json:"email" binding:"required"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
