package models

// CredentialsRequest is the input for both registration and login.
type CredentialsRequest struct {
	Email         string `json:"email"`
	ClearPassword string `json:"clearPassword"`
}

// RegisterResult reports whether a new record was created. created=false means
// the email was already taken, which is a normal outcome, not a failure.
type RegisterResult struct {
	Created bool `json:"created"`
}

// LoginResult carries the federated identity credentials on success. The token
// fields are absent whenever Login is false.
type LoginResult struct {
	Login      bool   `json:"login"`
	IdentityID string `json:"identityId,omitempty"`
	Token      string `json:"token,omitempty"`
}

// VerifyRequest is the input for the verification-confirmation step. Token is
// the hex value from the verification email link.
type VerifyRequest struct {
	Email string `json:"email"`
	Token string `json:"verify"`
}

// VerifyResult reports whether the record was flipped to verified.
type VerifyResult struct {
	Verified bool `json:"verified"`
}

// ErrorResponse standard error format
type ErrorResponse struct {
	Error string `json:"error"`
}
