package models

// User is the single source of truth for an account, keyed by email.
// PasswordHash and PasswordSalt are base64, VerifyToken is hex; all three are
// written once at registration and never change. Verified flips to true only
// through the verification-confirmation flow.
type User struct {
	Email        string `json:"email" dynamodbav:"email"`
	PasswordHash string `json:"-" dynamodbav:"passwordHash"`
	PasswordSalt string `json:"-" dynamodbav:"passwordSalt"`
	Verified     bool   `json:"verified" dynamodbav:"verified"`
	VerifyToken  string `json:"-" dynamodbav:"verifyToken"`
}
