package service

import (
	"context"
	"fmt"

	"github.com/cloudpeak/authgate/internal/models"
)

// AuthFlow is the registration/login/verification workflow.
type AuthFlow interface {
	// Register creates a new user record and sends the verification email.
	// A duplicate email yields {created:false}, not an error.
	Register(ctx context.Context, req models.CredentialsRequest) (*models.RegisterResult, error)
	// Login verifies the password against the stored record and, on match,
	// obtains a federated identity token. Unknown, unverified, and
	// wrong-password cases all collapse to {login:false}.
	Login(ctx context.Context, req models.CredentialsRequest) (*models.LoginResult, error)
	// ConfirmVerification flips a record to verified when the emailed token
	// matches. Unknown email and token mismatch collapse to {verified:false}.
	ConfirmVerification(ctx context.Context, req models.VerifyRequest) (*models.VerifyResult, error)
}

// EmailSender delivers the verification email for a freshly registered user.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, toEmail, verifyToken string) error
}

// IdentityProvider exchanges a verified login for federated identity
// credentials usable against downstream cloud resources.
type IdentityProvider interface {
	OpenIDTokenFor(ctx context.Context, email string) (identityID, token string, err error)
}

// Failure classes surfaced to callers. Each terminal failure wraps exactly one
// of these plus the underlying cause; the two "not an error" store outcomes
// (duplicate insert, missing record) never reach them.
var (
	ErrHash  = fmt.Errorf("password hashing failed")
	ErrStore = fmt.Errorf("user store failure")
	ErrMail  = fmt.Errorf("verification email failure")
	ErrToken = fmt.Errorf("identity token failure")
)
