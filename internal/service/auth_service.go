package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cloudpeak/authgate/internal/config"
	"github.com/cloudpeak/authgate/internal/models"
	"github.com/cloudpeak/authgate/internal/password"
	"github.com/cloudpeak/authgate/internal/repository"
)

var _ AuthFlow = (*AuthService)(nil)

// AuthService implements the credential workflow against injected
// collaborators. It holds no mutable state; every invocation is independent
// and the store's conditional write is the only concurrency control.
type AuthService struct {
	userRepo repository.UserRepository
	emailSvc EmailSender
	identity IdentityProvider
	timeout  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	emailSvc EmailSender,
	identity IdentityProvider,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		emailSvc: emailSvc,
		identity: identity,
		timeout:  cfg.DownstreamTimeout,
	}
}

// Register derives fresh credentials, inserts the record conditioned on the
// email being unused, and only then sends the verification email. The record
// must exist before any email goes out; a rejected duplicate sends nothing.
func (s *AuthService) Register(ctx context.Context, req models.CredentialsRequest) (*models.RegisterResult, error) {
	salt, hash, err := password.NewHash(req.ClearPassword)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Hash computation failed")
		return nil, fmt.Errorf("%w: %w", ErrHash, err)
	}

	token, err := password.NewVerifyToken()
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Verify token generation failed")
		return nil, fmt.Errorf("%w: %w", ErrHash, err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Verified:     false,
		VerifyToken:  token,
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.userRepo.CreateUser(storeCtx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			log.Info().Str("email", req.Email).Msg("Registration rejected, email already taken")
			return &models.RegisterResult{Created: false}, nil
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Storing user failed")
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	mailCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.emailSvc.SendVerificationEmail(mailCtx, req.Email, token); err != nil {
		// The record is already in the store; no rollback is attempted. The
		// caller sees a failure and the account stays unverified until a
		// fresh confirmation path resolves it.
		log.Error().Err(err).Str("email", req.Email).Msg("Sending verification email failed")
		return nil, fmt.Errorf("%w: %w", ErrMail, err)
	}

	log.Info().Str("email", req.Email).Msg("User registered")
	return &models.RegisterResult{Created: true}, nil
}

// Login recomputes the hash with the stored salt and compares it to the stored
// hash. Unknown users, unverified users and wrong passwords all produce the
// same {login:false} result so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, req models.CredentialsRequest) (*models.LoginResult, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	user, err := s.userRepo.GetUser(storeCtx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Info().Str("email", req.Email).Msg("User not found")
			return &models.LoginResult{Login: false}, nil
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Fetching user failed")
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	if !user.Verified {
		log.Info().Str("email", req.Email).Msg("User not verified")
		return &models.LoginResult{Login: false}, nil
	}

	if password.ComputeHash(req.ClearPassword, user.PasswordSalt) != user.PasswordHash {
		log.Info().Str("email", req.Email).Msg("User login failed")
		return &models.LoginResult{Login: false}, nil
	}

	idCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	identityID, token, err := s.identity.OpenIDTokenFor(idCtx, req.Email)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Identity token request failed")
		return nil, fmt.Errorf("%w: %w", ErrToken, err)
	}

	log.Info().Str("email", req.Email).Msg("User logged in")
	return &models.LoginResult{Login: true, IdentityID: identityID, Token: token}, nil
}

// ConfirmVerification consumes the emailed token. The store enforces the
// existence-and-token-match condition atomically.
func (s *AuthService) ConfirmVerification(ctx context.Context, req models.VerifyRequest) (*models.VerifyResult, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.userRepo.MarkVerified(storeCtx, req.Email, req.Token); err != nil {
		if errors.Is(err, repository.ErrVerifyTokenMismatch) {
			log.Info().Str("email", req.Email).Msg("Verification rejected")
			return &models.VerifyResult{Verified: false}, nil
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Marking user verified failed")
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	log.Info().Str("email", req.Email).Msg("User verified")
	return &models.VerifyResult{Verified: true}, nil
}
