package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/cloudpeak/authgate/internal/models"
	"github.com/cloudpeak/authgate/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	AuthService service.AuthFlow
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthFlow) *AuthHandler {
	return &AuthHandler{AuthService: authService}
}

// Register handles user registration requests. A duplicate email is a normal
// 200 response with created=false; only real downstream failures become 500s.
func (h *AuthHandler) Register(c echo.Context) error {
	req := new(models.CredentialsRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	ctx := c.Request().Context()

	result, err := h.AuthService.Register(ctx, *req)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Registration failed")
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: failureMessage(err)})
	}
	return c.JSON(http.StatusOK, result)
}

// Login handles login requests. All negative outcomes share the same
// {login:false} body so the response shape never reveals whether the account
// exists or is unverified.
func (h *AuthHandler) Login(c echo.Context) error {
	req := new(models.CredentialsRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	ctx := c.Request().Context()

	result, err := h.AuthService.Login(ctx, *req)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Login failed")
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: failureMessage(err)})
	}
	return c.JSON(http.StatusOK, result)
}

// Verify consumes the token from the verification email link.
func (h *AuthHandler) Verify(c echo.Context) error {
	req := new(models.VerifyRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and verify token are required")
	}

	ctx := c.Request().Context()

	result, err := h.AuthService.ConfirmVerification(ctx, *req)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Verification failed")
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: failureMessage(err)})
	}
	return c.JSON(http.StatusOK, result)
}

// failureMessage collapses a terminal failure to the single message string the
// caller receives. Internals stay in the logs.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrHash):
		return "Error computing password hash"
	case errors.Is(err, service.ErrStore):
		return "Error accessing user store"
	case errors.Is(err, service.ErrMail):
		return "Error sending verification email"
	case errors.Is(err, service.ErrToken):
		return "Error obtaining identity token"
	default:
		return "Internal server error"
	}
}
