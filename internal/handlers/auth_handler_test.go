package handlers_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/cloudpeak/authgate/internal/handlers"
	"github.com/cloudpeak/authgate/internal/mocks"
	"github.com/cloudpeak/authgate/internal/models"
	"github.com/cloudpeak/authgate/internal/router"
	"github.com/cloudpeak/authgate/internal/server"
	"github.com/cloudpeak/authgate/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(mockAuthService *mocks.MockAuthFlow) *echo.Echo {
	app := server.New()
	router.SetupAuthRoutes(app, handlers.NewAuthHandler(mockAuthService))
	return app
}

func performRequest(app *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody io.Reader = nil
	if body != nil {
		jsonData, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestAuthHandler_Register(t *testing.T) {
	registerReq := models.CredentialsRequest{Email: "a@x.com", ClearPassword: "pw1"}

	t.Run("Created", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		mockAuthService.On("Register", registerReq).Return(&models.RegisterResult{Created: true}, nil).Once()

		rec := performRequest(app, "POST", "/api/auth/register", registerReq)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeBody[models.RegisterResult](t, rec).Created)
		mockAuthService.AssertExpectations(t)
	})

	t.Run("DuplicateIsStillOK", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		mockAuthService.On("Register", registerReq).Return(&models.RegisterResult{Created: false}, nil).Once()

		rec := performRequest(app, "POST", "/api/auth/register", registerReq)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, decodeBody[models.RegisterResult](t, rec).Created)
		mockAuthService.AssertExpectations(t)
	})

	t.Run("BadRequestInvalidJSON", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString("{invalid json"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockAuthService.AssertNotCalled(t, "Register", mock.Anything)
	})

	t.Run("BadRequestEmptyEmail", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		rec := performRequest(app, "POST", "/api/auth/register", models.CredentialsRequest{ClearPassword: "pw1"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockAuthService.AssertNotCalled(t, "Register", mock.Anything)
	})

	t.Run("MailFailure", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		serviceErr := fmt.Errorf("%w: smtp down", service.ErrMail)
		mockAuthService.On("Register", registerReq).Return(nil, serviceErr).Once()

		rec := performRequest(app, "POST", "/api/auth/register", registerReq)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Error sending verification email", decodeBody[models.ErrorResponse](t, rec).Error)
		mockAuthService.AssertExpectations(t)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	loginReq := models.CredentialsRequest{Email: "a@x.com", ClearPassword: "pw1"}

	t.Run("Success", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		mockAuthService.On("Login", loginReq).
			Return(&models.LoginResult{Login: true, IdentityID: "id-123", Token: "tok-456"}, nil).Once()

		rec := performRequest(app, "POST", "/api/auth/login", loginReq)

		assert.Equal(t, http.StatusOK, rec.Code)
		result := decodeBody[models.LoginResult](t, rec)
		assert.True(t, result.Login)
		assert.Equal(t, "id-123", result.IdentityID)
		assert.Equal(t, "tok-456", result.Token)
		mockAuthService.AssertExpectations(t)
	})

	t.Run("RejectedLoginOmitsTokenFields", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		mockAuthService.On("Login", loginReq).Return(&models.LoginResult{Login: false}, nil).Once()

		rec := performRequest(app, "POST", "/api/auth/login", loginReq)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, false, body["login"])
		assert.NotContains(t, body, "identityId")
		assert.NotContains(t, body, "token")
		mockAuthService.AssertExpectations(t)
	})

	t.Run("TokenFailure", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		serviceErr := fmt.Errorf("%w: pool gone", service.ErrToken)
		mockAuthService.On("Login", loginReq).Return(nil, serviceErr).Once()

		rec := performRequest(app, "POST", "/api/auth/login", loginReq)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Error obtaining identity token", decodeBody[models.ErrorResponse](t, rec).Error)
		mockAuthService.AssertExpectations(t)
	})

	t.Run("UnclassifiedFailure", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		mockAuthService.On("Login", loginReq).Return(nil, errors.New("boom")).Once()

		rec := performRequest(app, "POST", "/api/auth/login", loginReq)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeBody[models.ErrorResponse](t, rec).Error)
		mockAuthService.AssertExpectations(t)
	})
}

func TestAuthHandler_Verify(t *testing.T) {
	verifyReq := models.VerifyRequest{Email: "a@x.com", Token: "token"}

	t.Run("Verified", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		mockAuthService.On("ConfirmVerification", verifyReq).Return(&models.VerifyResult{Verified: true}, nil).Once()

		rec := performRequest(app, "POST", "/api/auth/verify", verifyReq)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeBody[models.VerifyResult](t, rec).Verified)
		mockAuthService.AssertExpectations(t)
	})

	t.Run("BadRequestMissingToken", func(t *testing.T) {
		mockAuthService := new(mocks.MockAuthFlow)
		app := setupTestApp(mockAuthService)

		rec := performRequest(app, "POST", "/api/auth/verify", models.VerifyRequest{Email: "a@x.com"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockAuthService.AssertNotCalled(t, "ConfirmVerification", mock.Anything)
	})
}
