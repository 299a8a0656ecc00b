package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cloudpeak/authgate/internal/handlers"
)

func SetupAuthRoutes(app *echo.Echo, authHandler *handlers.AuthHandler) {
	api := app.Group("/api/auth")

	api.POST("/register", authHandler.Register) // User registration + verification email
	api.POST("/login", authHandler.Login)       // Password check + federated identity token
	api.POST("/verify", authHandler.Verify)     // Consume the emailed verification token
}
