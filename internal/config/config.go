package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// AuthSettings binds the workflow to its managed collaborators: the user table
// in the key-value store and the federated identity pool.
type AuthSettings struct {
	UserTable             string
	IdentityPoolID        string
	DeveloperProviderName string
}

// MailSettings drives the verification email.
type MailSettings struct {
	// Source is the verified sender address.
	Source string
	// ExternalName is the user-facing application name used in the subject.
	ExternalName string
	// VerificationPage is the base URL the emailed link points at; the email
	// and token are appended as query parameters.
	VerificationPage string
}

type Config struct {
	// Server port
	Port      string
	LogLevel  string
	AppEnv    string
	AWSRegion string
	Auth      AuthSettings
	Mail      MailSettings
	// DownstreamTimeout bounds every call to a managed service. The hosting
	// runtime used to be the only watchdog; now each call gets its own.
	DownstreamTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Info().Msg("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DOWNSTREAM_TIMEOUT_SECONDS", 10)

	userTable := viper.GetString("DDB_TABLE")
	if userTable == "" {
		return nil, fmt.Errorf("DDB_TABLE must be set")
	}

	timeoutSeconds := viper.GetInt("DOWNSTREAM_TIMEOUT_SECONDS")
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
		log.Warn().Msg("Invalid DOWNSTREAM_TIMEOUT_SECONDS, defaulting to 10")
	}

	return &Config{
		Port:      viper.GetString("APP_PORT"),
		LogLevel:  viper.GetString("LOG_LEVEL"),
		AppEnv:    viper.GetString("APP_ENV"),
		AWSRegion: viper.GetString("AWS_REGION"),
		Auth: AuthSettings{
			UserTable:             userTable,
			IdentityPoolID:        viper.GetString("IDENTITY_POOL_ID"),
			DeveloperProviderName: viper.GetString("DEVELOPER_PROVIDER_NAME"),
		},
		Mail: MailSettings{
			Source:           viper.GetString("EMAIL_SOURCE"),
			ExternalName:     viper.GetString("EXTERNAL_NAME"),
			VerificationPage: viper.GetString("VERIFICATION_PAGE"),
		},
		DownstreamTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}
