package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentity"

	"github.com/cloudpeak/authgate/internal/config"
)

var _ IdentityProvider = (*CognitoIdentityService)(nil)

// CognitoIdentityService issues OpenID tokens for developer-authenticated
// identities in the configured identity pool. The email doubles as the
// developer-provided login identifier.
type CognitoIdentityService struct {
	client *cognitoidentity.Client
	cfg    *config.AuthSettings
}

// NewCognitoIdentityService creates a new CognitoIdentityService.
func NewCognitoIdentityService(client *cognitoidentity.Client, authCfg *config.AuthSettings) *CognitoIdentityService {
	return &CognitoIdentityService{client: client, cfg: authCfg}
}

func (s *CognitoIdentityService) OpenIDTokenFor(ctx context.Context, email string) (string, string, error) {
	out, err := s.client.GetOpenIdTokenForDeveloperIdentity(ctx, &cognitoidentity.GetOpenIdTokenForDeveloperIdentityInput{
		IdentityPoolId: aws.String(s.cfg.IdentityPoolID),
		Logins: map[string]string{
			s.cfg.DeveloperProviderName: email,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("get open id token for %q: %w", email, err)
	}
	return aws.ToString(out.IdentityId), aws.ToString(out.Token), nil
}
