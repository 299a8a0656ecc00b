package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/rs/zerolog/log"

	"github.com/cloudpeak/authgate/internal/config"
)

var _ EmailSender = (*SESEmailService)(nil)

// SESEmailService sends the verification email through Amazon SES.
type SESEmailService struct {
	client *ses.Client
	cfg    *config.MailSettings
}

// NewSESEmailService creates a new SESEmailService.
func NewSESEmailService(client *ses.Client, mailCfg *config.MailSettings) *SESEmailService {
	return &SESEmailService{client: client, cfg: mailCfg}
}

// SendVerificationEmail mails a link to the verification page carrying the
// URL-encoded address and the hex token.
func (s *SESEmailService) SendVerificationEmail(ctx context.Context, toEmail, verifyToken string) error {
	if s.cfg.Source == "" || s.cfg.VerificationPage == "" {
		return fmt.Errorf("mail source and verification page must be configured")
	}

	subject := "Verification Email for " + s.cfg.ExternalName
	link := s.cfg.VerificationPage + "?email=" + url.QueryEscape(toEmail) + "&verify=" + verifyToken
	body := "<html><head>" +
		`<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />` +
		"<title>" + subject + "</title>" +
		"</head><body>" +
		`Please <a href="` + link + `">click here to verify your email address</a> or copy & paste the following link in a browser:` +
		"<br><br>" +
		`<a href="` + link + `">` + link + "</a>" +
		"</body></html>"

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.cfg.Source),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send verification email to %q: %w", toEmail, err)
	}

	log.Info().Str("toEmail", toEmail).Msg("Verification email sent")
	return nil
}
