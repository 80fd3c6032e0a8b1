package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI is the part of the SES client the email service uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends expiry alerts via Amazon SES
type EmailService struct {
	client    sesAPI
	fromEmail string
	toEmail   string
	enabled   bool
}

var _ Notifier = (*EmailService)(nil)

// NewEmailService creates a new email service. It is disabled, and only
// logs, when either address is empty.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, toEmail string) (*EmailService, error) {
	if fromEmail == "" || toEmail == "" {
		log.Println("Email alerts disabled: SES_FROM_EMAIL or ALERT_TO_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email alerts enabled: from=%s, to=%s, region=%s", fromEmail, toEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		toEmail:   toEmail,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// NotifyExpired e-mails the configured recipient about an overdue session
func (s *EmailService) NotifyExpired(ctx context.Context, alert ExpiryAlert) error {
	if !s.enabled {
		return LogNotifier{}.NotifyExpired(ctx, alert)
	}

	child := alert.ChildName
	if child == "" {
		child = fmt.Sprintf("child #%d", alert.Session.ChildID)
	}
	game := alert.GameName
	if game == "" {
		game = fmt.Sprintf("game #%d", alert.Session.GameID)
	}
	started := time.UnixMilli(alert.Session.Start).UTC().Format(time.RFC1123)
	overdue := alert.Overdue.Round(time.Minute)

	subject := fmt.Sprintf("Play time is up for %s", child)
	textBody := fmt.Sprintf(`%s has been playing %s since %s.

The session was booked for %g minutes and is now %s over.

End the session in the tracker once play has stopped.
`, child, game, started, alert.Session.Duration, overdue)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<p><strong>%s</strong> has been playing <strong>%s</strong> since %s.</p>
	<p>The session was booked for %g minutes and is now %s over.</p>
	<p>End the session in the tracker once play has stopped.</p>
</body>
</html>
`, html.EscapeString(child), html.EscapeString(game), started, alert.Session.Duration, overdue)

	return s.sendEmail(ctx, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, subject, htmlBody, textBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{s.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", s.toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", s.toEmail, subject)
	return nil
}
