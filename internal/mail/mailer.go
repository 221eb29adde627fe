// Package mail sends transactional mail through Amazon SES.
package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Mailer sends family invitations via Amazon SES. When no sender address is
// configured it runs disabled and skips every send.
type Mailer struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewMailer creates a new Mailer. An empty fromEmail yields a disabled mailer.
func NewMailer(awsRegion, fromEmail, fromName, appBaseURL string) (*Mailer, error) {
	if fromEmail == "" {
		log.Println("Mail disabled: MAIL_FROM_ADDRESS not configured")
		return &Mailer{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Mail enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &Mailer{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the mailer is enabled
func (m *Mailer) IsEnabled() bool {
	return m.enabled
}

// SendJoinInvite mails the family join code to an invited parent.
func (m *Mailer) SendJoinInvite(ctx context.Context, toEmail, familyName, joinCode string) error {
	if !m.enabled {
		log.Printf("Skipping mail send (disabled): join invite to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("You're invited to join %s on Flow Fam", familyName)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>Join %s on Flow Fam</h2>
		<p>You've been invited to join this family. Open the app, choose
		<strong>Join a family</strong> and enter this code:</p>
		<p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p>
		<p>Or sign up first at <a href="%s">%s</a>.</p>
	</div>
</body>
</html>`, familyName, joinCode, m.appBaseURL, m.appBaseURL)

	textBody := fmt.Sprintf(
		"You've been invited to join %s on Flow Fam.\n\nJoin code: %s\n\nSign up at %s",
		familyName, joinCode, m.appBaseURL,
	)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send join invite: %w", err)
	}

	log.Printf("Join invite sent to %s", toEmail)
	return nil
}
