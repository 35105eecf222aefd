package sns

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-shop-auth/internal/config"
	"github.com/go-shop-auth/internal/domain"
)

// SMSSender sends SMS messages via AWS SNS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type sender struct {
	client *sns.Client
}

func NewSender(ctx context.Context, cfg *config.Config) (SMSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SNSRegion))
	if err != nil {
		return nil, err
	}
	return &sender{client: sns.NewFromConfig(awsCfg)}, nil
}

func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &to,
		Message:     &message,
	})
	return err
}

type emailChannel interface {
	Send(ctx context.Context, msg domain.Message) error
}

// Mirror delivers through the email channel and, when the message carries a
// phone number, sends the code by SMS too. Only the email result counts.
type Mirror struct {
	email emailChannel
	sms   SMSSender
}

func NewMirror(email emailChannel, sms SMSSender) *Mirror {
	return &Mirror{email: email, sms: sms}
}

func (m *Mirror) Send(ctx context.Context, msg domain.Message) error {
	if err := m.email.Send(ctx, msg); err != nil {
		return err
	}
	code := msg.Data["otp"]
	if msg.Phone == "" || code == "" {
		return nil
	}
	text := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	if err := m.sms.SendSMS(ctx, msg.Phone, text); err != nil {
		slog.Warn("sms otp copy failed", "phone", msg.Phone, "err", err)
	}
	return nil
}
