package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"

	"github.com/go-shop-auth/internal/domain"
)

const subject = "Verify your email"

type deliveryChannel interface {
	Send(ctx context.Context, msg domain.Message) error
}

// Recipient identifies who a code is sent to.
type Recipient struct {
	Name  string
	Email string
	Phone string
}

// Issuer generates codes, delivers them and records the pending code with
// its resend cooldown.
type Issuer struct {
	store            kvStore
	channel          deliveryChannel
	persistOnFailure bool
	newCode          func() (string, error)
}

// NewIssuer builds an Issuer. When persistOnFailure is set the code and
// cooldown are stored even if delivery fails.
func NewIssuer(store kvStore, channel deliveryChannel, persistOnFailure bool) *Issuer {
	return &Issuer{
		store:            store,
		channel:          channel,
		persistOnFailure: persistOnFailure,
		newCode:          generateCode,
	}
}

// Issue sends a fresh 4-digit code to the recipient using the given template
// and stores it for CodeTTL. Any previous pending code is replaced.
func (i *Issuer) Issue(ctx context.Context, to Recipient, kind domain.TemplateKind) error {
	code, err := i.newCode()
	if err != nil {
		return fmt.Errorf("otp issue: %w", err)
	}

	sendErr := i.channel.Send(ctx, domain.Message{
		To:       to.Email,
		Phone:    to.Phone,
		Subject:  subject,
		Template: kind,
		Data:     map[string]string{"name": to.Name, "otp": code},
	})
	if sendErr != nil {
		slog.Error("otp: delivery failed", "email", to.Email, "template", kind, "error", sendErr)
		if !i.persistOnFailure {
			return fmt.Errorf("otp delivery: %w", sendErr)
		}
	}

	if err := i.store.Set(ctx, codeKey(to.Email), code, CodeTTL); err != nil {
		return fmt.Errorf("otp issue: %w", err)
	}
	if err := i.store.Set(ctx, cooldownKey(to.Email), "true", CooldownTTL); err != nil {
		return fmt.Errorf("otp issue: %w", err)
	}
	if sendErr != nil {
		return fmt.Errorf("otp delivery: %w", sendErr)
	}
	return nil
}

// generateCode returns a uniformly random integer in [1000, 9999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}
