package password

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-shop-auth/internal/application/account"
	"github.com/go-shop-auth/internal/application/otp"
	"github.com/go-shop-auth/internal/domain"
	"github.com/go-shop-auth/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// VerifiedTTL bounds how long a verified reset OTP lets the password be set.
const VerifiedTTL = 10 * time.Minute

func verifiedKey(email string) string { return "otp_reset_verified:" + email }

type ForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type ResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required"`
}

// Service runs forgot-password: request a code, verify it, then set the new
// password within VerifiedTTL.
type Service interface {
	Forgot(ctx context.Context, role domain.Role, req ForgotRequest) error
	Verify(ctx context.Context, req VerifyRequest) error
	Reset(ctx context.Context, role domain.Role, req ResetRequest) error
}

type kindResolver interface {
	Kind(role domain.Role) (account.Kind, error)
}

type otpGate interface {
	Admit(ctx context.Context, email string) error
}

type otpIssuer interface {
	Issue(ctx context.Context, to otp.Recipient, kind domain.TemplateKind) error
}

type otpVerifier interface {
	Verify(ctx context.Context, email, code string) (otp.Result, error)
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type service struct {
	accounts kindResolver
	gate     otpGate
	issuer   otpIssuer
	verifier otpVerifier
	store    kvStore
}

type ServiceDeps struct {
	Accounts kindResolver
	Gate     otpGate
	Issuer   otpIssuer
	Verifier otpVerifier
	Store    kvStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts: deps.Accounts,
		gate:     deps.Gate,
		issuer:   deps.Issuer,
		verifier: deps.Verifier,
		store:    deps.Store,
	}
}

func (s *service) Forgot(ctx context.Context, role domain.Role, req ForgotRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	kind, acc, err := s.lookup(ctx, role, req.Email)
	if err != nil {
		return err
	}
	if err := s.gate.Admit(ctx, req.Email); err != nil {
		return err
	}
	to := otp.Recipient{Name: acc.Name, Email: acc.Email}
	if acc.Seller != nil {
		to.Phone = acc.Seller.PhoneNumber
	}
	return s.issuer.Issue(ctx, to, kind.ResetTemplate())
}

func (s *service) Verify(ctx context.Context, req VerifyRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	res, err := s.verifier.Verify(ctx, req.Email, req.OTP)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}
	return s.store.Set(ctx, verifiedKey(req.Email), "true", VerifiedTTL)
}

func (s *service) Reset(ctx context.Context, role domain.Role, req ResetRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	kind, acc, err := s.lookup(ctx, role, req.Email)
	if err != nil {
		return err
	}
	_, ok, err := s.store.Get(ctx, verifiedKey(req.Email))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("verify the reset OTP first: %w", domain.ErrBadRequest)
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.NewPassword)) == nil {
		return fmt.Errorf("new password cannot be the same as the old password: %w", domain.ErrBadRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := kind.SetPasswordHash(ctx, acc.ID, string(hash)); err != nil {
		return err
	}
	return s.store.Delete(ctx, verifiedKey(req.Email))
}

func (s *service) lookup(ctx context.Context, role domain.Role, email string) (account.Kind, *domain.Account, error) {
	kind, err := s.accounts.Kind(role)
	if err != nil {
		return nil, nil, err
	}
	acc, err := kind.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s not found: %w", role, domain.ErrBadRequest)
		}
		return nil, nil, err
	}
	return kind, acc, nil
}
