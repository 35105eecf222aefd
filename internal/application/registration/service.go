package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-shop-auth/internal/application/account"
	"github.com/go-shop-auth/internal/application/otp"
	"github.com/go-shop-auth/internal/domain"
	"github.com/go-shop-auth/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type Request struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
}

type ConfirmRequest struct {
	Request
	OTP string `json:"otp" validate:"required"`
}

// Service runs the two-step OTP-gated signup for both account kinds.
type Service interface {
	// Request validates the signup, applies OTP throttling and mails a code.
	Request(ctx context.Context, role domain.Role, req Request) error
	// Confirm verifies the code and creates the account.
	Confirm(ctx context.Context, role domain.Role, req ConfirmRequest) (*domain.Account, error)
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

type service struct {
	accounts kindResolver
	gate     otpGate
	issuer   otpIssuer
	verifier otpVerifier
}

type ServiceDeps struct {
	Accounts kindResolver
	Gate     otpGate
	Issuer   otpIssuer
	Verifier otpVerifier
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts: deps.Accounts,
		gate:     deps.Gate,
		issuer:   deps.Issuer,
		verifier: deps.Verifier,
	}
}

func (s *service) Request(ctx context.Context, role domain.Role, req Request) error {
	kind, err := s.prepare(ctx, role, req)
	if err != nil {
		return err
	}
	if err := s.gate.Admit(ctx, req.Email); err != nil {
		return err
	}
	to := otp.Recipient{Name: req.Name, Email: req.Email, Phone: req.PhoneNumber}
	return s.issuer.Issue(ctx, to, kind.ActivationTemplate())
}

func (s *service) Confirm(ctx context.Context, role domain.Role, req ConfirmRequest) (*domain.Account, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	kind, err := s.prepare(ctx, role, req.Request)
	if err != nil {
		return nil, err
	}
	res, err := s.verifier.Verify(ctx, req.Email, req.OTP)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return kind.Create(ctx, newAccount(req.Request, string(hash)))
}

// prepare validates req for role and ensures the email is not yet registered.
func (s *service) prepare(ctx context.Context, role domain.Role, req Request) (account.Kind, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	kind, err := s.accounts.Kind(role)
	if err != nil {
		return nil, err
	}
	if err := kind.Validate(newAccount(req, "")); err != nil {
		return nil, err
	}
	_, err = kind.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s already exists with this email: %w", role, domain.ErrBadRequest)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return kind, nil
}

func newAccount(req Request, hash string) domain.NewAccount {
	return domain.NewAccount{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PhoneNumber:  req.PhoneNumber,
		Country:      req.Country,
	}
}
