package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-shop-auth/internal/application/account"
	"github.com/go-shop-auth/internal/domain"
	jwtinfra "github.com/go-shop-auth/internal/infrastructure/jwt"
	"github.com/go-shop-auth/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	Account      *domain.Account
}

type RefreshResult struct {
	AccessToken string
	AccessTTL   time.Duration
	Role        domain.Role
	Account     *domain.Account
}

type Service interface {
	Login(ctx context.Context, role domain.Role, req LoginRequest) (*LoginResult, error)
	// Refresh mints a new access token from a refresh token. The account kind
	// is taken from the token's role claim, not from the caller.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
	// Resolve loads the account an access token's subject names.
	Resolve(ctx context.Context, role domain.Role, subject string) (*domain.Account, error)
}

type kindResolver interface {
	Kind(role domain.Role) (account.Kind, error)
}

type tokenCodec interface {
	SignAccess(subject string, role domain.Role) (string, error)
	SignRefresh(subject string, role domain.Role) (string, error)
	VerifyRefresh(token string) (*jwtinfra.Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type service struct {
	accounts kindResolver
	tokens   tokenCodec
}

type ServiceDeps struct {
	Accounts kindResolver
	Tokens   tokenCodec
}

func NewService(deps ServiceDeps) Service {
	return &service{accounts: deps.Accounts, tokens: deps.Tokens}
}

func (s *service) Login(ctx context.Context, role domain.Role, req LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	kind, err := s.accounts.Kind(role)
	if err != nil {
		return nil, err
	}
	acc, err := kind.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	access, err := s.tokens.SignAccess(acc.ID, kind.Role())
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.SignRefresh(acc.ID, kind.Role())
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessTTL:    s.tokens.AccessTTL(),
		RefreshTTL:   s.tokens.RefreshTTL(),
		Account:      acc,
	}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token required: %w", domain.ErrUnauthorized)
	}
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %v: %w", err, domain.ErrUnauthorized)
	}

	role := domain.RoleBuyer
	if claims.Role == "" {
		slog.Warn("refresh token without role claim, treating as buyer", "sub", claims.Subject)
	} else if role, err = domain.ParseRole(claims.Role); err != nil {
		return nil, fmt.Errorf("invalid refresh token role: %w", domain.ErrUnauthorized)
	}

	acc, err := s.Resolve(ctx, role, claims.Subject)
	if err != nil {
		return nil, err
	}
	access, err := s.tokens.SignAccess(acc.ID, role)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{
		AccessToken: access,
		AccessTTL:   s.tokens.AccessTTL(),
		Role:        role,
		Account:     acc,
	}, nil
}

func (s *service) Resolve(ctx context.Context, role domain.Role, subject string) (*domain.Account, error) {
	kind, err := s.accounts.Kind(role)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}
	acc, err := kind.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s not found for token: %w", role, domain.ErrForbidden)
		}
		return nil, err
	}
	return acc, nil
}
