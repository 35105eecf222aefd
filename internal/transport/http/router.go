package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/go-shop-auth/internal/application/account"
	"github.com/go-shop-auth/internal/application/otp"
	"github.com/go-shop-auth/internal/application/password"
	"github.com/go-shop-auth/internal/application/registration"
	"github.com/go-shop-auth/internal/application/session"
	"github.com/go-shop-auth/internal/config"
	"github.com/go-shop-auth/internal/domain"
	"github.com/go-shop-auth/internal/transport/http/handler"
	appmiddleware "github.com/go-shop-auth/internal/transport/http/middleware"
)

// otpTier bounds OTP-sending endpoints per IP on top of the per-email throttle.
var otpTier = appmiddleware.Tier{Requests: 10, Window: time.Minute}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	accounts := account.NewDirectory(deps.Buyers, deps.Sellers)
	throttle := otp.NewThrottle(deps.KV)
	issuer := otp.NewIssuer(deps.KV, deps.Channel, cfg.OTPPersistOnDeliveryFailure)
	verifier := otp.NewVerifier(deps.KV)

	registrationSvc := registration.NewService(registration.ServiceDeps{
		Accounts: accounts,
		Gate:     throttle,
		Issuer:   issuer,
		Verifier: verifier,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		Accounts: accounts,
		Tokens:   deps.JWTProvider,
	})
	passwordSvc := password.NewService(password.ServiceDeps{
		Accounts: accounts,
		Gate:     throttle,
		Issuer:   issuer,
		Verifier: verifier,
		Store:    deps.KV,
	})

	otpRL := appmiddleware.NewRateLimiter(otpTier, otpTier)

	healthH := handler.NewHealthHandler()
	regH := handler.NewRegistrationHandler(registrationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc, handler.CookieOptions{Secure: cfg.CookieSecure})
	pwH := handler.NewPasswordRecoveryHandler(passwordSvc)

	buyerAuth := appmiddleware.Auth(deps.JWTProvider, sessionSvc, domain.RoleBuyer)
	sellerAuth := appmiddleware.Auth(deps.JWTProvider, sessionSvc, domain.RoleSeller)

	r.Get("/health", healthH.Ping)

	r.Route("/api", func(r chi.Router) {
		// Buyer
		r.With(otpRL.Limit).Post("/user-registration", regH.Register(domain.RoleBuyer))
		r.Post("/verify-user", regH.Verify(domain.RoleBuyer))
		r.Post("/login-user", sessionH.Login(domain.RoleBuyer))
		r.With(otpRL.Limit).Post("/forgot-password-user", pwH.Forgot(domain.RoleBuyer))
		r.Post("/verify-forgot-password-user", pwH.Verify)
		r.Post("/reset-password-user", pwH.Reset(domain.RoleBuyer))
		r.Get("/logout-user", sessionH.Logout)
		r.With(buyerAuth).Get("/logged-in-user", sessionH.Me)

		// Seller
		r.With(otpRL.Limit).Post("/seller-registration", regH.Register(domain.RoleSeller))
		r.Post("/verify-seller", regH.Verify(domain.RoleSeller))
		r.Post("/login-seller", sessionH.Login(domain.RoleSeller))
		r.With(otpRL.Limit).Post("/forgot-password-seller", pwH.Forgot(domain.RoleSeller))
		r.Post("/verify-forgot-password-seller", pwH.Verify)
		r.Post("/reset-password-seller", pwH.Reset(domain.RoleSeller))
		r.Get("/logout-seller", sessionH.Logout)
		r.With(sellerAuth).Get("/logged-in-seller", sessionH.Me)

		// Shared by both roles; the token's role claim decides the cookie.
		r.Post("/refresh-token", sessionH.Refresh)
	})

	return r
}
