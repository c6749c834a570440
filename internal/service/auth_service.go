package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizgem/config"
	"quizgem/internal/identity"
	"quizgem/internal/model"
	"quizgem/internal/repository"
)

// IdentityProvider is the slice of the identity client the auth service needs.
type IdentityProvider interface {
	AuthorizeURL(redirectTo string) string
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
	SignOut(ctx context.Context) error
}

// Identity is the authenticated caller attached to a request by the guard.
type Identity struct {
	Subject  string
	Username string
	Name     string
}

type AuthService interface {
	// LoginURL returns the provider consent page the client should redirect to.
	LoginURL() string
	// ResolveToken exchanges an externally-issued access token for a signed
	// session token, creating the Account/User pair on first sight.
	ResolveToken(ctx context.Context, accessToken string) (string, error)
	// Authenticate validates a session token, confirms the account still
	// exists and re-issues a fresh token (sliding expiry).
	Authenticate(ctx context.Context, sessionToken string) (*Identity, string, error)
	SignOut(ctx context.Context) error
}

type authService struct {
	provider  IdentityProvider
	accounts  repository.AccountRepository
	tokens    TokenService
	clientURL string
}

func NewAuthService(provider IdentityProvider, accounts repository.AccountRepository, tokens TokenService, cfg *config.Config) AuthService {
	return &authService{
		provider:  provider,
		accounts:  accounts,
		tokens:    tokens,
		clientURL: strings.TrimRight(cfg.Server.ClientURL, "/"),
	}
}

func (s *authService) LoginURL() string {
	return s.provider.AuthorizeURL(s.clientURL + "/auth/callback")
}

func (s *authService) ResolveToken(ctx context.Context, accessToken string) (string, error) {
	user, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
		log.Error().Err(err).Msg("ResolveToken: identity provider lookup failed")
		return "", err
	}

	account, err := s.accounts.FindByID(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		account = &model.Account{
			ID:    user.ID,
			Email: user.Email,
			User: model.User{
				Name:     user.UserMetadata.FullName,
				Username: usernameFromEmail(user.Email),
			},
		}
		if err := s.accounts.Create(account); err != nil {
			log.Error().Err(err).Str("accountID", user.ID).Msg("ResolveToken: failed to create account")
			return "", fmt.Errorf("failed to create account: %w", err)
		}
		log.Info().Str("accountID", account.ID).Msg("ResolveToken: new account created")
	} else if err != nil {
		log.Error().Err(err).Str("accountID", user.ID).Msg("ResolveToken: account lookup failed")
		return "", err
	}

	return s.tokens.Issue(account.ID, account.User.Username, account.User.Name)
}

func (s *authService) Authenticate(ctx context.Context, sessionToken string) (*Identity, string, error) {
	claims, err := s.tokens.Parse(sessionToken)
	if err != nil {
		return nil, "", err
	}

	account, err := s.accounts.FindByID(claims.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("%w: account no longer exists", ErrUnauthenticated)
	} else if err != nil {
		log.Error().Err(err).Str("accountID", claims.Subject).Msg("Authenticate: account lookup failed")
		return nil, "", err
	}

	fresh, err := s.tokens.Issue(account.ID, account.User.Username, account.User.Name)
	if err != nil {
		return nil, "", err
	}

	return &Identity{
		Subject:  account.ID,
		Username: account.User.Username,
		Name:     account.User.Name,
	}, fresh, nil
}

func (s *authService) SignOut(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
