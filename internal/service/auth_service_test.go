package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizgem/config"
	"quizgem/internal/identity"
	"quizgem/internal/model"
	"quizgem/internal/repository"
)

const (
	providerSubject = "f3b1f7e0-3c6a-4f89-9f6e-2f24a77f2f11"
	providerToken   = "provider-token"
)

func newProviderServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/user":
			if r.Header.Get("Authorization") != "Bearer "+providerToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.NotEmpty(t, r.Header.Get("apikey"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":    providerSubject,
				"email": "jane.doe@example.com",
				"user_metadata": map[string]interface{}{
					"full_name": "Jane Doe",
				},
			})
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newAuthHarness(t *testing.T, db *gorm.DB) (AuthService, TokenService) {
	t.Helper()

	srv := newProviderServer(t)
	cfg := &config.Config{}
	cfg.Supabase.URL = srv.URL
	cfg.Supabase.Key = "test-api-key"
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Server.ClientURL = "http://localhost:3000"

	tokens := NewTokenService(cfg)
	accounts := repository.NewAccountRepository(db)
	return NewAuthService(identity.NewClient(cfg), accounts, tokens, cfg), tokens
}

func TestAuthService_ResolveTokenCreatesAccountOnFirstSight(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, tokens := newAuthHarness(t, db)

	token, err := svc.ResolveToken(context.Background(), providerToken)
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, providerSubject, claims.Subject)
	assert.Equal(t, "jane.doe", claims.Username)
	assert.Equal(t, "Jane Doe", claims.Name)

	account, err := repository.NewAccountRepository(db).FindByID(providerSubject)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", account.Email)
	assert.Equal(t, "Jane Doe", account.User.Name)

	// Second resolve reuses the existing account.
	_, err = svc.ResolveToken(context.Background(), providerToken)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&model.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_ResolveTokenRejectsInvalidProviderToken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newAuthHarness(t, db)

	_, err := svc.ResolveToken(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_AuthenticateReissuesToken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, tokens := newAuthHarness(t, db)

	token, err := svc.ResolveToken(context.Background(), providerToken)
	require.NoError(t, err)

	ident, fresh, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, providerSubject, ident.Subject)
	assert.Equal(t, "jane.doe", ident.Username)

	claims, err := tokens.Parse(fresh)
	require.NoError(t, err)
	assert.Equal(t, providerSubject, claims.Subject)
}

func TestAuthService_AuthenticateUnknownAccount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, tokens := newAuthHarness(t, db)

	// Token is validly signed but references no stored account.
	ghost, err := tokens.Issue("ghost-subject", "ghost", "Ghost")
	require.NoError(t, err)

	_, _, err = svc.Authenticate(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_AuthenticateGarbageToken(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newAuthHarness(t, db)

	_, _, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_LoginURL(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newAuthHarness(t, db)

	url := svc.LoginURL()
	assert.Contains(t, url, "/auth/v1/authorize?")
	assert.Contains(t, url, "provider=google")
	assert.Contains(t, url, "redirect_to=")
}

func TestAuthService_SignOut(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc, _ := newAuthHarness(t, db)

	assert.NoError(t, svc.SignOut(context.Background()))
}
