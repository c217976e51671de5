package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/credentials"
	"github.com/s0up4200/marquee/transport"
)

// AuthService exchanges account credentials for API tokens
type AuthService struct {
	doer   Doer
	store  credentials.Store
	logger zerolog.Logger
}

// NewAuthService creates a new auth service writing tokens to store
func NewAuthService(doer Doer, store credentials.Store, logger zerolog.Logger) *AuthService {
	return &AuthService{doer: doer, store: store, logger: logger}
}

// Login exchanges username and password for a token pair and stores it
func (s *AuthService) Login(ctx context.Context, username, password string) (*transport.TokenPair, error) {
	resp, err := s.doer.Do(ctx, &transport.Request{
		Method:    http.MethodPost,
		Path:      transport.TokenPath,
		Body:      map[string]string{"username": username, "password": password},
		Anonymous: true,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	var tokens transport.TokenPair
	if err := resp.Decode(&tokens); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if err := s.persist(tokens.Access, tokens.Refresh); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("Logged in")
	return &tokens, nil
}

// Register creates an account. The server signs the new user in, so the
// returned tokens are stored as well.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	resp, err := s.doer.Do(ctx, &transport.Request{
		Method:    http.MethodPost,
		Path:      transport.RegisterPath,
		Body:      reg,
		Anonymous: true,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	var result AuthResult
	if err := resp.Decode(&result); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if result.Access != "" {
		if err := s.persist(result.Access, result.Refresh); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Str("username", result.User.Username).Msg("Registered account")
	return &result, nil
}

// Logout forgets both credentials
func (s *AuthService) Logout() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// Authenticated reports whether an access credential is present
func (s *AuthService) Authenticated() bool {
	_, ok := s.store.Access()
	return ok
}

func (s *AuthService) persist(access, refresh string) error {
	if access == "" {
		return ErrMissingTokens
	}
	if err := s.store.Save(access, refresh); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	return nil
}
