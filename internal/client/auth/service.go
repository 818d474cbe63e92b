// Package auth implements the storefront account flows on top of the API
// client: login, signup, logout, password reset and the current user.
//
// Login is the only place a session token is written; the API client clears
// it again when the backend rejects it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yndnr/shopfront-go/internal/client/apiclient"
	"github.com/yndnr/shopfront-go/internal/client/tokenstore"
)

// ErrNoToken is returned by login when the backend answers without a token.
var ErrNoToken = errors.New("auth: no access token in response")

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the signup request body. The backend asks for one to
// three preferred categories to seed recommendations.
type SignupRequest struct {
	Email               string   `json:"email" validate:"required,email"`
	Password            string   `json:"password" validate:"required"`
	Name                string   `json:"name" validate:"required"`
	PreferredCategories []string `json:"preferred_categories" validate:"min=1,max=3,dive,required"`
}

// User is the account returned by /auth/me and /auth/signup.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ResetCode is the answer to a forgot-password request.
type ResetCode struct {
	Message   string `json:"message"`
	ResetCode string `json:"reset_code" table:"-"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Service runs account flows.
type Service struct {
	api      *apiclient.Client
	tokens   tokenstore.Store
	validate *validator.Validate
}

// NewService creates a Service writing tokens to tokens.
func NewService(api *apiclient.Client, tokens tokenstore.Store) *Service {
	return &Service{
		api:      api,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Login authenticates and stores the returned access token.
func (s *Service) Login(ctx context.Context, creds Credentials) error {
	if err := s.validate.Struct(creds); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var out tokenResponse
	if err := s.api.PostJSON(ctx, "/auth/login", creds, &out); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if out.AccessToken == "" {
		return ErrNoToken
	}
	if err := s.tokens.Set(ctx, out.AccessToken); err != nil {
		return fmt.Errorf("login: store token: %w", err)
	}
	return nil
}

// Signup registers a new account. It does not log in.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	var user User
	if err := s.api.PostJSON(ctx, "/auth/signup", req, &user); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &user, nil
}

// Logout drops the stored token. No backend call is made.
func (s *Service) Logout(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

// Me returns the authenticated user.
func (s *Service) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.api.GetJSON(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword asks the backend for a reset code.
func (s *Service) ForgotPassword(ctx context.Context, email string) (*ResetCode, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}
	var out ResetCode
	if err := s.api.PostJSON(ctx, "/auth/forgot-password", map[string]string{"email": email}, &out); err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}
	return &out, nil
}

// ResetPassword sets a new password using a reset code.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := struct {
		Email       string `json:"email" validate:"required,email"`
		NewPassword string `json:"new_password" validate:"required"`
		ResetCode   string `json:"reset_code" validate:"required"`
	}{email, newPassword, code}
	if err := s.validate.Struct(body); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if _, err := s.api.Post(ctx, "/auth/reset-password", body); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// Session describes the locally stored token. Claims are read without
// verifying the signature; they are for display only.
type Session struct {
	Authenticated bool      `json:"authenticated"`
	Opaque        bool      `json:"opaque"`
	Subject       string    `json:"subject,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
	Expired       bool      `json:"expired"`
}

// Session inspects the stored token.
func (s *Service) Session(ctx context.Context) (*Session, error) {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	return inspect(token, time.Now()), nil
}

func inspect(token string, now time.Time) *Session {
	if token == "" {
		return &Session{}
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return &Session{Authenticated: true, Opaque: true}
	}

	sess := &Session{Authenticated: true, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
		sess.Expired = !now.Before(sess.ExpiresAt)
	}
	return sess
}
