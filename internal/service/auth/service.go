// Package auth owns the identity side of the storefront: signup,
// login/logout, and resolving a session token to the current shopper.
// The rest of the system only ever asks "current customer id or none".
package auth

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"boltstore/internal/domain"
	custrepo "boltstore/internal/repository/customer"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided session token could not be
	// validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles shopper signup/login flows.
type Service struct {
	repo        custrepo.Repository
	sessions    SessionStore
	passwordMin int
	logger      *log.Logger
}

// New creates a Service with sane defaults.
func New(repo custrepo.Repository, sessions SessionStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:        repo,
		sessions:    sessions,
		passwordMin: 8,
		logger:      logger,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Signup registers a new shopper.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, custrepo.CreateInput{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("auth: signup id=%s email=%s", created.ID, created.Email)
	return created, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Customer, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.sessions.Issue(ctx, c.ID)
	if err != nil {
		return "", nil, err
	}
	s.logger.Printf("auth: login id=%s", c.ID)
	return token, c, nil
}

// Logout revokes a session token. Revoking an unknown token is not an
// error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}

// CurrentCustomerID resolves a session token to the signed-in shopper,
// or domain.ErrNotAuthenticated when there is none.
func (s *Service) CurrentCustomerID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrNotAuthenticated
	}
	id, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return "", domain.ErrNotAuthenticated
		}
		return "", err
	}
	return id, nil
}

// UpdateProfile changes the signed-in shopper's display names.
func (s *Service) UpdateProfile(ctx context.Context, token, firstName, lastName string) (*domain.Customer, error) {
	id, err := s.CurrentCustomerID(ctx, token)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateName(ctx, id, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if err != nil {
		return nil, err
	}
	s.logger.Printf("auth: profile updated id=%s", id)
	return updated, nil
}

// DeleteAccount removes the signed-in shopper and revokes the session.
// Orders cascade with the customer row.
func (s *Service) DeleteAccount(ctx context.Context, token string) error {
	id, err := s.CurrentCustomerID(ctx, token)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("auth: account deleted id=%s", id)
	return s.sessions.Revoke(ctx, token)
}

// CurrentCustomer resolves a session token to the full customer record.
func (s *Service) CurrentCustomer(ctx context.Context, token string) (*domain.Customer, error) {
	id, err := s.CurrentCustomerID(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func validatePassword(password string, min int) error {
	if len(password) < min {
		return errors.New("password too short")
	}
	return nil
}
