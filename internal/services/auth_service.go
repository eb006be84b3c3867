package services

import (
	"context"
	"log"

	"github.com/cashpoint/atm-client/internal/apperrors"
	"github.com/cashpoint/atm-client/internal/models"
	"github.com/cashpoint/atm-client/internal/session"
)

// loginSuccessMarker is the literal string the backend returns from the
// authentication endpoint on valid credentials. The comparison must stay
// byte-for-byte: the backend offers no structured status, and any other
// body means the credentials were rejected.
const loginSuccessMarker = "Login Successfully..!"

// AuthService establishes and destroys sessions. Login composes three
// backend calls into a single operation that either fully succeeds or
// leaves the session store untouched.
type AuthService struct {
	gateway   Gateway
	sessions  *session.Store
	validator *ValidationHelper
}

func NewAuthService(gateway Gateway, sessions *session.Store) *AuthService {
	return &AuthService{
		gateway:   gateway,
		sessions:  sessions,
		validator: NewValidationHelper(),
	}
}

// Login runs the credential check, user lookup, and balance fetch in
// order, short-circuiting on the first failure. Only after all three
// succeed is the session installed.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) error {
	if err := s.validator.ValidateStruct(&creds); err != nil {
		log.Printf("[AUTH] Login validation failed: %v", err)
		return AsValidationError(err)
	}

	log.Printf("[AUTH] Login request for email: %s", creds.Email)

	marker, err := s.gateway.Authenticate(ctx, creds)
	if err != nil {
		log.Printf("[AUTH] Authentication call failed: %v", err)
		return err
	}

	if marker != loginSuccessMarker {
		log.Printf("[AUTH] Invalid credentials for email: %s", creds.Email)
		return apperrors.NewValidationError("invalid credentials")
	}

	// The marker carries no user data; the lookup reuses the submitted
	// email.
	user, err := s.gateway.FindUserByEmail(ctx, creds.Email)
	if err != nil {
		log.Printf("[AUTH] User lookup failed for %s: %v", creds.Email, err)
		return err
	}

	account, err := s.gateway.FetchBalance(ctx, user.ID)
	if err != nil {
		log.Printf("[AUTH] Balance fetch failed for user %d: %v", user.ID, err)
		return err
	}

	if err := s.sessions.Login(user, account); err != nil {
		log.Printf("[AUTH] Failed to persist session for user %d: %v", user.ID, err)
		return err
	}

	log.Printf("[AUTH] Login successful for user %d", user.ID)
	return nil
}

// Logout clears the session. Idempotent.
func (s *AuthService) Logout() error {
	log.Println("[AUTH] Logout")
	return s.sessions.Logout()
}

// Session returns the current session, or nil when logged out.
func (s *AuthService) Session() *session.Session {
	return s.sessions.Current()
}
