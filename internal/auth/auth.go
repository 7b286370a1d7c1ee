// Package auth implements the identity service: email/password sign-up and
// sign-in, bearer session tokens, sign-out, and an auth-state change
// subscription for callers that want to react to logins and logouts.
//
// Credentials live in their own store collection, separate from the profile
// mirror the application keeps. The rest of the service consumes nothing but
// the principal id this package hands out.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tdx/internal/docstore"
	"github.com/desertthunder/tdx/internal/shared"
	"golang.org/x/time/rate"
)

// collectionCredentials stores one credential document per account, keyed by
// email.
const collectionCredentials = "credentials"

// minPasswordLength matches the sign-up policy of the hosted identity services
// this implementation stands in for.
const minPasswordLength = 6

// bcrypt rejects inputs longer than 72 bytes.
const maxPasswordLength = 72

// Principal is the identity service's notion of an authenticated user.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Session is the result of a successful sign-up or sign-in.
type Session struct {
	Principal Principal `json:"principal"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service authenticates accounts against the document store and issues session
// tokens. Sign-out works through an in-memory revocation set keyed by token id,
// so a restart forgets revocations; tokens still age out at their expiry.
type Service struct {
	store   docstore.Store
	hasher  *PasswordHasher
	tokens  *TokenManager
	logger  *log.Logger
	limiter *signInThrottle

	mu          sync.Mutex
	revoked     map[string]struct{}
	subscribers map[int]func(*Principal)
	nextSub     int
}

// NewService creates the identity service.
func NewService(store docstore.Store, tokens *TokenManager, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{
		store:       store,
		hasher:      NewPasswordHasher(0),
		tokens:      tokens,
		logger:      logger.With("service", "auth"),
		limiter:     newSignInThrottle(),
		revoked:     make(map[string]struct{}),
		subscribers: make(map[int]func(*Principal)),
	}
}

// SignUp registers a new account and returns a signed-in session.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, shared.ErrWeakPassword
	}
	if len(password) > maxPasswordLength {
		return nil, fmt.Errorf("%w: password must be at most %d characters", shared.ErrInvalidInput, maxPasswordLength)
	}

	existing, err := s.store.Get(ctx, collectionCredentials, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}
	if existing != nil {
		return nil, shared.ErrEmailInUse
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	uid := shared.GenerateID()
	err = s.store.Put(ctx, collectionCredentials, email, docstore.Fields{
		"uid":          uid,
		"email":        email,
		"name":         name,
		"passwordHash": hash,
		"createdAt":    docstore.ServerTimestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created", "uid", uid)
	return s.startSession(Principal{ID: uid, Name: name, Email: email})
}

// SignIn authenticates an email/password pair and returns a session. Repeated
// failures for the same email are throttled.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if !s.limiter.allow(email) {
		return nil, shared.ErrTooManyAttempts
	}

	fields, err := s.store.Get(ctx, collectionCredentials, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if fields == nil {
		return nil, shared.ErrInvalidCredentials
	}

	hash, _ := fields["passwordHash"].(string)
	if !s.hasher.Verify(password, hash) {
		return nil, shared.ErrInvalidCredentials
	}

	uid, _ := fields["uid"].(string)
	name, _ := fields["name"].(string)

	s.limiter.reset(email)
	return s.startSession(Principal{ID: uid, Name: name, Email: email})
}

// SignOut revokes the session token. Subscribers are notified with a nil
// principal.
func (s *Service) SignOut(token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.revoked[claims.ID] = struct{}{}
	s.mu.Unlock()

	s.notify(nil)
	return nil
}

// Verify resolves a bearer token to its principal, rejecting expired and
// signed-out sessions.
func (s *Service) Verify(token string) (*Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, shared.ErrTokenRevoked
	}

	return &Principal{ID: claims.Subject, Name: claims.Name, Email: claims.Email}, nil
}

// Subscribe registers a callback invoked with the principal on sign-in and nil
// on sign-out. The returned function removes the subscription.
func (s *Service) Subscribe(fn func(*Principal)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Service) startSession(p Principal) (*Session, error) {
	token, expires, err := s.tokens.Issue(p)
	if err != nil {
		return nil, err
	}

	s.notify(&p)
	return &Session{Principal: p, Token: token, ExpiresAt: expires}, nil
}

func (s *Service) notify(p *Principal) {
	s.mu.Lock()
	fns := make([]func(*Principal), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// signInThrottle rate-limits sign-in attempts per email: a burst of five, then
// one attempt every twelve seconds until a success resets the account.
type signInThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newSignInThrottle() *signInThrottle {
	return &signInThrottle{limiters: make(map[string]*rate.Limiter)}
}

func (t *signInThrottle) allow(email string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	limiter, ok := t.limiters[email]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(12*time.Second), 5)
		t.limiters[email] = limiter
	}
	return limiter.Allow()
}

func (t *signInThrottle) reset(email string) {
	t.mu.Lock()
	delete(t.limiters, email)
	t.mu.Unlock()
}
