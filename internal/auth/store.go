package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	pkgauth "github.com/aimingmed/sctracker-console/pkg/auth"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
	"github.com/aimingmed/sctracker-console/pkg/models"
)

// State is where the session sits in its lifecycle.
type State string

const (
	StateLoading       State = "loading"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

type accountsAPI interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	CurrentUser(ctx context.Context, token string) (*models.UserProfile, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*models.MessageResponse, error)
}

type tokenKeeper interface {
	Persist(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	State   State
	Profile *models.UserProfile
	// ExpiresAt is decoded from the token for display only. Zero when unknown.
	ExpiresAt time.Time
}

func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.Profile != nil
}

// Store owns the current user's token and profile. It is the single answer to
// "who is signed in" for a workspace and the token source of its API client.
type Store struct {
	mu        sync.RWMutex
	api       accountsAPI
	tokens    tokenKeeper
	logg      *logger.Logger
	state     State
	profile   *models.UserProfile
	expiresAt time.Time
}

// StoreParams bundles the dependencies required to build a session store.
type StoreParams struct {
	API    accountsAPI
	Tokens tokenKeeper
	Logger *logger.Logger
}

// NewStore returns a store in the loading state. Call Init before use.
func NewStore(params StoreParams) (*Store, error) {
	if params.API == nil {
		return nil, fmt.Errorf("accounts api is required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token keeper is required")
	}
	return &Store{
		api:    params.API,
		tokens: params.Tokens,
		logg:   params.Logger,
		state:  StateLoading,
	}, nil
}

// Init resolves the stored token into a profile. A token the API no longer
// accepts is removed and the store falls back to anonymous.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.becomeAnonymous()
		return err
	}
	if token == "" {
		s.becomeAnonymous()
		return nil
	}
	profile, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		s.dropToken(ctx)
		s.becomeAnonymous()
		return fmt.Errorf("restore session: %w", err)
	}
	s.becomeAuthenticated(profile, token)
	return nil
}

// Login exchanges credentials for a token and loads the profile. On any failure
// the store is anonymous and no token remains persisted.
func (s *Store) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.becomeAnonymous()
		return err
	}
	if err := s.tokens.Persist(ctx, resp.Token); err != nil {
		s.becomeAnonymous()
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store session token")
	}
	profile, err := s.api.CurrentUser(ctx, resp.Token)
	if err != nil {
		s.dropToken(ctx)
		s.becomeAnonymous()
		return err
	}
	s.becomeAuthenticated(profile, resp.Token)
	if s.logg != nil {
		s.logg.Info(s.logg.WithUsername(ctx, profile.Username), "user signed in")
	}
	return nil
}

// Logout forgets the token and profile.
func (s *Store) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	s.becomeAnonymous()
	return err
}

// Refresh re-reads the profile. Any failure signs the user out.
func (s *Store) Refresh(ctx context.Context) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		s.becomeAnonymous()
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}
	profile, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		_ = s.Logout(ctx)
		return err
	}
	s.becomeAuthenticated(profile, token)
	return nil
}

// ResetPassword changes the signed-in user's password.
func (s *Store) ResetPassword(ctx context.Context, newPassword string) (string, error) {
	if !s.Snapshot().Authenticated() {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "")
	}
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return "", err
	}
	resp, err := s.api.ResetPassword(ctx, token, newPassword)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// HasAnyRole reports whether the signed-in user holds one of allowed.
// Anonymous sessions hold no roles.
func (s *Store) HasAnyRole(allowed ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.profile == nil {
		return false
	}
	return s.profile.HasAnyRole(allowed...)
}

// Username is "" when nobody is signed in.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return ""
	}
	return s.profile.Username
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{State: s.state, ExpiresAt: s.expiresAt}
	if s.profile != nil {
		profile := *s.profile
		profile.Roles = append([]string(nil), s.profile.Roles...)
		snap.Profile = &profile
	}
	return snap
}

// Token satisfies the API client's token source.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.tokens.Token(ctx)
}

func (s *Store) becomeAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.profile = nil
	s.expiresAt = time.Time{}
}

func (s *Store) becomeAuthenticated(profile *models.UserProfile, token string) {
	var expiresAt time.Time
	if info, err := pkgauth.InspectToken(token); err == nil {
		expiresAt = info.ExpiresAt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.profile = profile
	s.expiresAt = expiresAt
}

func (s *Store) dropToken(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil && s.logg != nil {
		s.logg.Error(ctx, "failed to clear rejected token", err)
	}
}
