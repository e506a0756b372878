// Package services contains the operations the CLI host calls on the core.
// This file defines the authentication service: registration, login and
// logout bound to a connection identity, and the daily goal streak of the
// logged-in account.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/session"
	"github.com/dmitrijs2005/gophnotes/internal/streak"
	"github.com/dmitrijs2005/gophnotes/internal/userstore"
)

// CredentialStore is the subset of *userstore.Store used by AuthService.
type CredentialStore interface {
	HasAnyUsers(ctx context.Context) (bool, error)
	Register(ctx context.Context, username string, password []byte) (*userstore.Account, error)
	Authenticate(ctx context.Context, username string, password []byte) (*userstore.Account, error)
	RecordGoalCompletion(ctx context.Context, username, completionDateKey string) (streak.Stats, error)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - HasAnyUsers: report whether any account exists.
//   - Register: create an account; it does not log in.
//   - Login: authenticate and open a session for connID.
//   - Logout: drop the session of connID.
//   - CurrentUser, Stats: read the session of connID.
//   - CompleteGoal: record today's goal for the account of connID.
//
// Operations that need a session fail with common.ErrUnauthenticated
// when connID has none.
type AuthService interface {
	HasAnyUsers(ctx context.Context) (bool, error)
	Register(ctx context.Context, username string, password []byte) (*userstore.Account, error)
	Login(ctx context.Context, connID, username string, password []byte) (*userstore.Account, error)
	Logout(ctx context.Context, connID string)
	CurrentUser(connID string) (string, error)
	Stats(connID string) (streak.Stats, error)
	CompleteGoal(ctx context.Context, connID string) (streak.Stats, error)
}

// authService is the concrete AuthService backed by a credential store and
// the process session registry.
type authService struct {
	store    CredentialStore
	sessions *session.Registry
	now      func() time.Time
	log      logging.Logger
}

// NewAuthService constructs an AuthService. now supplies the local wall
// clock used to pick the goal completion date.
func NewAuthService(store CredentialStore, sessions *session.Registry, now func() time.Time, log logging.Logger) AuthService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logging.Nop()
	}
	return &authService{store: store, sessions: sessions, now: now, log: log}
}

func (a *authService) HasAnyUsers(ctx context.Context) (bool, error) {
	return a.store.HasAnyUsers(ctx)
}

func (a *authService) Register(ctx context.Context, username string, password []byte) (*userstore.Account, error) {
	return a.store.Register(ctx, username, password)
}

// Login authenticates username and opens a session for connID, replacing
// any session the connection already had. On failure the existing session
// is left as it was.
func (a *authService) Login(ctx context.Context, connID, username string, password []byte) (*userstore.Account, error) {
	acc, err := a.store.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	a.sessions.Open(connID, username, password, acc.Stats)
	a.log.Info(ctx, "session opened", "conn", connID, "username", common.NormalizeUsername(username))
	return acc, nil
}

func (a *authService) Logout(ctx context.Context, connID string) {
	if _, ok := a.sessions.Get(connID); !ok {
		return
	}
	a.sessions.Close(connID)
	a.log.Info(ctx, "session closed", "conn", connID)
}

func (a *authService) CurrentUser(connID string) (string, error) {
	s, ok := a.sessions.Get(connID)
	if !ok {
		return "", common.ErrUnauthenticated
	}
	return s.Username, nil
}

func (a *authService) Stats(connID string) (streak.Stats, error) {
	s, ok := a.sessions.Get(connID)
	if !ok {
		return streak.Stats{}, common.ErrUnauthenticated
	}
	return s.Stats, nil
}

// CompleteGoal records the goal as done today, today being the date of the
// injected clock in its own location, and refreshes the cached stats.
func (a *authService) CompleteGoal(ctx context.Context, connID string) (streak.Stats, error) {
	s, ok := a.sessions.Get(connID)
	if !ok {
		return streak.Stats{}, common.ErrUnauthenticated
	}

	stats, err := a.store.RecordGoalCompletion(ctx, s.Username, streak.DateKey(a.now()))
	if err != nil {
		return streak.Stats{}, err
	}

	a.sessions.UpdateStats(connID, stats)
	return stats, nil
}
