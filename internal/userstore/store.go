// Package userstore implements the credential store: an encrypted file
// holding every user record.
//
// Each operation is a whole-file transaction. The file is read and decrypted,
// one mutation is applied to the decoded record list, and the list is
// re-encrypted under a fresh salt and nonce and written back atomically.
// Operations are serialized by a mutex; the store assumes its process is the
// only writer of the file.
package userstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/streak"
	"github.com/google/uuid"
)

// Store is the file-backed credential store.
type Store struct {
	mu     sync.Mutex
	path   string
	keys   cryptox.KeySource
	params cryptox.Params
	now    func() time.Time
	log    logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithParams overrides the PBKDF2 iteration counts.
func WithParams(p cryptox.Params) Option {
	return func(s *Store) { s.params = p }
}

// WithClock sets the time source for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a store for the file at path, encrypted with keys derived from
// storeSecret. The file is not touched until the first operation.
func New(path string, storeSecret []byte, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("credential store path is empty")
	}
	if len(storeSecret) == 0 {
		return nil, errors.New("credential store secret is empty")
	}

	s := &Store{
		path:   path,
		params: cryptox.DefaultParams(),
		now:    time.Now,
		log:    logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	secret := append([]byte(nil), storeSecret...)
	s.keys = cryptox.StoreKeySource(secret, s.params.StoreIterations)
	return s, nil
}

// Path returns the store file location.
func (s *Store) Path() string { return s.path }

// HasAnyUsers reports whether at least one account is registered.
func (s *Store) HasAnyUsers(ctx context.Context) (bool, error) {
	var found bool
	err := s.view(ctx, func(records []UserRecord) error {
		found = len(records) > 0
		return nil
	})
	return found, err
}

// Register validates and creates a new account with zero stats.
// It fails with a *common.ValidationError for bad input and with
// common.ErrDuplicateUser when the normalized username is taken.
func (s *Store) Register(ctx context.Context, username string, password []byte) (*Account, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	display := strings.TrimSpace(username)
	normalized := common.NormalizeUsername(username)

	var acc *Account
	err := s.update(ctx, func(records []UserRecord) ([]UserRecord, error) {
		if findRecord(records, normalized) >= 0 {
			return nil, common.ErrDuplicateUser
		}

		now := s.now().UTC()
		rec := UserRecord{
			ID:                 uuid.NewString(),
			Username:           display,
			NormalizedUsername: normalized,
			Verifier:           s.newVerifier(password),
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		acc = rec.account()
		return append(records, rec), nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "username", normalized)
	return acc, nil
}

// Authenticate checks username and password. An unknown username and a wrong
// password both return common.ErrInvalidCredentials after one verifier
// derivation. On success the verifier is re-derived under a fresh salt and
// the record's UpdatedAt is bumped.
func (s *Store) Authenticate(ctx context.Context, username string, password []byte) (*Account, error) {
	normalized := common.NormalizeUsername(username)

	var acc *Account
	err := s.update(ctx, func(records []UserRecord) ([]UserRecord, error) {
		i := findRecord(records, normalized)
		if i < 0 {
			s.decoyVerifier().Check(password)
			return nil, common.ErrInvalidCredentials
		}

		rec := &records[i]
		if !rec.Verifier.Check(password) {
			return nil, common.ErrInvalidCredentials
		}

		rec.Verifier = s.newVerifier(password)
		rec.UpdatedAt = s.now().UTC()
		acc = rec.account()
		return records, nil
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.log.Warn(ctx, "authentication failed", "username", normalized)
		}
		return nil, err
	}

	s.log.Info(ctx, "user authenticated", "username", normalized)
	return acc, nil
}

// RecordGoalCompletion advances the account's streak for completionDateKey
// (YYYY-MM-DD) and persists it. Repeating a date returns the stored stats
// without rewriting the file.
func (s *Store) RecordGoalCompletion(ctx context.Context, username, completionDateKey string) (streak.Stats, error) {
	if err := ValidateDateKey(completionDateKey); err != nil {
		return streak.Stats{}, err
	}
	normalized := common.NormalizeUsername(username)

	var stats streak.Stats
	err := s.update(ctx, func(records []UserRecord) ([]UserRecord, error) {
		i := findRecord(records, normalized)
		if i < 0 {
			return nil, common.ErrUnknownUser
		}

		rec := &records[i]
		next := streak.Advance(rec.Stats, completionDateKey)
		stats = next
		if next == rec.Stats {
			return nil, nil
		}

		rec.Stats = next
		rec.UpdatedAt = s.now().UTC()
		return records, nil
	})
	if err != nil {
		return streak.Stats{}, err
	}

	s.log.Debug(ctx, "goal completion recorded", "username", normalized, "date", completionDateKey, "current_streak", stats.CurrentStreak)
	return stats, nil
}

// Account returns the public view of one account, or common.ErrUnknownUser.
func (s *Store) Account(ctx context.Context, username string) (*Account, error) {
	normalized := common.NormalizeUsername(username)

	var acc *Account
	err := s.view(ctx, func(records []UserRecord) error {
		i := findRecord(records, normalized)
		if i < 0 {
			return common.ErrUnknownUser
		}
		acc = records[i].account()
		return nil
	})
	return acc, err
}

// view runs fn over the current records without writing.
func (s *Store) view(ctx context.Context, fn func([]UserRecord) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	records, err := s.load()
	if err != nil {
		return err
	}
	return fn(records)
}

// update runs fn over the current records and persists the list it returns.
// A nil list with a nil error means nothing changed.
func (s *Store) update(ctx context.Context, fn func([]UserRecord) ([]UserRecord, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	records, err := s.load()
	if err != nil {
		return err
	}

	out, err := fn(records)
	if err != nil || out == nil {
		return err
	}
	return s.save(ctx, out)
}

func (s *Store) load() ([]UserRecord, error) {
	data, ok, err := filex.ReadFileIfExists(s.path)
	if err != nil {
		return nil, fmt.Errorf("read credential store: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var records []UserRecord
	if err := cryptox.OpenJSON(cryptox.DomainCredentialStore, string(data), s.keys, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStoreCorrupted, err)
	}
	return records, nil
}

func (s *Store) save(ctx context.Context, records []UserRecord) error {
	blob, err := cryptox.SealJSON(cryptox.DomainCredentialStore, records, s.keys)
	if err != nil {
		return fmt.Errorf("seal credential store: %w", err)
	}
	if err := filex.WriteFileAtomic(s.path, []byte(blob), 0o600); err != nil {
		return fmt.Errorf("write credential store: %w", err)
	}

	s.log.Debug(ctx, "credential store written", "records", len(records))
	return nil
}

func (s *Store) newVerifier(password []byte) Verifier {
	salt := cryptox.NewSalt()
	return Verifier{
		Salt:       salt,
		Hash:       cryptox.PasswordVerifier(password, salt, s.params.VerifierIterations),
		Iterations: s.params.VerifierIterations,
	}
}

// decoyVerifier matches no password; checking against it costs the same as
// checking a real verifier.
func (s *Store) decoyVerifier() Verifier {
	return Verifier{
		Salt:       cryptox.NewSalt(),
		Hash:       common.GenerateRandByteArray(cryptox.KeySize),
		Iterations: s.params.VerifierIterations,
	}
}
