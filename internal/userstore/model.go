package userstore

import (
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/streak"
)

// Verifier is a salted password hash. It verifies a password; it cannot be
// used to decrypt anything.
type Verifier struct {
	Salt       []byte `json:"salt"`
	Hash       []byte `json:"hash"`
	Iterations int    `json:"iterations"`
}

// Check reports whether password matches v, comparing in constant time.
func (v Verifier) Check(password []byte) bool {
	return cryptox.CheckPasswordVerifier(password, v.Salt, v.Iterations, v.Hash)
}

// UserRecord is one account as persisted inside the store file.
type UserRecord struct {
	ID                 string       `json:"id"`
	Username           string       `json:"username"`
	NormalizedUsername string       `json:"normalized_username"`
	Verifier           Verifier     `json:"password_verifier"`
	Stats              streak.Stats `json:"stats"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Account is the public view of a user record.
type Account struct {
	Username string
	Stats    streak.Stats
}

func (r *UserRecord) account() *Account {
	return &Account{Username: r.Username, Stats: r.Stats}
}

func findRecord(records []UserRecord, normalized string) int {
	for i := range records {
		if records[i].NormalizedUsername == normalized {
			return i
		}
	}
	return -1
}
