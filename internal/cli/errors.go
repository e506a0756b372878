package cli

import (
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/fatih/color"
)

// errorLine formats err for the REPL with a highlighted prefix.
func errorLine(err error) string {
	return color.RedString("Error:") + " " + describe(err)
}

// describe turns an error into a short message for the user. Store damage
// is reported apart from credential mistakes.
func describe(err error) string {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, common.ErrStoreCorrupted):
		return "the credential store cannot be decrypted (wrong store secret or damaged file): " + err.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, common.ErrDuplicateUser):
		return "this username is already taken"
	case errors.Is(err, common.ErrUnauthenticated):
		return "not logged in, use 'login' first"
	case errors.Is(err, common.ErrAuthenticationFailure), errors.Is(err, common.ErrMalformedEnvelope):
		return "the document cannot be decrypted with this account"
	}
	return err.Error()
}
