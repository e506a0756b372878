package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_EncryptDecrypt(t *testing.T) {
	e := newEnv(t)
	e.registerAndLogin(t, "conn-1", "ana", "password-1")

	blob, err := e.docs.EncryptForSession("conn-1", []byte("dear diary"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(blob, cryptox.DomainDocument.Header()))
	assert.NotContains(t, blob, "dear diary")

	doc, err := e.docs.DecryptForSession("conn-1", []byte(blob))
	require.NoError(t, err)
	assert.Equal(t, cryptox.DocumentEncrypted, doc.Kind)
	assert.Equal(t, "dear diary", string(doc.Content))
}

func TestDocumentService_ForeignPlaintext(t *testing.T) {
	e := newEnv(t)
	e.registerAndLogin(t, "conn-1", "ana", "password-1")

	doc, err := e.docs.DecryptForSession("conn-1", []byte("just a text file\n"))
	require.NoError(t, err)
	assert.Equal(t, cryptox.DocumentForeign, doc.Kind)
	assert.Equal(t, "just a text file\n", string(doc.Content))
}

func TestDocumentService_SameAccountAcrossSessions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.registerAndLogin(t, "conn-1", "ana", "password-1")

	blob, err := e.docs.EncryptForSession("conn-1", []byte("text"))
	require.NoError(t, err)

	e.auth.Logout(ctx, "conn-1")
	_, err = e.auth.Login(ctx, "conn-2", "ANA", []byte("password-1"))
	require.NoError(t, err)

	doc, err := e.docs.DecryptForSession("conn-2", []byte(blob))
	require.NoError(t, err)
	assert.Equal(t, "text", string(doc.Content))
}

func TestDocumentService_OtherAccountCannotRead(t *testing.T) {
	e := newEnv(t)
	e.registerAndLogin(t, "conn-1", "ana", "password-1")
	e.registerAndLogin(t, "conn-2", "bob", "password-1")

	blob, err := e.docs.EncryptForSession("conn-1", []byte("secret"))
	require.NoError(t, err)

	_, err = e.docs.DecryptForSession("conn-2", []byte(blob))
	assert.ErrorIs(t, err, common.ErrAuthenticationFailure)
}

func TestDocumentService_Unauthenticated(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "note.txt")

	_, err := e.docs.EncryptForSession("nobody", []byte("x"))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	_, err = e.docs.DecryptForSession("nobody", []byte("x"))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	err = e.docs.SaveFile(ctx, "nobody", path, []byte("x"))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	_, err = e.docs.OpenFile(ctx, "nobody", path)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestDocumentService_SaveOpenFile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.registerAndLogin(t, "conn-1", "ana", "password-1")
	path := filepath.Join(t.TempDir(), "note.txt")

	require.NoError(t, e.docs.SaveFile(ctx, "conn-1", path, []byte("first")))
	require.NoError(t, e.docs.SaveFile(ctx, "conn-1", path, []byte("second")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	doc, err := e.docs.OpenFile(ctx, "conn-1", path)
	require.NoError(t, err)
	assert.Equal(t, cryptox.DocumentEncrypted, doc.Kind)
	assert.Equal(t, "second", string(doc.Content))
}

func TestDocumentService_OpenFileErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.registerAndLogin(t, "conn-1", "ana", "password-1")
	dir := t.TempDir()

	_, err := e.docs.OpenFile(ctx, "conn-1", filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(dir, "broken.txt")
	require.NoError(t, os.WriteFile(broken, []byte(cryptox.DomainDocument.Header()+"@@@"), 0o600))
	_, err = e.docs.OpenFile(ctx, "conn-1", broken)
	assert.ErrorIs(t, err, common.ErrMalformedEnvelope)
}
