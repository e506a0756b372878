package services

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/session"
)

// DocumentService encrypts and decrypts document text with the document
// secret of the session bound to a connection.
type DocumentService interface {
	EncryptForSession(connID string, text []byte) (string, error)
	DecryptForSession(connID string, raw []byte) (cryptox.Document, error)
	SaveFile(ctx context.Context, connID, path string, text []byte) error
	OpenFile(ctx context.Context, connID, path string) (cryptox.Document, error)
}

type documentService struct {
	sessions *session.Registry
	log      logging.Logger
}

// NewDocumentService constructs a DocumentService over the session registry.
func NewDocumentService(sessions *session.Registry, log logging.Logger) DocumentService {
	if log == nil {
		log = logging.Nop()
	}
	return &documentService{sessions: sessions, log: log}
}

func (d *documentService) secret(connID string) (string, error) {
	s, ok := d.sessions.Get(connID)
	if !ok {
		return "", common.ErrUnauthenticated
	}
	return s.DocumentSecret, nil
}

// EncryptForSession returns text sealed as a document envelope.
func (d *documentService) EncryptForSession(connID string, text []byte) (string, error) {
	secret, err := d.secret(connID)
	if err != nil {
		return "", err
	}
	return cryptox.SealDocument(text, secret)
}

// DecryptForSession decodes raw document content. Content written without
// encryption comes back as cryptox.DocumentForeign.
func (d *documentService) DecryptForSession(connID string, raw []byte) (cryptox.Document, error) {
	secret, err := d.secret(connID)
	if err != nil {
		return cryptox.Document{}, err
	}
	return cryptox.OpenDocument(raw, secret)
}

// SaveFile encrypts text and atomically replaces path with it.
func (d *documentService) SaveFile(ctx context.Context, connID, path string, text []byte) error {
	blob, err := d.EncryptForSession(connID, text)
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(path, []byte(blob), 0o600); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	d.log.Debug(ctx, "document saved", "conn", connID, "path", path)
	return nil
}

// OpenFile reads path and decodes it for the session of connID.
func (d *documentService) OpenFile(ctx context.Context, connID, path string) (cryptox.Document, error) {
	if _, err := d.secret(connID); err != nil {
		return cryptox.Document{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cryptox.Document{}, fmt.Errorf("open document: %w", err)
	}

	doc, err := d.DecryptForSession(connID, raw)
	if err != nil {
		return cryptox.Document{}, err
	}
	d.log.Debug(ctx, "document opened", "conn", connID, "path", path, "kind", doc.Kind.String())
	return doc, nil
}
