package cryptox

// DocumentKind tells how a document file was stored.
type DocumentKind int

const (
	// DocumentEncrypted content was decrypted from a document envelope.
	DocumentEncrypted DocumentKind = iota + 1
	// DocumentForeign content had no document header and is returned as read.
	DocumentForeign
)

func (k DocumentKind) String() string {
	switch k {
	case DocumentEncrypted:
		return "encrypted"
	case DocumentForeign:
		return "foreign"
	}
	return "unknown"
}

// Document is the result of decoding a document file.
type Document struct {
	Kind    DocumentKind
	Content []byte
}

// SealDocument encrypts text for an account's document secret.
func SealDocument(text []byte, documentSecret string) (string, error) {
	return Seal(DomainDocument, text, DocumentKeySource(documentSecret))
}

// OpenDocument decodes raw file content. Content without the document header
// is legacy plaintext and comes back unchanged as DocumentForeign; content
// with the header must be a valid envelope for documentSecret.
func OpenDocument(raw []byte, documentSecret string) (Document, error) {
	if !HasHeader(DomainDocument, raw) {
		return Document{Kind: DocumentForeign, Content: raw}, nil
	}

	text, err := Open(DomainDocument, string(raw), DocumentKeySource(documentSecret))
	if err != nil {
		return Document{}, err
	}
	return Document{Kind: DocumentEncrypted, Content: text}, nil
}
