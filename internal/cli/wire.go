package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/gophnotes/internal/config"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/services"
	"github.com/dmitrijs2005/gophnotes/internal/session"
	"github.com/dmitrijs2005/gophnotes/internal/userstore"
)

// NewFromConfig builds the store, session registry and services described by
// cfg and returns an App on top of them. The store and documents
// directories are created if missing.
func NewFromConfig(cfg *config.Config, params cryptox.Params, in io.Reader, out io.Writer, log logging.Logger) (*App, *session.Registry, error) {
	if log == nil {
		log = logging.Nop()
	}

	if _, err := filex.EnsureDir(filepath.Dir(cfg.StorePath)); err != nil {
		return nil, nil, fmt.Errorf("store directory: %w", err)
	}
	docsDir, err := filex.EnsureDir(cfg.DocumentsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("documents directory: %w", err)
	}

	if cfg.UsesDefaultSecret() {
		log.Warn(context.Background(), "using the built-in store secret; set "+config.StoreSecretEnv+" to protect the credential store")
	}

	store, err := userstore.New(cfg.StorePath, []byte(cfg.StoreSecret),
		userstore.WithParams(params),
		userstore.WithLogger(log.With("component", "userstore")),
	)
	if err != nil {
		return nil, nil, err
	}
	log.Info(context.Background(), "credential store", "path", store.Path(), "documents", docsDir)

	sessions := session.NewRegistry(params.DocumentIterations)
	auth := services.NewAuthService(store, sessions, nil, log.With("component", "auth"))
	docs := services.NewDocumentService(sessions, log.With("component", "documents"))

	return NewApp(auth, docs, sessions, docsDir, in, out, log), sessions, nil
}
